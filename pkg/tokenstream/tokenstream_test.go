package tokenstream

import (
	"strings"
	"testing"
)

func TestTokenStream_Basic(t *testing.T) {
	ts := New(strings.NewReader("#MiniLight\n10\n200 150\n"))
	want := []string{"#MiniLight", "10", "200", "150"}
	for _, w := range want {
		got, err := ts.Next()
		if err != nil {
			t.Fatalf("unexpected error reading %q: %v", w, err)
		}
		if got != w {
			t.Errorf("Next() = %q, want %q", got, w)
		}
	}
	if _, err := ts.Next(); err != ErrEndOfStream {
		t.Errorf("final Next() error = %v, want ErrEndOfStream", err)
	}
}

func TestTokenStream_ParensAreSeparators(t *testing.T) {
	ts := New(strings.NewReader("(1.0 2.0 3.0)"))
	want := []string{"1.0", "2.0", "3.0"}
	for _, w := range want {
		got, err := ts.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != w {
			t.Errorf("Next() = %q, want %q", got, w)
		}
	}
}

func TestTokenStream_EmptyYieldsEOF(t *testing.T) {
	ts := New(strings.NewReader("   \n\t  "))
	if _, err := ts.Next(); err != ErrEndOfStream {
		t.Errorf("Next() error = %v, want ErrEndOfStream", err)
	}
}

func TestTokenStream_NoSpaceBetweenParenAndToken(t *testing.T) {
	ts := New(strings.NewReader("(0)(1)"))
	want := []string{"0", "1"}
	for _, w := range want {
		got, err := ts.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != w {
			t.Errorf("Next() = %q, want %q", got, w)
		}
	}
}
