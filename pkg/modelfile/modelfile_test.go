package modelfile

import (
	"strings"
	"testing"

	"github.com/hxa7241/minilight/pkg/core"
)

const sampleModel = `#MiniLight

100
200 100

(0 1 5) (0 0 -1) 45

(1 1 1) (0.5 0.5 0.5)

(0 0 0) (1 0 0) (0 1 0) (0.5 0.5 0.5) (0 0 0)
(0 5 0) (1 5 0) (0 5 1) (0 0 0) (10 10 10)
`

func TestParse_ReadsEveryField(t *testing.T) {
	m, err := Parse(strings.NewReader(sampleModel))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if m.Iterations != 100 {
		t.Errorf("Iterations = %d, want 100", m.Iterations)
	}
	if m.ImageWidth != 200 || m.ImageHeight != 100 {
		t.Errorf("ImageWidth/Height = %d/%d, want 200/100", m.ImageWidth, m.ImageHeight)
	}
	if m.CameraPosition != core.NewVec3(0, 1, 5) {
		t.Errorf("CameraPosition = %v, want (0,1,5)", m.CameraPosition)
	}
	if m.CameraDirection != core.NewVec3(0, 0, -1) {
		t.Errorf("CameraDirection = %v, want (0,0,-1)", m.CameraDirection)
	}
	if m.CameraAngle != 45 {
		t.Errorf("CameraAngle = %v, want 45", m.CameraAngle)
	}
	if m.SkyEmission != core.NewVec3(1, 1, 1) {
		t.Errorf("SkyEmission = %v, want (1,1,1)", m.SkyEmission)
	}
	if m.GroundReflection != core.NewVec3(0.5, 0.5, 0.5) {
		t.Errorf("GroundReflection = %v, want (0.5,0.5,0.5)", m.GroundReflection)
	}
	if len(m.Triangles) != 2 {
		t.Fatalf("len(Triangles) = %d, want 2", len(m.Triangles))
	}
	if !m.Triangles[1].IsEmitter() {
		t.Errorf("expected the second triangle to be an emitter")
	}
}

func TestParse_MissingMagicIsFatal(t *testing.T) {
	_, err := Parse(strings.NewReader("#NotMiniLight\n1\n1 1\n"))
	if err == nil {
		t.Fatalf("expected an error for a missing magic header")
	}
}

func TestParse_EmptyTriangleListIsFine(t *testing.T) {
	model := "#MiniLight\n1\n1 1\n(0 0 0) (0 0 -1) 45\n(1 1 1) (1 1 1)\n"
	m, err := Parse(strings.NewReader(model))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(m.Triangles) != 0 {
		t.Errorf("len(Triangles) = %d, want 0", len(m.Triangles))
	}
}

func TestParse_TruncatedHeaderIsFatal(t *testing.T) {
	_, err := Parse(strings.NewReader("#MiniLight\n1\n"))
	if err == nil {
		t.Fatalf("expected an error for a truncated header")
	}
}
