package core

import (
	"math"
	"testing"
)

func TestVec3_Unitize(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
	}{
		{"axis vector", NewVec3(3, 0, 0)},
		{"general vector", NewVec3(1, 2, 3)},
		{"negative components", NewVec3(-2, -4, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := tt.v.Unitize()
			if math.Abs(u.Length()-1.0) > 1e-12 {
				t.Errorf("unitize(%v) length = %v, want 1", tt.v, u.Length())
			}
			// idempotence
			uu := u.Unitize()
			if math.Abs(uu.X-u.X) > 1e-12 || math.Abs(uu.Y-u.Y) > 1e-12 || math.Abs(uu.Z-u.Z) > 1e-12 {
				t.Errorf("unitize not idempotent: %v vs %v", u, uu)
			}
		})
	}
}

func TestVec3_UnitizeZero(t *testing.T) {
	z := NewVec3(0, 0, 0).Unitize()
	if !z.IsZero() {
		t.Errorf("unitize(zero) = %v, want zero", z)
	}
}

func TestVec3_Cross(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)
	z := x.Cross(y)
	if math.Abs(z.X) > 1e-12 || math.Abs(z.Y) > 1e-12 || math.Abs(z.Z-1) > 1e-12 {
		t.Errorf("x cross y = %v, want (0,0,1)", z)
	}
}

func TestVec3_Clamp01(t *testing.T) {
	v := NewVec3(-1, 0.5, 2).Clamp01()
	if v.X != 0 || v.Y != 0.5 || v.Z != 1 {
		t.Errorf("Clamp01 = %v, want (0, 0.5, 1)", v)
	}
}

func TestVec3_ClampLow(t *testing.T) {
	v := NewVec3(-1, 0.5, 2).ClampLow(0)
	if v.X != 0 || v.Y != 0.5 || v.Z != 2 {
		t.Errorf("ClampLow = %v, want (0, 0.5, 2)", v)
	}
}

func TestVec3_Get(t *testing.T) {
	v := NewVec3(1, 2, 3)
	if v.Get(0) != 1 || v.Get(1) != 2 || v.Get(2) != 3 {
		t.Errorf("Get indices wrong for %v", v)
	}
}

func TestRay_At(t *testing.T) {
	r := NewRay(NewVec3(0, 0, 0), NewVec3(1, 0, 0))
	p := r.At(5)
	if p.X != 5 || p.Y != 0 || p.Z != 0 {
		t.Errorf("At(5) = %v, want (5,0,0)", p)
	}
}
