package geometry

import (
	"math"
	"testing"

	"github.com/hxa7241/minilight/pkg/core"
)

func unitTriangle() *Triangle {
	return New(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0.5, 0.5, 0.5),
		core.NewVec3(0, 0, 0),
	)
}

func TestNew_ClampsReflectivityAndEmissivity(t *testing.T) {
	tr := New(
		core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0),
		core.NewVec3(-1, 0.5, 2), core.NewVec3(-3, 4, -5),
	)
	if tr.Reflectivity.X != 0 || tr.Reflectivity.Y != 0.5 || tr.Reflectivity.Z != 1 {
		t.Errorf("reflectivity not clamped to [0,1]: %v", tr.Reflectivity)
	}
	if tr.Emissivity.X != 0 || tr.Emissivity.Y != 4 || tr.Emissivity.Z != 0 {
		t.Errorf("emissivity not clamped to >= 0: %v", tr.Emissivity)
	}
}

func TestNormalAndArea(t *testing.T) {
	tr := unitTriangle()
	if math.Abs(tr.Normal().Z-1) > 1e-12 {
		t.Errorf("normal = %v, want (0,0,1)", tr.Normal())
	}
	if math.Abs(tr.Area()-0.5) > 1e-12 {
		t.Errorf("area = %v, want 0.5", tr.Area())
	}
}

func TestIsEmitter(t *testing.T) {
	emitter := New(
		core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 0), core.NewVec3(10, 10, 10),
	)
	if !emitter.IsEmitter() {
		t.Errorf("expected triangle with emissivity to be an emitter")
	}

	nonEmitter := unitTriangle()
	if nonEmitter.IsEmitter() {
		t.Errorf("expected triangle with zero emissivity not to be an emitter")
	}
}

func TestIsEmitter_DegenerateExcluded(t *testing.T) {
	// Two coincident vertices: zero area, should never be an emitter even
	// with non-zero emissivity.
	degenerate := New(
		core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0),
		core.NewVec3(0, 0, 0), core.NewVec3(10, 10, 10),
	)
	if degenerate.IsEmitter() {
		t.Errorf("degenerate zero-area triangle must never be an emitter")
	}
}

func TestIntersection_Hit(t *testing.T) {
	tr := unitTriangle()
	dist, hit := tr.Intersection(core.NewVec3(0.2, 0.2, -1), core.NewVec3(0, 0, 1))
	if !hit {
		t.Fatalf("expected hit")
	}
	if math.Abs(dist-1) > 1e-9 {
		t.Errorf("dist = %v, want 1", dist)
	}
}

func TestIntersection_MissOutsideTriangle(t *testing.T) {
	tr := unitTriangle()
	_, hit := tr.Intersection(core.NewVec3(10, 10, -1), core.NewVec3(0, 0, 1))
	if hit {
		t.Errorf("expected miss far outside triangle")
	}
}

func TestIntersection_MissBehindOrigin(t *testing.T) {
	tr := unitTriangle()
	_, hit := tr.Intersection(core.NewVec3(0.2, 0.2, 1), core.NewVec3(0, 0, 1))
	if hit {
		t.Errorf("expected miss when triangle is behind ray origin")
	}
}

func TestIntersection_GrazingEdgeConsistent(t *testing.T) {
	tr := unitTriangle()
	// u+v == 1 exactly on the hypotenuse: must be rejected by the strict
	// u+v>1 rule being the only rejection - i.e. this boundary case must
	// not panic or produce NaN, and must be deterministic.
	_, hit1 := tr.Intersection(core.NewVec3(0.5, 0.5, -1), core.NewVec3(0, 0, 1))
	_, hit2 := tr.Intersection(core.NewVec3(0.5, 0.5, -1), core.NewVec3(0, 0, 1))
	if hit1 != hit2 {
		t.Errorf("grazing-edge intersection not deterministic")
	}
}

func TestSamplePoint_IsBarycentric(t *testing.T) {
	tr := unitTriangle()
	for _, r := range [][2]float64{{0, 0}, {0.25, 0.75}, {0.5, 0.5}, {0.99, 0.01}} {
		p := tr.SamplePoint(r[0], r[1])
		// Solve p = V0 + a*edge0 + b*edge3 for this right triangle; since
		// edge0=(1,0,0) and edge3=(0,1,0) here, a=p.X, b=p.Y, c=1-a-b.
		a, b := p.X, p.Y
		c := 1 - a - b
		if a < -1e-12 || a > 1+1e-12 || b < -1e-12 || b > 1+1e-12 || c < -1e-12 || c > 1+1e-12 {
			t.Errorf("SamplePoint(%v) barycentric coords out of [0,1]: a=%v b=%v c=%v", r, a, b, c)
		}
		if math.Abs(a+b+c-1) > 1e-12 {
			t.Errorf("SamplePoint(%v) barycentric coords don't sum to 1: %v", r, a+b+c)
		}
	}
}

func TestBound_ContainsVertices(t *testing.T) {
	tr := unitTriangle()
	lo, hi := tr.Bound()
	for _, v := range []core.Vec3{tr.V0, tr.V1, tr.V2} {
		if v.X < lo.X || v.X > hi.X || v.Y < lo.Y || v.Y > hi.Y || v.Z < lo.Z || v.Z > hi.Z {
			t.Errorf("vertex %v not within bound [%v, %v]", v, lo, hi)
		}
	}
}
