package math

import "testing"

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	if got := (Vec3{2, 3, 6}).Length(); got != 7 {
		t.Errorf("Vec3.Length() = %v, want 7", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 4, 12}.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("zero vector should normalize to zero")
	}
}

func TestBounds(t *testing.T) {
	min, max, ok := Bounds([]float32{
		1, -2, 3,
		-4, 5, 0,
		2, 2, 2,
	})
	if !ok {
		t.Fatal("Bounds() ok = false")
	}
	if min != (Vec3{-4, -2, 0}) {
		t.Errorf("min = %v", min)
	}
	if max != (Vec3{2, 5, 3}) {
		t.Errorf("max = %v", max)
	}

	if _, _, ok := Bounds([]float32{1, 2}); ok {
		t.Error("Bounds() of partial point should not be ok")
	}
}

func TestTriangleNormal(t *testing.T) {
	n := TriangleNormal(Vec3{0, 0, 0}, Vec3{1, 0, 0}, Vec3{0, 1, 0})
	if n != (Vec3{0, 0, 1}) {
		t.Errorf("TriangleNormal() = %v, want +Z", n)
	}
}
