package math

import (
	"errors"
	"fmt"
	stdmath "math"
	"strconv"
	"strings"
)

// Affine parsing errors.
var (
	ErrAffineLength = errors.New("affine transform needs 12 values")
	ErrNonFinite    = errors.New("value is not a finite number")
)

// Mat4 is a 4x4 matrix in column-major order.
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4 [16]float32

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Affine expands a 3x4 affine matrix into a homogeneous Mat4.
// The twelve values are read as four columns of three (rotation/scale
// first, translation last); the fourth row becomes [0 0 0 1].
func Affine(v [12]float32) Mat4 {
	return Mat4{
		v[0], v[1], v[2], 0,
		v[3], v[4], v[5], 0,
		v[6], v[7], v[8], 0,
		v[9], v[10], v[11], 1,
	}
}

// ParseAffine parses 12 whitespace-separated floats into an affine Mat4.
func ParseAffine(s string) (Mat4, error) {
	fields := strings.Fields(s)
	if len(fields) != 12 {
		return Mat4{}, fmt.Errorf("%w: got %d", ErrAffineLength, len(fields))
	}

	var v [12]float32
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return Mat4{}, fmt.Errorf("value %d: %w", i, err)
		}
		if stdmath.IsNaN(n) || stdmath.IsInf(n, 0) {
			return Mat4{}, fmt.Errorf("value %d %q: %w", i, f, ErrNonFinite)
		}
		v[i] = float32(n)
	}
	return Affine(v), nil
}

// TransformPoint transforms a 3D point by this matrix (assumes w=1).
func (m Mat4) TransformPoint(p [3]float32) [3]float32 {
	x := m[0]*p[0] + m[4]*p[1] + m[8]*p[2] + m[12]
	y := m[1]*p[0] + m[5]*p[1] + m[9]*p[2] + m[13]
	z := m[2]*p[0] + m[6]*p[1] + m[10]*p[2] + m[14]
	w := m[3]*p[0] + m[7]*p[1] + m[11]*p[2] + m[15]
	if w != 0 && w != 1 {
		return [3]float32{x / w, y / w, z / w}
	}
	return [3]float32{x, y, z}
}

// TransformPoints transforms a packed xyz buffer in place.
// A trailing partial point is left untouched.
func (m Mat4) TransformPoints(buf []float32) {
	for i := 0; i+2 < len(buf); i += 3 {
		p := m.TransformPoint([3]float32{buf[i], buf[i+1], buf[i+2]})
		buf[i], buf[i+1], buf[i+2] = p[0], p[1], p[2]
	}
}

// IsIdentity reports whether m is exactly the identity matrix.
func (m Mat4) IsIdentity() bool {
	return m == Identity()
}
