// Package formats provides parsers for 3D model interchange formats.
// Binary STL writer for resolved 3MF build items.
package formats

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	stdmath "math"

	"github.com/Faultbox/tmfkit/pkg/math"
)

// ErrSTLTooLarge is returned when the triangle count does not fit the STL header.
var ErrSTLTooLarge = errors.New("too many triangles for binary STL")

const stlHeaderSize = 80

// WriteSTL writes all items as one binary STL solid.
// The header is truncated to 80 bytes.
func WriteSTL(w io.Writer, header string, items []TMFItem) error {
	total := 0
	for _, it := range items {
		total += it.TriangleCount()
	}
	if uint64(total) > stdmath.MaxUint32 {
		return fmt.Errorf("%w: %d", ErrSTLTooLarge, total)
	}

	bw := bufio.NewWriter(w)

	var head [stlHeaderSize]byte
	copy(head[:], header)
	if _, err := bw.Write(head[:]); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(total)); err != nil {
		return err
	}

	// normal, three corners, attribute byte count
	var rec [12]float32
	for _, it := range items {
		for t := 0; t+9 <= len(it.Faces); t += 9 {
			f := it.Faces[t : t+9]
			n := math.TriangleNormal(
				math.Vec3{X: f[0], Y: f[1], Z: f[2]},
				math.Vec3{X: f[3], Y: f[4], Z: f[5]},
				math.Vec3{X: f[6], Y: f[7], Z: f[8]},
			)
			rec[0], rec[1], rec[2] = n.X, n.Y, n.Z
			copy(rec[3:], f)
			if err := binary.Write(bw, binary.LittleEndian, rec); err != nil {
				return err
			}
			if err := binary.Write(bw, binary.LittleEndian, uint16(0)); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}
