package formats

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSTL(t *testing.T) {
	items := []TMFItem{
		{Name: "a", Faces: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}},
		{Name: "b", Faces: []float32{
			0, 0, 1, 0, 1, 1, 1, 0, 1,
			5, 5, 5, 6, 5, 5, 5, 6, 5,
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSTL(&buf, "tmfkit", items))

	data := buf.Bytes()
	require.Len(t, data, 80+4+3*50)
	assert.Equal(t, "tmfkit", strings.TrimRight(string(data[:80]), "\x00"))
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(data[80:84]))

	var rec [12]float32
	require.NoError(t, binary.Read(bytes.NewReader(data[84:]), binary.LittleEndian, &rec))
	assert.Equal(t, [3]float32{0, 0, 1}, [3]float32{rec[0], rec[1], rec[2]})
	assert.Equal(t, items[0].Faces, rec[3:])

	// Second triangle winds clockwise seen from +Z.
	require.NoError(t, binary.Read(bytes.NewReader(data[84+50:]), binary.LittleEndian, &rec))
	assert.Equal(t, [3]float32{0, 0, -1}, [3]float32{rec[0], rec[1], rec[2]})
}

func TestWriteSTL_LongHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSTL(&buf, strings.Repeat("x", 200), nil))

	data := buf.Bytes()
	require.Len(t, data, 84)
	assert.Equal(t, strings.Repeat("x", 80), string(data[:80]))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(data[80:]))
}
