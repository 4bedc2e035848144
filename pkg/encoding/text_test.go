package encoding

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{
			name: "plain utf-8",
			data: []byte("<model/>"),
			want: "<model/>",
		},
		{
			name: "utf-8 bom",
			data: append([]byte{0xEF, 0xBB, 0xBF}, "<model/>"...),
			want: "<model/>",
		},
		{
			name: "utf-16le bom",
			data: []byte{0xFF, 0xFE, '<', 0, 'm', 0, '/', 0, '>', 0},
			want: "<m/>",
		},
		{
			name: "utf-16be bom",
			data: []byte{0xFE, 0xFF, 0, '<', 0, 'm', 0, '/', 0, '>'},
			want: "<m/>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeText(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestCharsetReader(t *testing.T) {
	r, err := CharsetReader("UTF-8", strings.NewReader("abc"))
	require.NoError(t, err)
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(b))

	// 0xE9 is e-acute in ISO-8859-1.
	r, err = CharsetReader("ISO-8859-1", strings.NewReader("caf\xe9"))
	require.NoError(t, err)
	b, err = io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "café", string(b))

	_, err = CharsetReader("no-such-charset", strings.NewReader(""))
	assert.Error(t, err)
}
