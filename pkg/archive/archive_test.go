package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEntry struct {
	name string
	body string
}

func buildZip(t *testing.T, entries ...testEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(e.body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestOpenBytes(t *testing.T) {
	data := buildZip(t,
		testEntry{"[Content_Types].xml", "<Types/>"},
		testEntry{"_rels/.rels", "<Relationships/>"},
		testEntry{"3D/3dmodel.model", "<model/>"},
	)

	a, err := OpenBytes(data)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, []string{"[Content_Types].xml", "_rels/.rels", "3D/3dmodel.model"}, a.List())
	for _, name := range []string{"3D/3dmodel.model", "/3D/3dmodel.model", `3D\3dmodel.model`} {
		_, ok := a.Stat(name)
		assert.True(t, ok, name)
	}
	_, ok := a.Stat("3d/3dmodel.model")
	assert.False(t, ok)

	body, err := a.Read("3D/3dmodel.model")
	require.NoError(t, err)
	assert.Equal(t, "<model/>", string(body))

	entry, ok := a.Stat("3D/3dmodel.model")
	require.True(t, ok)
	assert.Equal(t, uint64(len("<model/>")), entry.UncompressedSize)
}

func TestOpenBytesNotZip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"text", []byte("solid cube\nendsolid cube\n")},
		{"truncated signature", []byte{'P', 'K'}},
		{"signature only", []byte{'P', 'K', 0x03, 0x04, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OpenBytes(tt.data)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNotZip), "got %v", err)
		})
	}
}

func TestFind(t *testing.T) {
	data := buildZip(t,
		testEntry{"Metadata/thumbnail.png", "png"},
		testEntry{"3D/first.model", "a"},
		testEntry{"3D/second.model", "b"},
	)
	a, err := OpenBytes(data)
	require.NoError(t, err)

	name, ok := a.Find(func(n string) bool { return strings.HasSuffix(n, ".model") })
	require.True(t, ok)
	assert.Equal(t, "3D/first.model", name)

	_, ok = a.Find(func(n string) bool { return strings.HasSuffix(n, ".stl") })
	assert.False(t, ok)
}

func TestReadMissing(t *testing.T) {
	a, err := OpenBytes(buildZip(t, testEntry{"a.txt", "a"}))
	require.NoError(t, err)

	_, err = a.Read("b.txt")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "part.3mf")
	require.NoError(t, os.WriteFile(path, buildZip(t, testEntry{"3D/3dmodel.model", "<model/>"}), 0644))

	a, err := Open(path)
	require.NoError(t, err)
	defer a.Close()
	_, ok := a.Stat("3D/3dmodel.model")
	assert.True(t, ok)

	bad := filepath.Join(t.TempDir(), "bad.3mf")
	require.NoError(t, os.WriteFile(bad, []byte("not a zip"), 0644))
	_, err = Open(bad)
	assert.ErrorIs(t, err, ErrNotZip)

	_, err = Open(filepath.Join(t.TempDir(), "missing.3mf"))
	assert.Error(t, err)
}
