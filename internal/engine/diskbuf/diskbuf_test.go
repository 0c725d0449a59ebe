package diskbuf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriter_WriteLineAndFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed")

	w, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, w.WriteLine("a"))
	require.NoError(t, w.WriteLine("b"))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "a\nb\n", string(data))
}

func TestWriter_WriteRaw(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors")

	w, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, w.WriteRaw("boom\n"))
	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "boom\n", string(data))
}
