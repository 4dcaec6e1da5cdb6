package media

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLibraryResolve(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	clip := filepath.Join(dir, "personal_cabinet.mp4")
	require.NoError(os.WriteFile(clip, []byte("video"), 0644))

	lib := NewLibrary(dir)

	path, err := lib.Resolve("personal_cabinet")
	require.NoError(err)
	require.Equal(clip, path)

	_, err = lib.Resolve("tasks")
	require.ErrorIs(err, ErrClipNotFound)
}
