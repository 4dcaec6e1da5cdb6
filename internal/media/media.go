package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrClipNotFound is returned when no clip file exists for a logical name.
var ErrClipNotFound = errors.New("media: clip not found")

// Library resolves logical clip names ("personal_cabinet", "tasks") to video
// files under a local directory.
type Library struct {
	dir string
}

func NewLibrary(dir string) *Library {
	return &Library{dir: dir}
}

func (l *Library) Resolve(name string) (string, error) {
	path := filepath.Join(l.dir, name+".mp4")

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrClipNotFound
		}

		return "", fmt.Errorf("media.Resolve: %w", err)
	}

	if info.IsDir() {
		return "", ErrClipNotFound
	}

	return path, nil
}
