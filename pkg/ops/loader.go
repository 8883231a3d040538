package ops

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/r-kez/k-tools-texture-map-loader/pkg/errors"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/shadergraph"
)

// ImageLoader creates image datablocks from files.
type ImageLoader interface {
	Load(ctx context.Context, path string) (*shadergraph.Image, error)
}

// FileLoader loads images from the local file system. It checks that the
// path is a regular file; pixel data is left to the host.
type FileLoader struct{}

// Load returns a new image referencing path.
func (FileLoader) Load(ctx context.Context, path string) (*shadergraph.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fi, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "image file not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoadFailed, err, "stat %s", path)
	}
	if !fi.Mode().IsRegular() {
		return nil, errors.New(errors.ErrCodeLoadFailed, "not a regular file: %s", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &shadergraph.Image{
		ID:       uuid.NewString(),
		Name:     filepath.Base(path),
		Filepath: abs,
	}, nil
}
