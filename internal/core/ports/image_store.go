package ports

import (
	"context"
	"io"
)

// ImageStore persists uploaded images under generated names.
type ImageStore interface {
	Save(ctx context.Context, name string, r io.Reader) error
	// Path returns the filesystem location of a stored image for static serving.
	Path(name string) (string, error)
}
