package ports

import (
	"context"
	"io"
)

// ObjectStorage almacenamiento de archivos (imágenes de producto).
type ObjectStorage interface {
	// Put guarda el objeto bajo key y devuelve su URL pública.
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
