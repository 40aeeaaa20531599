package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freshbreeze-api/pkg/config"
)

func TestLocalStorage_PutYDelete(t *testing.T) {
	base := t.TempDir()
	s := NewLocalStorage(base, "/uploads/")

	url, err := s.Put(context.Background(), "products/c1/p1/img.png", strings.NewReader("png"), 3, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/products/c1/p1/img.png", url)

	b, err := os.ReadFile(filepath.Join(base, "products", "c1", "p1", "img.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(b))

	require.NoError(t, s.Delete(context.Background(), "products/c1/p1/img.png"))
	_, err = os.Stat(filepath.Join(base, "products"))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, s.Delete(context.Background(), "products/c1/p1/img.png"))
}

func TestLocalStorage_NoEscapaDelDirectorio(t *testing.T) {
	base := t.TempDir()
	s := NewLocalStorage(base, "")

	url, err := s.Put(context.Background(), "../../etc/x.png", strings.NewReader("x"), 1, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/etc/x.png", url)
	_, err = os.Stat(filepath.Join(base, "etc", "x.png"))
	assert.NoError(t, err)
}

func TestNew_DriverDesconocido(t *testing.T) {
	_, err := New(context.Background(), config.StorageConfig{Driver: "ftp"})
	assert.Error(t, err)
}

func TestNew_R2SinCredenciales(t *testing.T) {
	_, err := New(context.Background(), config.StorageConfig{Driver: "r2", R2Bucket: "b"})
	assert.Error(t, err)
}

func TestR2Storage_URLPublica(t *testing.T) {
	r := &R2Storage{publicURL: "https://cdn.test"}
	assert.Equal(t, "https://cdn.test/products/a.png", r.URL("/products/a.png"))
}
