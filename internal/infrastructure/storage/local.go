// Package storage implementa ports.ObjectStorage sobre disco local o Cloudflare R2.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage guarda los objetos bajo basePath y los expone en publicPrefix
// (la app sirve basePath como estático en /uploads).
type LocalStorage struct {
	basePath     string
	publicPrefix string
}

// NewLocalStorage construye el driver local.
func NewLocalStorage(basePath, publicPrefix string) *LocalStorage {
	if publicPrefix == "" {
		publicPrefix = "/uploads"
	}
	return &LocalStorage{basePath: basePath, publicPrefix: strings.TrimSuffix(publicPrefix, "/")}
}

func (s *LocalStorage) fullPath(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("storage: clave vacía")
	}
	return filepath.Join(s.basePath, clean), nil
}

// Put escribe el objeto y devuelve su URL pública.
func (s *LocalStorage) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) (string, error) {
	full, err := s.fullPath(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("storage: crear directorio: %w", err)
	}
	out, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("storage: crear archivo: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, body); err != nil {
		return "", fmt.Errorf("storage: escribir archivo: %w", err)
	}
	return s.publicPrefix + "/" + strings.TrimPrefix(filepath.ToSlash(filepath.Clean("/"+key)), "/"), nil
}

// Delete elimina el objeto; no falla si ya no existe.
func (s *LocalStorage) Delete(_ context.Context, key string) error {
	full, err := s.fullPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: eliminar archivo: %w", err)
	}
	s.removeEmptyDirs(filepath.Dir(full))
	return nil
}

// removeEmptyDirs sube hasta basePath borrando directorios vacíos.
func (s *LocalStorage) removeEmptyDirs(dir string) {
	rel, err := filepath.Rel(s.basePath, dir)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return
	}
	if err := os.Remove(dir); err == nil {
		s.removeEmptyDirs(filepath.Dir(dir))
	}
}
