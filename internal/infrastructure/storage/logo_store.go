// Package storage guarda archivos subidos por los usuarios en disco local.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cotizaperu/cotiza-api/internal/application/profile"
)

var _ profile.LogoStore = (*LogoStore)(nil)

// LogoStore guarda logos en un directorio local, un archivo por usuario.
// El nombre es determinístico por usuario, así subir un logo nuevo reemplaza
// al anterior sin dejar huérfanos (salvo cambio de extensión).
type LogoStore struct {
	dir string
}

// NewLogoStore crea el almacén y asegura que el directorio exista.
func NewLogoStore(dir string) (*LogoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: creando directorio de logos: %w", err)
	}
	return &LogoStore{dir: dir}, nil
}

// Save escribe el logo y devuelve el nombre de archivo final.
func (s *LogoStore) Save(userID, ext string, data []byte) (string, error) {
	// Un logo previo con otra extensión quedaría colgado; se limpian todas
	// las variantes antes de escribir.
	matches, _ := filepath.Glob(filepath.Join(s.dir, "user_"+userID+"_logo.*"))
	for _, m := range matches {
		os.Remove(m)
	}

	filename := "user_" + userID + "_logo" + ext
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("storage: escribiendo logo: %w", err)
	}
	return filename, nil
}
