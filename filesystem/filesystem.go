// Package filesystem wraps every disk access of the application behind afero,
// so commands and tests can swap the OS backend for an in-memory one.
package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active afero.Afero instance for filesystem interaction.
func API() afero.Afero {
	return backend
}

// SetFs replaces the active backend.
func SetFs(fs afero.Fs) {
	backend = afero.Afero{Fs: fs}
}

// SetOsFs restores the filesystem backend to the native operating system implementation.
func SetOsFs() {
	SetFs(afero.NewOsFs())
}

// SetMemMapFs switches to a volatile in-memory backend for tests.
func SetMemMapFs() {
	SetFs(afero.NewMemMapFs())
}

// WriteAtomic writes data to a sibling temp file and renames it over path,
// creating parent directories as needed.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	fs := API()

	if dir := filepath.Dir(path); dir != "" {
		if err := fs.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("create parent dir: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := fs.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := fs.Rename(tmp, path); err != nil {
		_ = fs.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
