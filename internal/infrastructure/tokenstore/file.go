// Package tokenstore keeps the bearer token in a small JSON file on disk,
// the local counterpart of the browser's persistent storage.
package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jobtracker/tracker-web/internal/core/ports"
)

type tokenFile struct {
	Token string `json:"token"`
}

// File stores the token as {"token": "..."} with 0600 permissions.
type File struct {
	path string
	mu   sync.Mutex
}

var _ ports.TokenStore = (*File)(nil)

// DefaultPath is <user config dir>/jobtracker/<profile>.json.
func DefaultPath(profile string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("tokenstore: config dir: %w", err)
	}
	if profile == "" {
		profile = "default"
	}
	return filepath.Join(dir, "jobtracker", profile+".json"), nil
}

func NewFile(path string) *File {
	return &File{path: path}
}

// Get returns "" when the file does not exist.
func (f *File) Get(_ context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("tokenstore: read %s: %w", f.path, err)
	}

	var tf tokenFile
	if err := json.Unmarshal(b, &tf); err != nil {
		return "", fmt.Errorf("tokenstore: decode %s: %w", f.path, err)
	}
	return tf.Token, nil
}

// Set replaces the file through a temp file and a rename.
func (f *File) Set(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("tokenstore: mkdir: %w", err)
	}

	b, err := json.Marshal(tokenFile{Token: token})
	if err != nil {
		return fmt.Errorf("tokenstore: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".token-*")
	if err != nil {
		return fmt.Errorf("tokenstore: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("tokenstore: chmod: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("tokenstore: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("tokenstore: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("tokenstore: rename: %w", err)
	}
	return nil
}

// Delete succeeds when the file is already gone.
func (f *File) Delete(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("tokenstore: remove %s: %w", f.path, err)
	}
	return nil
}

// Check verifies the directory is usable.
func (f *File) Check(_ context.Context) error {
	dir := filepath.Dir(f.path)
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return os.MkdirAll(dir, 0o700)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("tokenstore: %s is not a directory", dir)
	}
	return nil
}

func (f *File) Name() string { return "file" }

func (f *File) Path() string { return f.path }
