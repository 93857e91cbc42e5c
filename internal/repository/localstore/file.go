package localstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"balaji-storefront/internal/domain"
)

var safeName = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

type fileRepo struct {
	dir string
}

// NewFile returns a Repository that keeps one JSON file per visitor and key
// under dir.
func NewFile(dir string) (Repository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &fileRepo{dir: dir}, nil
}

func (r *fileRepo) path(visitorID, key string) (string, error) {
	if !safeName.MatchString(visitorID) || !safeName.MatchString(key) {
		return "", fmt.Errorf("%w: unsafe storage path %q/%q", domain.ErrInvalidInput, visitorID, key)
	}
	return filepath.Join(r.dir, visitorID, key+".json"), nil
}

func (r *fileRepo) Get(_ context.Context, visitorID, key string) ([]byte, error) {
	p, err := r.path(visitorID, key)
	if err != nil {
		return nil, err
	}
	payload, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return payload, nil
}

// Put writes through a temp file and rename so readers never observe a
// half-written blob.
func (r *fileRepo) Put(_ context.Context, visitorID, key string, payload []byte) error {
	p, err := r.path(visitorID, key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(p), key+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p)
}

func (r *fileRepo) Delete(_ context.Context, visitorID, key string) error {
	p, err := r.path(visitorID, key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (r *fileRepo) Ping(context.Context) error {
	info, err := os.Stat(r.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("storage path %s is not a directory", r.dir)
	}
	return nil
}
