package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStorage writes uploaded files into a local content directory and
// builds the public reference paths the static file server resolves.
type DiskStorage struct {
	dir          string
	publicPrefix string
}

func NewDiskStorage(dir, publicPrefix string) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create content directory: %w", err)
	}

	return &DiskStorage{
		dir:          dir,
		publicPrefix: strings.TrimRight(publicPrefix, "/"),
	}, nil
}

// Save stores one uploaded file under a random name that keeps the
// original extension, so the static server can still infer the content
// type. Returns the public reference path for the stored file.
func (s *DiskStorage) Save(file *multipart.FileHeader) (string, error) {
	name := uuid.NewString() + filepath.Ext(file.Filename)
	dst := filepath.Join(s.dir, name)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		os.Remove(dst)
		return "", fmt.Errorf("write %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("close %s: %w", dst, err)
	}

	return s.publicPrefix + "/" + name, nil
}

// Remove deletes the file a reference path points to. Used to clean up an
// upload whose dependent database write failed. Refs that do not resolve
// to a plain file inside the content directory are rejected.
func (s *DiskStorage) Remove(ref string) error {
	name := strings.TrimPrefix(ref, s.publicPrefix+"/")
	if name == ref || name == "" || name != filepath.Base(name) {
		return fmt.Errorf("ref %q is not inside the content directory", ref)
	}

	return os.Remove(filepath.Join(s.dir, name))
}
