// Package filestore keeps evidence photos in a local directory that the HTTP
// adapter serves under a URL prefix.
package filestore

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var allowedExt = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".heic": {},
}

// Storage implements ports.PhotoStorage. Stored names are random, so two uploads of
// the same filename never collide.
type Storage struct {
	dir     string
	baseURL string
}

// New creates dir if needed. baseURL is the prefix returned URLs start with, for
// example "/photos".
func New(dir, baseURL string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create photo dir")
	}
	return &Storage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *Storage) Dir() string {
	return s.dir
}

func (s *Storage) Upload(ctx context.Context, photo ports.PhotoUpload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(photo.Content) == 0 {
		return "", errs.NewValueIsRequiredError("photo content")
	}

	ext := strings.ToLower(filepath.Ext(photo.Filename))
	if _, ok := allowedExt[ext]; !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("photo", fmt.Errorf("unsupported file type %q", ext))
	}

	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), photo.Content, 0o644); err != nil {
		return "", errors.Wrapf(err, "store photo %s", photo.Filename)
	}
	return path.Join(s.baseURL, name), nil
}

// Delete accepts only URLs produced by Upload.
func (s *Storage) Delete(_ context.Context, url string) error {
	name := strings.TrimPrefix(url, s.baseURL+"/")
	if name == url || name == "" || strings.ContainsAny(name, `/\`) {
		return errs.NewValueIsInvalidErrorWithCause("photo url", fmt.Errorf("%q is not a stored photo", url))
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "delete photo %s", name)
	}
	return nil
}
