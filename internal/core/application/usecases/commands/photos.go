package commands

import (
	"context"
	"errors"
	"fmt"

	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

// photoUploader stores evidence before a unit of work opens so no transaction is
// held during file I/O. Callers discard the URLs when the transaction fails.
type photoUploader struct {
	storage ports.PhotoStorage
}

func newPhotoUploader(storage ports.PhotoStorage) photoUploader {
	return photoUploader{storage: storage}
}

// upload stores every photo concurrently. Either all photos are stored or none are:
// on failure the ones already stored are deleted.
func (u photoUploader) upload(ctx context.Context, photos []ports.PhotoUpload) ([]string, error) {
	if len(photos) == 0 {
		return nil, nil
	}
	if u.storage == nil {
		return nil, errs.NewValueIsRequiredError("photo storage")
	}

	urls := make([]string, len(photos))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range photos {
		g.Go(func() error {
			url, err := u.storage.Upload(gctx, p)
			if err != nil {
				return fmt.Errorf("upload %s: %w", p.Filename, err)
			}
			urls[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		stored := make([]string, 0, len(urls))
		for _, url := range urls {
			if url != "" {
				stored = append(stored, url)
			}
		}
		return nil, errors.Join(err, u.discard(context.WithoutCancel(ctx), stored))
	}
	return urls, nil
}

// discard deletes stored photos, reporting every failure.
func (u photoUploader) discard(ctx context.Context, urls []string) error {
	var failures []error
	for _, url := range urls {
		if err := u.storage.Delete(ctx, url); err != nil {
			failures = append(failures, fmt.Errorf("delete %s: %w", url, err))
		}
	}
	return errors.Join(failures...)
}

// withPhotos uploads photos, runs fn with their URLs and deletes them again if fn fails.
func (u photoUploader) withPhotos(ctx context.Context, photos []ports.PhotoUpload, fn func(urls []string) error) error {
	urls, err := u.upload(ctx, photos)
	if err != nil {
		return err
	}

	if err = fn(urls); err != nil {
		if len(urls) > 0 {
			return errors.Join(err, u.discard(context.WithoutCancel(ctx), urls))
		}
		return err
	}
	return nil
}

func validatePhotos(photos []ports.PhotoUpload) error {
	for i, p := range photos {
		if len(p.Content) == 0 {
			return errs.NewValueIsRequiredErrorWithCause("photo", fmt.Errorf("photo %d is empty", i))
		}
	}
	return nil
}
