package dao

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

// Replace writes data to URL, deleting any existing file first so that
// content is never merged with a previous version.
func Replace(ctx context.Context, fs afs.Service, URL string, data []byte) error {
	if URL == "" {
		return ErrInvalidURL
	}
	exists, err := fs.Exists(ctx, URL)
	if err != nil {
		return fmt.Errorf("failed to check if %s exists: %w", URL, err)
	}
	if exists {
		if err := fs.Delete(ctx, URL); err != nil {
			return fmt.Errorf("failed to delete %s: %w", URL, err)
		}
	}
	if err := fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", URL, err)
	}
	return nil
}

// Download reads URL, mapping a missing file to ErrNotFound.
func Download(ctx context.Context, fs afs.Service, URL string) ([]byte, error) {
	if URL == "" {
		return nil, ErrInvalidURL
	}
	exists, err := fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check if %s exists: %w", URL, err)
	}
	if !exists {
		return nil, fmt.Errorf("%s: %w", URL, ErrNotFound)
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", URL, err)
	}
	return data, nil
}
