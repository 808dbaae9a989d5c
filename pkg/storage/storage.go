// Package storage persists uploaded media files and hands back a public URL.
package storage

import (
	"context"
	"io"
)

// Storage saves and removes files by name.
type Storage interface {
	// Save stores r under name and returns the URL it is served from.
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	Delete(ctx context.Context, name string) error
}
