package storage

import (
	"context"
)

// StorageClient defines the interface for writing rendered chart outputs
type StorageClient interface {
	// Close closes the storage client
	Close() error

	// StoreFile stores a file at the specified path, relative to the client's root
	StoreFile(ctx context.Context, filePath string, fileData []byte) error

	// Path returns the location a stored file can be opened from
	Path(filePath string) string

	// ListDir lists files under a directory, relative to the client's root
	ListDir(ctx context.Context, dirPath string) ([]string, error)

	// FileExists checks if a file exists at the specified path
	FileExists(ctx context.Context, filePath string) (bool, error)
}
