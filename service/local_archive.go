package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// LocalDesignArchive writes custom designs under a directory on disk
type LocalDesignArchive struct {
	dir string
}

// NewLocalDesignArchive creates the archive directory if needed
func NewLocalDesignArchive(dir string) (*LocalDesignArchive, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve archive directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &LocalDesignArchive{dir: abs}, nil
}

// Ensure LocalDesignArchive implements DesignArchiveInterface
var _ DesignArchiveInterface = (*LocalDesignArchive)(nil)

// Backend names the archive in logs
func (a *LocalDesignArchive) Backend() string { return "local" }

// Store writes data to <dir>/<name> and returns its file URL
func (a *LocalDesignArchive) Store(_ context.Context, name, _ string, data []byte) (string, error) {
	path := filepath.Join(a.dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write design %s: %w", name, err)
	}

	log.Printf("✓ Design archived: %s", path)
	return "file://" + filepath.ToSlash(path), nil
}
