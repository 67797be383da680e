package generator

import (
	"context"
	"os"
	"path/filepath"
)

// TemplateSource returns the raw template of a page file.
type TemplateSource interface {
	Read(ctx context.Context, file string) (string, error)
}

// DirTemplates reads page templates from a directory on disk.
type DirTemplates struct {
	Dir string
}

func (d DirTemplates) Read(ctx context.Context, file string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(d.Dir, filepath.FromSlash(file)))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
