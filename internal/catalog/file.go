package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andresuchdata/autoorder/internal/domain"
)

// FileProvider reads the catalog from a local CSV or XLSX file on every call.
type FileProvider struct {
	path string
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

func (p *FileProvider) Name() string { return "file:" + filepath.Base(p.path) }

func (p *FileProvider) Products(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(p.path)
	if err != nil {
		return nil, fmt.Errorf("cannot stat catalog file %s: %w", p.path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("catalog path %s is a directory, expected file", p.path)
	}

	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file %s: %w", p.path, err)
	}
	defer f.Close()

	return ParseFile(p.path, f)
}

// ParseFile picks the parser from the file name extension.
func ParseFile(name string, r io.Reader) ([]domain.Product, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".csv":
		return ParseCSV(r)
	case ".xlsx":
		return ParseXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %q (%s)", ErrUnsupportedFormat, ext, name)
	}
}

// IsCatalogFile reports whether name has an extension ParseFile understands.
func IsCatalogFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".csv" || ext == ".xlsx"
}

func parseBytes(name string, data []byte) ([]domain.Product, error) {
	return ParseFile(name, bytes.NewReader(data))
}
