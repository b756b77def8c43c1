package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/andresuchdata/autoorder/internal/domain"
	"github.com/andresuchdata/autoorder/internal/drive"
	"github.com/andresuchdata/autoorder/internal/storage"
)

// ObjectStorageProvider loads the catalog from an S3-compatible bucket.
// A key ending in "/" is treated as a prefix: every CSV/XLSX object under it is
// loaded in key order and concatenated.
type ObjectStorageProvider struct {
	store storage.ObjectStorage
	key   string
}

func NewObjectStorageProvider(store storage.ObjectStorage, key string) *ObjectStorageProvider {
	return &ObjectStorageProvider{store: store, key: key}
}

func (p *ObjectStorageProvider) Name() string { return "s3:" + p.key }

func (p *ObjectStorageProvider) Products(ctx context.Context) ([]domain.Product, error) {
	if !strings.HasSuffix(p.key, "/") {
		data, err := p.store.ReadObject(ctx, p.key)
		if err != nil {
			return nil, err
		}
		return parseBytes(p.key, data)
	}

	objects, err := p.store.ListObjects(ctx, p.key)
	if err != nil {
		return nil, err
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })

	products := make([]domain.Product, 0)
	for _, obj := range objects {
		if !IsCatalogFile(obj.Key) {
			continue
		}
		data, err := p.store.ReadObject(ctx, obj.Key)
		if err != nil {
			return nil, err
		}
		batch, err := parseBytes(obj.Key, data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", obj.Key, err)
		}
		products = append(products, batch...)
	}
	return products, nil
}

// DriveFiles is the subset of the Drive client used to load catalogs.
type DriveFiles interface {
	GetFile(ctx context.Context, fileID string) (*drive.File, error)
	ListFiles(ctx context.Context, folderID string) ([]*drive.File, error)
	DownloadFile(ctx context.Context, fileID string, w io.Writer) error
	FindFolderByPath(ctx context.Context, path string) (string, error)
}

// DriveProvider loads the catalog from Google Drive, either a single file by ID
// or every CSV/XLSX file in a folder path.
type DriveProvider struct {
	files      DriveFiles
	fileID     string
	folderPath string
}

func NewDriveFileProvider(files DriveFiles, fileID string) *DriveProvider {
	return &DriveProvider{files: files, fileID: fileID}
}

func NewDriveFolderProvider(files DriveFiles, folderPath string) *DriveProvider {
	return &DriveProvider{files: files, folderPath: folderPath}
}

func (p *DriveProvider) Name() string {
	if p.fileID != "" {
		return "drive:" + p.fileID
	}
	return "drive:/" + strings.TrimPrefix(p.folderPath, "/")
}

func (p *DriveProvider) Products(ctx context.Context) ([]domain.Product, error) {
	if p.fileID != "" {
		f, err := p.files.GetFile(ctx, p.fileID)
		if err != nil {
			return nil, err
		}
		return p.load(ctx, f)
	}

	folderID, err := p.files.FindFolderByPath(ctx, p.folderPath)
	if err != nil {
		return nil, err
	}
	files, err := p.files.ListFiles(ctx, folderID)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0)
	for _, f := range files {
		if f.IsFolder() || !IsCatalogFile(f.Name) {
			continue
		}
		batch, err := p.load(ctx, f)
		if err != nil {
			return nil, err
		}
		products = append(products, batch...)
	}
	return products, nil
}

func (p *DriveProvider) load(ctx context.Context, f *drive.File) ([]domain.Product, error) {
	var buf bytes.Buffer
	if err := p.files.DownloadFile(ctx, f.ID, &buf); err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", f.Name, err)
	}
	products, err := ParseFile(f.Name, &buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name, err)
	}
	return products, nil
}

// ProductStore is the persistence surface a RepositoryProvider wraps.
type ProductStore interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListSuppliers(ctx context.Context) ([]string, error)
	SetAutoOrder(ctx context.Context, productID string, enabled bool) error
}

// RepositoryProvider serves the catalog from a database and supports auto-order toggles.
type RepositoryProvider struct {
	store ProductStore
}

func NewRepositoryProvider(store ProductStore) *RepositoryProvider {
	return &RepositoryProvider{store: store}
}

func (p *RepositoryProvider) Name() string { return "database" }

func (p *RepositoryProvider) Products(ctx context.Context) ([]domain.Product, error) {
	return p.store.ListProducts(ctx)
}

// Product looks up one product without loading the whole catalog.
func (p *RepositoryProvider) Product(ctx context.Context, productID string) (*domain.Product, error) {
	return p.store.GetProduct(ctx, productID)
}

// FilterOptions reads the distinct categories and suppliers from the store, sorted.
func (p *RepositoryProvider) FilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	categories, err := p.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	suppliers, err := p.store.ListSuppliers(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.FilterOptions{Categories: categories, Suppliers: suppliers}, nil
}

func (p *RepositoryProvider) SetAutoOrder(ctx context.Context, productID string, enabled bool) error {
	return p.store.SetAutoOrder(ctx, productID, enabled)
}

var (
	_ Provider         = (*ObjectStorageProvider)(nil)
	_ Provider         = (*DriveProvider)(nil)
	_ Provider         = (*RepositoryProvider)(nil)
	_ AutoOrderUpdater = (*RepositoryProvider)(nil)
	_ ProductGetter    = (*RepositoryProvider)(nil)
	_ OptionsLister    = (*RepositoryProvider)(nil)
	_ DriveFiles       = (*drive.Service)(nil)
)
