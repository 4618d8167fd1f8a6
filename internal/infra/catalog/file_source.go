package catalog

import (
	"context"
	"os"

	"premium-store/internal/domain/model"
	"premium-store/internal/domain/ports/repository"
)

// DefaultPath is where the storefront looks for the catalog when nothing
// else is configured.
const DefaultPath = "./data/providers.json"

var _ repository.RawCatalogSource = (*FileSource)(nil)

// FileSource reads the catalog document from the local filesystem.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	if path == "" {
		path = DefaultPath
	}
	return &FileSource{path: path}
}

func (s *FileSource) Locator() string { return s.path }

func (s *FileSource) FetchRaw(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(s.path)
}

func (s *FileSource) Fetch(ctx context.Context) ([]*model.Plan, error) {
	raw, err := s.FetchRaw(ctx)
	if err != nil {
		return nil, err
	}
	return model.DecodeCatalog(raw)
}
