package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"premium-store/internal/domain/model"
	"premium-store/internal/domain/ports/repository"
)

var _ repository.RawCatalogSource = (*HTTPSource)(nil)

// maxCatalogBytes caps the document size read from a remote source.
const maxCatalogBytes = 4 << 20

// HTTPSource fetches the catalog document with a plain GET.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates a source for url. A zero timeout means no client
// timeout; the request context still applies.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) Locator() string { return s.url }

func (s *HTTPSource) FetchRaw(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]*model.Plan, error) {
	raw, err := s.FetchRaw(ctx)
	if err != nil {
		return nil, err
	}
	return model.DecodeCatalog(raw)
}
