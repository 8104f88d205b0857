package immich

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

var (
	// ErrAuth indicates the API key was rejected. Not retryable.
	ErrAuth = errors.New("immich: authentication rejected")
	// ErrUnavailable indicates a transient transport or server failure. Retryable.
	ErrUnavailable = errors.New("immich: service unavailable")
)

// Client defines the interface for Immich API operations.
type Client interface {
	// Ping tests connectivity to the server.
	Ping(ctx context.Context) error
	// AllAlbums returns every album owned by the authenticated user.
	AllAlbums(ctx context.Context) ([]Album, error)
	// AlbumAssetIDs returns the asset ids currently in an album.
	AlbumAssetIDs(ctx context.Context, albumID string) ([]string, error)
	// CreateAlbum creates an empty album and returns it.
	CreateAlbum(ctx context.Context, name string) (*Album, error)
	// AddAssets adds assets to an album and returns the per-id bulk results.
	AddAssets(ctx context.Context, albumID string, assetIDs []string) ([]AddResult, error)
	// SearchAssets runs a paginated metadata search and returns all matches.
	SearchAssets(ctx context.Context, query SearchQuery) ([]Asset, error)
}

// Ensure HTTPClient implements Client
var _ Client = (*HTTPClient)(nil)

// HTTPClient talks to the Immich REST API.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	pageSize   int
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new Immich API client from the configuration.
func NewClient(cfg Config) *HTTPClient {
	// Normalize URL (remove trailing slash)
	baseURL := strings.TrimSuffix(cfg.URL, "/")

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}

	c := &HTTPClient{
		baseURL:  baseURL,
		apiKey:   cfg.ApiKey,
		pageSize: pageSize,
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}

	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return c
}

// do executes one API request and decodes the response into out (if non-nil).
// Status codes are mapped onto the error taxonomy: 401/403 become ErrAuth,
// 429 and 5xx become ErrUnavailable, as do transport-level failures.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w (status %d)", ErrAuth, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return fmt.Errorf("%w (status %d)", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("immich returned status %d (failed to read body)", resp.StatusCode)
		}
		return fmt.Errorf("immich returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode immich response: %w", err)
	}
	return nil
}

// Ping tests connectivity to the Immich server.
func (c *HTTPClient) Ping(ctx context.Context) error {
	var out struct {
		Res string `json:"res"`
	}
	if err := c.do(ctx, http.MethodGet, "/server/ping", nil, &out); err != nil {
		return fmt.Errorf("immich ping failed: %w", err)
	}
	return nil
}

// AllAlbums returns every album owned by the authenticated user.
func (c *HTTPClient) AllAlbums(ctx context.Context) ([]Album, error) {
	var albums []Album
	if err := c.do(ctx, http.MethodGet, "/albums", nil, &albums); err != nil {
		return nil, fmt.Errorf("immich albums request failed: %w", err)
	}
	return albums, nil
}

// AlbumAssetIDs returns the asset ids currently in an album.
func (c *HTTPClient) AlbumAssetIDs(ctx context.Context, albumID string) ([]string, error) {
	var info struct {
		Assets []Asset `json:"assets"`
	}
	if err := c.do(ctx, http.MethodGet, "/albums/"+albumID, nil, &info); err != nil {
		return nil, fmt.Errorf("immich album info request failed: %w", err)
	}

	ids := make([]string, 0, len(info.Assets))
	for _, a := range info.Assets {
		ids = append(ids, a.ID)
	}
	return ids, nil
}

// CreateAlbum creates an empty album and returns the created album.
func (c *HTTPClient) CreateAlbum(ctx context.Context, name string) (*Album, error) {
	var album Album
	body := map[string]string{"albumName": name}
	if err := c.do(ctx, http.MethodPost, "/albums", body, &album); err != nil {
		return nil, fmt.Errorf("immich album create failed: %w", err)
	}
	return &album, nil
}

// AddAssets adds assets (by id) to an album. The bulk response reports
// success per id; assets already in the album come back as duplicates.
func (c *HTTPClient) AddAssets(ctx context.Context, albumID string, assetIDs []string) ([]AddResult, error) {
	var results []AddResult
	body := map[string][]string{"ids": assetIDs}
	if err := c.do(ctx, http.MethodPut, "/albums/"+albumID+"/assets", body, &results); err != nil {
		return nil, fmt.Errorf("immich album add failed: %w", err)
	}
	return results, nil
}

type searchRequest struct {
	OriginalFileName string     `json:"originalFileName,omitempty"`
	Checksum         string     `json:"checksum,omitempty"`
	TakenAfter       *time.Time `json:"takenAfter,omitempty"`
	TakenBefore      *time.Time `json:"takenBefore,omitempty"`
	WithDeleted      bool       `json:"withDeleted"`
	WithExif         bool       `json:"withExif"`
	Page             int        `json:"page"`
	Size             int        `json:"size"`
}

type searchResponse struct {
	Assets struct {
		Items    []Asset `json:"items"`
		NextPage string  `json:"nextPage"`
	} `json:"assets"`
}

// SearchAssets returns all non-deleted assets matching the query,
// following the API's pagination until it signals no further pages.
func (c *HTTPClient) SearchAssets(ctx context.Context, query SearchQuery) ([]Asset, error) {
	var assets []Asset
	page := 1
	for {
		req := searchRequest{
			OriginalFileName: query.FileName,
			Checksum:         query.Checksum,
			TakenAfter:       query.TakenAfter,
			TakenBefore:      query.TakenBefore,
			WithDeleted:      false,
			WithExif:         true,
			Page:             page,
			Size:             c.pageSize,
		}

		var resp searchResponse
		if err := c.do(ctx, http.MethodPost, "/search/metadata", req, &resp); err != nil {
			return nil, fmt.Errorf("immich metadata search failed: %w", err)
		}

		assets = append(assets, resp.Assets.Items...)
		if resp.Assets.NextPage == "" || len(resp.Assets.Items) == 0 {
			break
		}
		page++
	}
	return assets, nil
}
