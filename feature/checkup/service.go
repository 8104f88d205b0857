package checkup

import (
	"context"
	"fmt"

	"lr2immich/core/catalog"
	"lr2immich/core/config"
	"lr2immich/core/idcache"
	"lr2immich/core/immich"

	"go.uber.org/zap"
)

// Result is the outcome of one dependency check.
type Result struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Service runs dependency checks against the configured collaborators.
type Service struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewService creates a new checkup service.
func NewService(cfg *config.Config, logger *zap.Logger) *Service {
	return &Service{cfg: cfg, logger: logger}
}

// RunAll executes every check in order. A failing check never stops
// the remaining ones.
func (s *Service) RunAll(ctx context.Context) []Result {
	return []Result{
		s.CheckConfig(),
		s.CheckCatalog(ctx),
		s.CheckImmich(ctx),
		s.CheckCache(ctx),
	}
}

// AllOK reports whether every result passed.
func AllOK(results []Result) bool {
	for _, r := range results {
		if !r.OK {
			return false
		}
	}
	return true
}

// CheckConfig validates the settings without touching any dependency.
func (s *Service) CheckConfig() Result {
	res := Result{Name: "config"}
	switch {
	case s.cfg.Catalog.Path == "":
		res.Error = "catalog.path is not set"
	case s.cfg.Immich.URL == "":
		res.Error = "immich.url is not set"
	case s.cfg.Immich.ApiKey == "":
		res.Error = "immich.api_key is not set"
	case !s.cfg.Cache.IsValidBackend():
		res.Error = fmt.Sprintf("unknown cache backend %q", s.cfg.Cache.Backend)
	default:
		res.OK = true
		res.Detail = "settings complete"
	}
	return res
}

// CheckCatalog opens the catalog read-only and counts its collections.
func (s *Service) CheckCatalog(ctx context.Context) Result {
	res := Result{Name: "catalog"}
	cat, err := catalog.Open(s.cfg.Catalog)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer cat.Close()

	collections, err := cat.Collections(ctx)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.OK = true
	res.Detail = fmt.Sprintf("%d collections", len(collections))
	return res
}

// CheckImmich pings the server and counts the visible albums.
func (s *Service) CheckImmich(ctx context.Context) Result {
	res := Result{Name: "immich"}
	client := immich.NewClient(s.cfg.Immich)
	if err := client.Ping(ctx); err != nil {
		res.Error = err.Error()
		return res
	}

	albums, err := client.AllAlbums(ctx)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.OK = true
	res.Detail = fmt.Sprintf("%d albums", len(albums))
	return res
}

// CheckCache opens the configured cache backend and counts its entries.
func (s *Service) CheckCache(ctx context.Context) Result {
	res := Result{Name: "cache"}
	cache, err := idcache.Open(s.cfg.Cache)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer cache.Close()

	entries, err := cache.Len(ctx)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.OK = true
	res.Detail = fmt.Sprintf("backend %s, %d entries", s.cfg.Cache.Backend, entries)
	return res
}
