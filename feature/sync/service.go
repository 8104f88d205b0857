package sync

import (
	"context"
	"sync"
	"time"

	"lr2immich/core/catalog"
	"lr2immich/core/idcache"
	"lr2immich/core/immich"
	"lr2immich/core/syncer"

	"go.uber.org/zap"
)

// RunReport is the serve-mode view of one finished pass.
type RunReport struct {
	Status           string    `json:"status"`
	StartedAt        time.Time `json:"started_at"`
	DurationSeconds  float64   `json:"duration_seconds"`
	Albums           int       `json:"albums"`
	AlbumsCreated    int       `json:"albums_created"`
	AlbumsFailed     int       `json:"albums_failed"`
	AssetsResolved   int       `json:"assets_resolved"`
	AssetsUnresolved int       `json:"assets_unresolved"`
	AssetsAdded      int       `json:"assets_added"`
	Error            string    `json:"error,omitempty"`
}

// Status is the scheduler state reported to clients.
type Status struct {
	Running bool       `json:"running"`
	LastRun *RunReport `json:"last_run,omitempty"`
}

// Service runs scheduled sync passes and exposes their state.
type Service struct {
	catalogCfg catalog.Config
	client     immich.Client
	cache      idcache.Cache
	syncCfg    syncer.Config
	opts       syncer.Options
	logger     *zap.Logger

	trigger chan struct{}

	mu      sync.Mutex
	running bool
	last    *RunReport
}

// NewService creates the scheduled sync service. The catalog is opened
// fresh for every pass so a catalog file swapped between runs is
// picked up.
func NewService(catalogCfg catalog.Config, client immich.Client, cache idcache.Cache, syncCfg syncer.Config, opts syncer.Options, logger *zap.Logger) *Service {
	return &Service{
		catalogCfg: catalogCfg,
		client:     client,
		cache:      cache,
		syncCfg:    syncCfg,
		opts:       opts,
		logger:     logger,
		trigger:    make(chan struct{}, 1),
	}
}

// Start blocks and runs sync passes until ctx is canceled: one
// immediately, then one per interval, plus any triggered in between.
// A non-positive interval disables the timer and leaves only triggers.
func (s *Service) Start(ctx context.Context, interval time.Duration) {
	s.runOnce(ctx)

	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
			s.runOnce(ctx)
		case <-s.trigger:
			s.runOnce(ctx)
		}
	}
}

// Trigger queues an immediate pass. Reports false when one is already
// queued.
func (s *Service) Trigger() bool {
	select {
	case s.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}

// Status returns the scheduler state.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{Running: s.running, LastRun: s.last}
}

func (s *Service) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	started := time.Now()
	summary, err := s.runSync(ctx)
	report := buildReport(started, summary, err)

	s.mu.Lock()
	s.running = false
	s.last = &report
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("sync pass failed", zap.Error(err))
		return
	}
	s.logger.Info("sync pass finished",
		zap.String("status", summary.Status),
		zap.Int("albums", summary.Albums),
		zap.Int("added", summary.AssetsAdded),
		zap.Int("unresolved", summary.AssetsUnresolved),
		zap.Duration("duration", summary.Duration),
	)
}

func (s *Service) runSync(ctx context.Context) (*syncer.Summary, error) {
	cat, err := catalog.Open(s.catalogCfg)
	if err != nil {
		return nil, err
	}
	defer cat.Close()

	engine := syncer.NewEngine(cat, s.client, s.cache, s.syncCfg, s.logger)
	return engine.Run(ctx, s.opts)
}

func buildReport(started time.Time, summary *syncer.Summary, err error) RunReport {
	report := RunReport{
		Status:    syncer.StatusFailed,
		StartedAt: started,
	}
	if err != nil {
		report.Error = err.Error()
		report.DurationSeconds = time.Since(started).Seconds()
		return report
	}
	report.Status = summary.Status
	report.DurationSeconds = summary.Duration.Seconds()
	report.Albums = summary.Albums
	report.AlbumsCreated = summary.AlbumsCreated
	report.AlbumsFailed = summary.AlbumsFailed
	report.AssetsResolved = summary.AssetsResolved
	report.AssetsUnresolved = summary.AssetsUnresolved
	report.AssetsAdded = summary.AssetsAdded
	return report
}
