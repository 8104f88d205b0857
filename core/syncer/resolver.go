package syncer

import (
	"context"
	"sort"
	"strings"
	"time"

	"lr2immich/core/catalog"
	"lr2immich/core/idcache"
	"lr2immich/core/immich"

	"go.uber.org/zap"
)

// searchSkew widens capture-time searches to absorb sub-second clock
// differences between the catalog and the server.
const searchSkew = time.Second

// Resolver maps catalog asset references to Immich asset ids.
type Resolver struct {
	client immich.Client
	cache  idcache.Cache
	cfg    Config
	logger *zap.Logger
}

// NewResolver creates a Resolver backed by the given client and cache.
func NewResolver(client immich.Client, cache idcache.Cache, cfg Config, logger *zap.Logger) *Resolver {
	return &Resolver{
		client: client,
		cache:  cache,
		cfg:    cfg,
		logger: logger,
	}
}

// Resolve maps one asset reference to its Immich id. Cache hits are
// trusted without re-verification. Misses go through a staged metadata
// search; an empty result or exhausted retries leaves the reference
// unresolved and never fails the run.
func (r *Resolver) Resolve(ctx context.Context, ref catalog.AssetRef) ResolvedAsset {
	res := ResolvedAsset{Ref: ref, Fingerprint: FingerprintOf(ref)}

	id, ok, err := r.cache.Get(ctx, res.Fingerprint)
	if err != nil {
		r.logger.Warn("cache read failed",
			zap.String("file", ref.FileName),
			zap.Error(err),
		)
	}
	if ok {
		res.AssetID = id
		res.Method = MatchCache
		return res
	}

	candidates, err := r.search(ctx, ref)
	if err != nil {
		res.Method = MatchUnresolved
		res.Err = err
		return res
	}
	if len(candidates) == 0 {
		res.Method = MatchUnresolved
		return res
	}

	picked, ambiguous := pickCandidate(ref, candidates)
	res.AssetID = picked.ID
	res.Method = MatchSearch
	res.Ambiguous = ambiguous
	if ambiguous {
		r.logger.Warn("ambiguous match",
			zap.String("file", ref.FileName),
			zap.Int("candidates", len(candidates)),
			zap.String("picked", picked.ID),
		)
	}

	// Write-through is best effort; a lost put only costs a future search.
	if err := r.cache.Set(ctx, res.Fingerprint, res.AssetID); err != nil {
		r.logger.Warn("cache write failed",
			zap.String("file", ref.FileName),
			zap.Error(err),
		)
	}
	return res
}

// searchStage is one rung of the query ladder. keep, when set, narrows
// the response to candidates the metadata search cannot filter itself.
type searchStage struct {
	name  string
	query immich.SearchQuery
	keep  func(immich.Asset) bool
}

// searchStages builds the query ladder for one reference, most
// discriminating first: checksum when present, then basename within one
// second of the capture time, then the capture window alone with
// candidates narrowed by exact dimensions.
func searchStages(ref catalog.AssetRef) []searchStage {
	var stages []searchStage
	if ref.Checksum != "" {
		stages = append(stages, searchStage{
			name:  "checksum",
			query: immich.SearchQuery{Checksum: ref.Checksum},
		})
	}
	if ref.FileName != "" {
		stage := searchStage{
			name:  "filename",
			query: immich.SearchQuery{FileName: ref.FileName},
		}
		if !ref.CaptureTime.IsZero() {
			after := ref.CaptureTime.Add(-searchSkew)
			before := ref.CaptureTime.Add(searchSkew)
			stage.query.TakenAfter = &after
			stage.query.TakenBefore = &before
		}
		stages = append(stages, stage)
	}
	if !ref.CaptureTime.IsZero() && ref.Width > 0 && ref.Height > 0 {
		after := ref.CaptureTime.Add(-searchSkew)
		before := ref.CaptureTime.Add(searchSkew)
		stages = append(stages, searchStage{
			name:  "capture window",
			query: immich.SearchQuery{TakenAfter: &after, TakenBefore: &before},
			keep: func(a immich.Asset) bool {
				w, h := a.Dimensions()
				return w == ref.Width && h == ref.Height
			},
		})
	}
	return stages
}

// search walks the query ladder and returns the first non-empty
// candidate set.
func (r *Resolver) search(ctx context.Context, ref catalog.AssetRef) ([]immich.Asset, error) {
	for _, stage := range searchStages(ref) {
		var assets []immich.Asset
		err := withRetry(ctx, r.logger, r.cfg.MaxRetries, r.cfg.RetryDelay(), "metadata search", func() error {
			var err error
			assets, err = r.client.SearchAssets(ctx, stage.query)
			return err
		})
		if err != nil {
			return nil, err
		}
		if stage.keep != nil {
			kept := assets[:0]
			for _, a := range assets {
				if stage.keep(a) {
					kept = append(kept, a)
				}
			}
			assets = kept
		}
		if len(assets) > 0 {
			return assets, nil
		}
	}
	return nil, nil
}

// pickCandidate applies the deterministic tie-break to a non-empty
// candidate set: exact checksum match first, then the unique nearest
// capture time, then the lowest id. The second return reports whether
// the choice fell through to the lexicographic rule.
func pickCandidate(ref catalog.AssetRef, candidates []immich.Asset) (immich.Asset, bool) {
	if len(candidates) == 1 {
		return candidates[0], false
	}

	if ref.Checksum != "" {
		for _, c := range candidates {
			if strings.EqualFold(c.Checksum, ref.Checksum) {
				return c, false
			}
		}
	}

	if !ref.CaptureTime.IsZero() {
		best := -1
		var bestDelta time.Duration
		unique := true
		for i, c := range candidates {
			taken := c.TakenAt()
			if taken.IsZero() {
				continue
			}
			delta := ref.CaptureTime.Sub(taken)
			if delta < 0 {
				delta = -delta
			}
			switch {
			case best < 0 || delta < bestDelta:
				best = i
				bestDelta = delta
				unique = true
			case delta == bestDelta:
				unique = false
			}
		}
		if best >= 0 && unique {
			return candidates[best], false
		}
	}

	sorted := make([]immich.Asset, len(candidates))
	copy(sorted, candidates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return sorted[0], true
}
