package syncer

import (
	"context"
	"errors"
	"testing"
	"time"

	"lr2immich/core/catalog"
	"lr2immich/core/idcache"
	"lr2immich/core/immich"
	"lr2immich/core/immich/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCache is a Cache stub with overridable behavior per test.
type fakeCache struct {
	getFunc func(ctx context.Context, fingerprint string) (string, bool, error)
	setFunc func(ctx context.Context, fingerprint, assetID string) error
}

func (f *fakeCache) Get(ctx context.Context, fingerprint string) (string, bool, error) {
	if f.getFunc != nil {
		return f.getFunc(ctx, fingerprint)
	}
	return "", false, nil
}

func (f *fakeCache) Set(ctx context.Context, fingerprint, assetID string) error {
	if f.setFunc != nil {
		return f.setFunc(ctx, fingerprint, assetID)
	}
	return nil
}

func (f *fakeCache) Len(ctx context.Context) (int64, error) { return 0, nil }
func (f *fakeCache) Flush(ctx context.Context) error        { return nil }
func (f *fakeCache) Close() error                           { return nil }

func newMemCache(t *testing.T) idcache.Cache {
	t.Helper()
	cache, err := idcache.Open(idcache.Config{Backend: idcache.BackendMemory})
	require.NoError(t, err)
	return cache
}

func TestResolver_CacheHitSkipsSearch(t *testing.T) {
	ctx := context.Background()
	ref := catalog.AssetRef{
		FileName:    "IMG_001.jpg",
		Path:        "/pics/IMG_001.jpg",
		CaptureTime: time.Date(2023, 7, 14, 18, 30, 5, 0, time.UTC),
	}

	cache := newMemCache(t)
	require.NoError(t, cache.Set(ctx, FingerprintOf(ref), "as-cached"))

	client := new(mocks.Client)
	resolver := NewResolver(client, cache, Config{MaxRetries: 1}, zap.NewNop())

	res := resolver.Resolve(ctx, ref)

	assert.Equal(t, "as-cached", res.AssetID)
	assert.Equal(t, MatchCache, res.Method)
	assert.True(t, res.Resolved())
	client.AssertNotCalled(t, "SearchAssets", mock.Anything, mock.Anything)
}

func TestResolver_ChecksumSearch(t *testing.T) {
	ctx := context.Background()
	ref := catalog.AssetRef{
		FileName: "IMG_001.jpg",
		Path:     "/pics/IMG_001.jpg",
		Checksum: "abc123",
	}

	client := new(mocks.Client)
	client.On("SearchAssets", mock.Anything, immich.SearchQuery{Checksum: "abc123"}).
		Return([]immich.Asset{{ID: "as-1", Checksum: "abc123"}}, nil)

	cache := newMemCache(t)
	resolver := NewResolver(client, cache, Config{MaxRetries: 1}, zap.NewNop())

	res := resolver.Resolve(ctx, ref)

	assert.Equal(t, "as-1", res.AssetID)
	assert.Equal(t, MatchSearch, res.Method)
	assert.False(t, res.Ambiguous)
	client.AssertExpectations(t)

	// The match is written through so the next run skips the search.
	id, ok, err := cache.Get(ctx, res.Fingerprint)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "as-1", id)
}

func TestResolver_FallsThroughToCaptureWindow(t *testing.T) {
	ctx := context.Background()
	capture := time.Date(2023, 7, 14, 18, 30, 5, 0, time.UTC)
	ref := catalog.AssetRef{
		FileName:    "IMG_010.jpg",
		Path:        "/pics/IMG_010.jpg",
		CaptureTime: capture,
		Width:       6000,
		Height:      4000,
	}

	after := capture.Add(-searchSkew)
	before := capture.Add(searchSkew)
	taken := capture

	client := new(mocks.Client)
	// The renamed file no longer matches by name.
	client.On("SearchAssets", mock.Anything, immich.SearchQuery{
		FileName:    "IMG_010.jpg",
		TakenAfter:  &after,
		TakenBefore: &before,
	}).Return([]immich.Asset{}, nil)
	// The capture window returns two assets; only one has matching dimensions.
	client.On("SearchAssets", mock.Anything, immich.SearchQuery{
		TakenAfter:  &after,
		TakenBefore: &before,
	}).Return([]immich.Asset{
		{ID: "as-other", LocalDateTime: &taken, ExifInfo: &immich.ExifInfo{ExifImageWidth: 1920, ExifImageHeight: 1080}},
		{ID: "as-match", LocalDateTime: &taken, ExifInfo: &immich.ExifInfo{ExifImageWidth: 6000, ExifImageHeight: 4000}},
	}, nil)

	resolver := NewResolver(client, newMemCache(t), Config{MaxRetries: 1}, zap.NewNop())

	res := resolver.Resolve(ctx, ref)

	assert.Equal(t, "as-match", res.AssetID)
	assert.Equal(t, MatchSearch, res.Method)
	assert.False(t, res.Ambiguous)
	client.AssertExpectations(t)
}

func TestResolver_NoCandidatesUnresolved(t *testing.T) {
	ctx := context.Background()
	ref := catalog.AssetRef{FileName: "IMG_404.jpg", Path: "/pics/IMG_404.jpg"}

	client := new(mocks.Client)
	client.On("SearchAssets", mock.Anything, mock.Anything).Return([]immich.Asset{}, nil)

	cache := newMemCache(t)
	resolver := NewResolver(client, cache, Config{MaxRetries: 1}, zap.NewNop())

	res := resolver.Resolve(ctx, ref)

	assert.False(t, res.Resolved())
	assert.Equal(t, MatchUnresolved, res.Method)
	assert.NoError(t, res.Err)

	// Nothing was cached for the miss.
	count, err := cache.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestResolver_SearchErrorUnresolved(t *testing.T) {
	ctx := context.Background()
	ref := catalog.AssetRef{FileName: "IMG_001.jpg", Path: "/pics/IMG_001.jpg"}

	client := new(mocks.Client)
	client.On("SearchAssets", mock.Anything, mock.Anything).Return(nil, immich.ErrAuth)

	resolver := NewResolver(client, newMemCache(t), Config{MaxRetries: 3}, zap.NewNop())

	res := resolver.Resolve(ctx, ref)

	assert.False(t, res.Resolved())
	assert.Equal(t, MatchUnresolved, res.Method)
	assert.ErrorIs(t, res.Err, immich.ErrAuth)
	// Auth rejections are not retried.
	client.AssertNumberOfCalls(t, "SearchAssets", 1)
}

func TestResolver_RetryExhaustedUnresolved(t *testing.T) {
	ctx := context.Background()
	ref := catalog.AssetRef{FileName: "IMG_001.jpg", Path: "/pics/IMG_001.jpg", Checksum: "deadbeef"}

	client := new(mocks.Client)
	client.On("SearchAssets", mock.Anything, mock.Anything).Return(nil, immich.ErrUnavailable)

	resolver := NewResolver(client, newMemCache(t), Config{MaxRetries: 2}, zap.NewNop())

	res := resolver.Resolve(ctx, ref)

	assert.False(t, res.Resolved())
	assert.ErrorIs(t, res.Err, immich.ErrUnavailable)
	assert.Contains(t, res.Err.Error(), "after 2 attempts")
	client.AssertNumberOfCalls(t, "SearchAssets", 2)
}

func TestResolver_CacheReadFailureFallsThrough(t *testing.T) {
	ctx := context.Background()
	ref := catalog.AssetRef{FileName: "IMG_001.jpg", Path: "/pics/IMG_001.jpg", Checksum: "abc123"}

	cache := &fakeCache{
		getFunc: func(ctx context.Context, fingerprint string) (string, bool, error) {
			return "", false, errors.New("connection refused")
		},
	}
	client := new(mocks.Client)
	client.On("SearchAssets", mock.Anything, mock.Anything).
		Return([]immich.Asset{{ID: "as-1"}}, nil)

	resolver := NewResolver(client, cache, Config{MaxRetries: 1}, zap.NewNop())

	res := resolver.Resolve(ctx, ref)

	assert.Equal(t, "as-1", res.AssetID)
	assert.Equal(t, MatchSearch, res.Method)
}

func TestResolver_CacheWriteFailureIgnored(t *testing.T) {
	ctx := context.Background()
	ref := catalog.AssetRef{FileName: "IMG_001.jpg", Path: "/pics/IMG_001.jpg", Checksum: "abc123"}

	cache := &fakeCache{
		setFunc: func(ctx context.Context, fingerprint, assetID string) error {
			return errors.New("connection refused")
		},
	}
	client := new(mocks.Client)
	client.On("SearchAssets", mock.Anything, mock.Anything).
		Return([]immich.Asset{{ID: "as-1"}}, nil)

	resolver := NewResolver(client, cache, Config{MaxRetries: 1}, zap.NewNop())

	res := resolver.Resolve(ctx, ref)

	assert.Equal(t, "as-1", res.AssetID)
	assert.True(t, res.Resolved())
	assert.NoError(t, res.Err)
}

func TestPickCandidate(t *testing.T) {
	capture := time.Date(2023, 7, 14, 18, 30, 5, 0, time.UTC)

	assetAt := func(id string, taken time.Time) immich.Asset {
		return immich.Asset{ID: id, LocalDateTime: &taken}
	}

	tests := []struct {
		name          string
		ref           catalog.AssetRef
		candidates    []immich.Asset
		wantID        string
		wantAmbiguous bool
	}{
		{
			name:          "SingleCandidate",
			ref:           catalog.AssetRef{FileName: "IMG_001.jpg"},
			candidates:    []immich.Asset{{ID: "as-1"}},
			wantID:        "as-1",
			wantAmbiguous: false,
		},
		{
			name: "ExactChecksumWins",
			ref:  catalog.AssetRef{Checksum: "AB12"},
			candidates: []immich.Asset{
				{ID: "as-a", Checksum: "ffff"},
				{ID: "as-z", Checksum: "ab12"},
			},
			wantID:        "as-z",
			wantAmbiguous: false,
		},
		{
			name: "UniqueClosestCapture",
			ref:  catalog.AssetRef{CaptureTime: capture},
			candidates: []immich.Asset{
				{ID: "as-aa"},
				assetAt("as-zz", capture.Add(200*time.Millisecond)),
			},
			wantID:        "as-zz",
			wantAmbiguous: false,
		},
		{
			name: "ClosestBeatsFarther",
			ref:  catalog.AssetRef{CaptureTime: capture},
			candidates: []immich.Asset{
				assetAt("as-aa", capture.Add(-800*time.Millisecond)),
				assetAt("as-zz", capture.Add(200*time.Millisecond)),
			},
			wantID:        "as-zz",
			wantAmbiguous: false,
		},
		{
			name: "EqualDistanceFallsToLowestID",
			ref:  catalog.AssetRef{CaptureTime: capture},
			candidates: []immich.Asset{
				assetAt("as-bb", capture.Add(time.Second)),
				assetAt("as-aa", capture.Add(-time.Second)),
			},
			wantID:        "as-aa",
			wantAmbiguous: true,
		},
		{
			name: "NoTimestampsFallsToLowestID",
			ref:  catalog.AssetRef{CaptureTime: capture},
			candidates: []immich.Asset{
				{ID: "as-bb"},
				{ID: "as-aa"},
			},
			wantID:        "as-aa",
			wantAmbiguous: true,
		},
		{
			name: "NoSignalsFallsToLowestID",
			ref:  catalog.AssetRef{FileName: "IMG_001.jpg"},
			candidates: []immich.Asset{
				{ID: "as-bb"},
				{ID: "as-aa"},
			},
			wantID:        "as-aa",
			wantAmbiguous: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			picked, ambiguous := pickCandidate(tt.ref, tt.candidates)
			assert.Equal(t, tt.wantID, picked.ID)
			assert.Equal(t, tt.wantAmbiguous, ambiguous)
		})
	}
}
