package mocks

import (
	"context"

	"lr2immich/core/immich"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of immich.Client
type Client struct {
	mock.Mock
}

func (m *Client) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *Client) AllAlbums(ctx context.Context) ([]immich.Album, error) {
	args := m.Called(ctx)
	if albums, ok := args.Get(0).([]immich.Album); ok {
		return albums, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) AlbumAssetIDs(ctx context.Context, albumID string) ([]string, error) {
	args := m.Called(ctx, albumID)
	if ids, ok := args.Get(0).([]string); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) CreateAlbum(ctx context.Context, name string) (*immich.Album, error) {
	args := m.Called(ctx, name)
	if album, ok := args.Get(0).(*immich.Album); ok {
		return album, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) AddAssets(ctx context.Context, albumID string, assetIDs []string) ([]immich.AddResult, error) {
	args := m.Called(ctx, albumID, assetIDs)
	if results, ok := args.Get(0).([]immich.AddResult); ok {
		return results, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) SearchAssets(ctx context.Context, query immich.SearchQuery) ([]immich.Asset, error) {
	args := m.Called(ctx, query)
	if assets, ok := args.Get(0).([]immich.Asset); ok {
		return assets, args.Error(1)
	}
	return nil, args.Error(1)
}
