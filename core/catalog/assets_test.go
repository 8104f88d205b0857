package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssets(t *testing.T) {
	cat, err := Open(Config{Path: seedCatalog(t)})
	require.NoError(t, err)
	defer cat.Close()

	assets, err := cat.Assets(context.Background(), 101)
	require.NoError(t, err)
	// The row without an image UUID is dropped.
	require.Len(t, assets, 2)

	first := assets[0]
	assert.Equal(t, "uuid-1", first.UUID)
	assert.Equal(t, "IMG_001.jpg", first.FileName)
	assert.Equal(t, "/Users/anna/Pictures/2023/Summer/IMG_001.jpg", first.Path)
	assert.Equal(t, 6000, first.Width)
	assert.Equal(t, 4000, first.Height)
	assert.True(t, first.CaptureTime.Equal(time.Date(2023, 7, 14, 18, 30, 5, 0, time.UTC)),
		"got capture time %v", first.CaptureTime)

	// Collection order is preserved.
	assert.Equal(t, "IMG_002.jpg", assets[1].FileName)
}

func TestAssets_UnknownCollection(t *testing.T) {
	cat, err := Open(Config{Path: seedCatalog(t)})
	require.NoError(t, err)
	defer cat.Close()

	assets, err := cat.Assets(context.Background(), 999)
	assert.NoError(t, err)
	assert.Empty(t, assets)
}

func TestAssets_QueryError(t *testing.T) {
	cat, mock := setupMockDB(t)
	mock.ExpectQuery("FROM AgLibraryCollectionImage").WillReturnError(assert.AnError)

	_, err := cat.Assets(context.Background(), 101)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query collection 101")
}

func TestAssets_ScanCoercion(t *testing.T) {
	cat, mock := setupMockDB(t)

	// Drivers hand loosely typed columns back as bytes or NULL.
	cols := []string{"uuid", "file_name", "root_path", "folder_path", "capture_time", "width", "height"}
	mock.ExpectQuery("FROM AgLibraryCollectionImage").WillReturnRows(
		sqlmock.NewRows(cols).
			AddRow([]byte("uuid-1"), []byte("IMG_001.jpg"), "/p/", "f/", []byte("2023-07-14T18:30:05"), "6000", nil).
			AddRow(nil, []byte("IMG_002.jpg"), "/p/", "f/", nil, nil, nil),
	)

	assets, err := cat.Assets(context.Background(), 101)
	require.NoError(t, err)
	// The row without a UUID is dropped.
	require.Len(t, assets, 1)

	got := assets[0]
	assert.Equal(t, "uuid-1", got.UUID)
	assert.Equal(t, "/p/f/IMG_001.jpg", got.Path)
	assert.Equal(t, 6000, got.Width)
	assert.Equal(t, 0, got.Height)
	assert.True(t, got.CaptureTime.Equal(time.Date(2023, 7, 14, 18, 30, 5, 0, time.UTC)))
}
