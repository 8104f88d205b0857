package catalog

import (
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// seedCatalog writes a minimal Lightroom catalog fixture to a temp file:
// a collection set "2023" holding "Summer Trip" with two usable photos
// and one corrupt row, plus a smart collection and a system collection.
func seedCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.lrcat")

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	stmts := []string{
		`CREATE TABLE AgLibraryCollection (id_local INTEGER PRIMARY KEY, parent INTEGER, name TEXT, creationId TEXT, systemOnly INTEGER)`,
		`CREATE TABLE AgLibraryCollectionImage (collection INTEGER, image INTEGER, positionInCollection REAL)`,
		`CREATE TABLE Adobe_images (id_local INTEGER PRIMARY KEY, id_global TEXT, rootFile INTEGER, captureTime TEXT, fileWidth INTEGER, fileHeight INTEGER)`,
		`CREATE TABLE AgLibraryFile (id_local INTEGER PRIMARY KEY, idx_filename TEXT, folder INTEGER)`,
		`CREATE TABLE AgLibraryFolder (id_local INTEGER PRIMARY KEY, pathFromRoot TEXT, rootFolder INTEGER)`,
		`CREATE TABLE AgLibraryRootFolder (id_local INTEGER PRIMARY KEY, absolutePath TEXT)`,

		`INSERT INTO AgLibraryRootFolder VALUES (1, '/Users/anna/Pictures/')`,
		`INSERT INTO AgLibraryFolder VALUES (1, '2023/Summer/', 1)`,
		`INSERT INTO AgLibraryFile VALUES (1, 'IMG_001.jpg', 1)`,
		`INSERT INTO AgLibraryFile VALUES (2, 'IMG_002.jpg', 1)`,
		`INSERT INTO AgLibraryFile VALUES (3, 'IMG_003.jpg', 1)`,
		`INSERT INTO Adobe_images VALUES (11, 'uuid-1', 1, '2023-07-14T18:30:05', 6000, 4000)`,
		`INSERT INTO Adobe_images VALUES (12, 'uuid-2', 2, '2023-07-15T09:00:00', 4000, 6000)`,
		`INSERT INTO Adobe_images VALUES (13, '', 3, NULL, NULL, NULL)`,
		`INSERT INTO AgLibraryCollection VALUES (100, NULL, '2023', 'com.adobe.ag.library.group', 0)`,
		`INSERT INTO AgLibraryCollection VALUES (101, 100, 'Summer Trip', 'com.adobe.ag.library.collection', 0)`,
		`INSERT INTO AgLibraryCollection VALUES (102, NULL, 'Best of 2023', 'com.adobe.ag.library.smart_collection', 0)`,
		`INSERT INTO AgLibraryCollection VALUES (103, NULL, 'quickCollection', 'com.adobe.ag.library.collection', 1)`,
		`INSERT INTO AgLibraryCollectionImage VALUES (101, 11, 1.0)`,
		`INSERT INTO AgLibraryCollectionImage VALUES (101, 13, 2.0)`,
		`INSERT INTO AgLibraryCollectionImage VALUES (101, 12, 3.0)`,
	}
	for _, stmt := range stmts {
		require.NoError(t, db.Exec(stmt).Error)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	return path
}

// setupMockDB creates a Catalog over a mock SQL connection for error-path
// tests that a real file cannot produce.
func setupMockDB(t *testing.T) (*Catalog, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	// The sqlite dialector probes the engine version while initializing.
	mock.ExpectQuery(`select sqlite_version\(\)`).
		WillReturnRows(sqlmock.NewRows([]string{"sqlite_version()"}).AddRow("3.45.1"))

	gormDB, err := gorm.Open(&sqlite.Dialector{Conn: db}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return &Catalog{db: gormDB}, mock
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(Config{Path: filepath.Join(t.TempDir(), "absent.lrcat")})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open(Config{})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestOpen_NotALightroomCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE not_lightroom (id INTEGER)").Error)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = Open(Config{Path: path})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "missing tables")
}

func TestOpen_ValidCatalog(t *testing.T) {
	cat, err := Open(Config{Path: seedCatalog(t)})
	require.NoError(t, err)
	assert.NoError(t, cat.Close())
}

func TestTableColumns(t *testing.T) {
	cat, err := Open(Config{Path: seedCatalog(t)})
	require.NoError(t, err)
	defer cat.Close()

	columns, err := cat.TableColumns("Adobe_images")
	assert.NoError(t, err)
	assert.Len(t, columns, 6)

	// Map columns to map for easy assertion
	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}

	assert.Equal(t, "integer", colMap["id_local"])
	assert.Equal(t, "text", colMap["id_global"])
	assert.Equal(t, "text", colMap["capturetime"])

	// PRAGMA table_info yields an empty result for a missing table.
	cols, err := cat.TableColumns("non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}
