package catalog

import (
	"context"
	"fmt"
	"time"

	"lr2immich/core/utils"
)

// AssetRef is the source-side identity of one photo or video in a collection.
// It is immutable and read fresh from the catalog on every run.
type AssetRef struct {
	// UUID is Lightroom's global image id (informational only).
	UUID string
	// FileName is the original file name including extension.
	FileName string
	// Path is the absolute path of the master file as recorded by Lightroom.
	Path string
	// CaptureTime is the capture timestamp; zero when the catalog has none.
	CaptureTime time.Time
	// Checksum is an optional content hash. Lightroom catalogs rarely carry
	// one, but other catalog sources may.
	Checksum string
	// Width and Height are the pixel dimensions; zero when unknown.
	Width  int
	Height int
}

const assetQuery = `
SELECT
    i.id_global     AS uuid,
    f.idx_filename  AS file_name,
    rf.absolutePath AS root_path,
    fo.pathFromRoot AS folder_path,
    i.captureTime   AS capture_time,
    i.fileWidth     AS width,
    i.fileHeight    AS height
FROM AgLibraryCollectionImage ci
JOIN Adobe_images i          ON i.id_local = ci.image
JOIN AgLibraryFile f         ON f.id_local = i.rootFile
JOIN AgLibraryFolder fo      ON fo.id_local = f.folder
JOIN AgLibraryRootFolder rf  ON rf.id_local = fo.rootFolder
WHERE ci.collection = ?
ORDER BY ci.positionInCollection, ci.image
`

// Assets returns the ordered member assets of a collection.
// Rows without a file name or image UUID are skipped. Lightroom stores
// capture times and dimensions loosely (TEXT timestamps, nullable numbers),
// so rows are scanned generically and coerced per column.
func (c *Catalog) Assets(ctx context.Context, collectionID int64) ([]AssetRef, error) {
	dbRows, err := c.db.WithContext(ctx).Raw(assetQuery, collectionID).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query collection %d: %w", collectionID, err)
	}
	defer dbRows.Close()

	columns, err := dbRows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var assets []AssetRef
	for dbRows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := dbRows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(map[string]interface{})
		for i, col := range columns {
			row[col] = values[i]
		}

		ref := AssetRef{
			UUID:     utils.ToString(row["uuid"]),
			FileName: utils.ToString(row["file_name"]),
			Path:     utils.ToString(row["root_path"]) + utils.ToString(row["folder_path"]) + utils.ToString(row["file_name"]),
			Width:    utils.ToInt(row["width"]),
			Height:   utils.ToInt(row["height"]),
		}
		if t, ok := utils.ToTime(row["capture_time"]); ok {
			ref.CaptureTime = t
		}

		if ref.FileName == "" || ref.UUID == "" {
			continue
		}
		assets = append(assets, ref)
	}
	if err := dbRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read collection %d: %w", collectionID, err)
	}

	return assets, nil
}
