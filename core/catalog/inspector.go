package catalog

import (
	"fmt"
	"strings"
)

// requiredTables is the minimal Lightroom schema surface the sync reads from.
var requiredTables = []string{
	"AgLibraryCollection",
	"AgLibraryCollectionImage",
	"Adobe_images",
	"AgLibraryFile",
	"AgLibraryFolder",
	"AgLibraryRootFolder",
}

// ColumnInfo describes a single column of a catalog table.
type ColumnInfo struct {
	Field string
	Type  string
}

// TableColumns retrieves the column definitions for a given catalog table
// via PRAGMA table_info. A non-existent table yields an empty result.
func (c *Catalog) TableColumns(tableName string) ([]ColumnInfo, error) {
	type sqliteColumn struct {
		Cid        int
		Name       string
		Type       string
		Notnull    int
		DefaultVal *string
		Pk         int
	}
	var sqliteCols []sqliteColumn
	if err := c.db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&sqliteCols).Error; err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}

	columns := make([]ColumnInfo, 0, len(sqliteCols))
	for _, col := range sqliteCols {
		columns = append(columns, ColumnInfo{
			Field: strings.ToLower(col.Name),
			Type:  strings.ToLower(col.Type),
		})
	}
	return columns, nil
}

// validateSchema verifies that every table the sync depends on exists.
// A missing table means the file is not a Lightroom catalog (or a version
// whose schema we do not understand), which is treated as unavailability.
func (c *Catalog) validateSchema() error {
	var missing []string
	for _, table := range requiredTables {
		columns, err := c.TableColumns(table)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if len(columns) == 0 {
			missing = append(missing, table)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing tables %s", ErrUnavailable, strings.Join(missing, ", "))
	}
	return nil
}
