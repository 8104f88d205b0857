// Package catalog handles read-only access to Lightroom Classic catalogs.
//
// It provides a wrapper around GORM with the SQLite driver to open the .lrcat
// file without ever taking a write lock, so a catalog currently open in
// Lightroom can still be read.
//
// # Open
//
// Open establishes the connection and validates that the file carries the
// Lightroom schema the sync depends on. A missing file, a non-catalog SQLite
// database, or an unreadable schema all surface as ErrUnavailable.
//
// # Collections and Assets
//
// Collections lists every standard and smart collection with its hierarchy
// flattened into the name ("2023 > Family > Christmas"); collection sets are
// folders and are skipped. Assets returns a collection's ordered members with
// the loosely typed Lightroom columns (TEXT capture times, nullable
// dimensions) coerced into Go types.
//
// # Schema Inspection
//
// TableColumns exposes PRAGMA-based column inspection, used by the schema
// validation on open and by the check command.
//
// # Usage
//
//	cat, err := catalog.Open(cfg.Catalog)
//	if err != nil {
//	    log.Fatal("Catalog unavailable", err)
//	}
//	defer cat.Close()
//
//	collections, err := cat.Collections(ctx)
package catalog
