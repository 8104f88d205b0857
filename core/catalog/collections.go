package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Lightroom collection creation IDs.
const (
	creationIDGroup      = "com.adobe.ag.library.group"
	creationIDCollection = "com.adobe.ag.library.collection"
	creationIDSmart      = "com.adobe.ag.library.smart_collection"
)

// HierarchySeparator joins nested collection names into a single album name,
// e.g. ["2023", "Family", "Christmas"] becomes "2023 > Family > Christmas".
const HierarchySeparator = " > "

// maxDepth bounds the parent walk so a corrupted parent cycle cannot hang us.
const maxDepth = 64

// Collection is one syncable Lightroom collection. Name carries the full
// hierarchy so that sibling names under different sets stay distinct.
type Collection struct {
	// ID is the collection's local id inside the catalog.
	ID int64
	// Name is the hierarchy-flattened collection name.
	Name string
	// Smart reports whether this is a smart (rule-based) collection.
	Smart bool
}

type collectionRow struct {
	ID         int64  `gorm:"column:id_local"`
	Parent     *int64 `gorm:"column:parent"`
	Name       string `gorm:"column:name"`
	CreationID string `gorm:"column:creationId"`
}

// Collections returns every standard and smart collection in the catalog,
// sorted by flattened name. Collection sets (folders) are walked for the
// hierarchy but not returned; they contain no photos directly.
func (c *Catalog) Collections(ctx context.Context) ([]Collection, error) {
	var rows []collectionRow
	err := c.db.WithContext(ctx).
		Raw("SELECT id_local, parent, name, creationId FROM AgLibraryCollection WHERE COALESCE(systemOnly, 0) = 0").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	byID := make(map[int64]collectionRow, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	collections := make([]Collection, 0, len(rows))
	for _, row := range rows {
		switch row.CreationID {
		case creationIDCollection, creationIDSmart:
		default:
			continue
		}
		collections = append(collections, Collection{
			ID:    row.ID,
			Name:  flattenName(row, byID),
			Smart: row.CreationID == creationIDSmart,
		})
	}

	sort.Slice(collections, func(i, j int) bool {
		return collections[i].Name < collections[j].Name
	})
	return collections, nil
}

// flattenName walks the parent chain of a collection and joins the segment
// names root-first with HierarchySeparator.
func flattenName(row collectionRow, byID map[int64]collectionRow) string {
	segments := []string{row.Name}
	parent := row.Parent
	for depth := 0; parent != nil && depth < maxDepth; depth++ {
		p, ok := byID[*parent]
		if !ok {
			break
		}
		segments = append(segments, p.Name)
		parent = p.Parent
	}

	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, HierarchySeparator)
}
