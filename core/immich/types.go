package immich

import "time"

// Album is a target-side album.
type Album struct {
	ID         string `json:"id"`
	Name       string `json:"albumName"`
	AssetCount int    `json:"assetCount"`
}

// ExifInfo carries the subset of EXIF metadata used for asset matching.
type ExifInfo struct {
	DateTimeOriginal *time.Time `json:"dateTimeOriginal"`
	ExifImageWidth   int        `json:"exifImageWidth"`
	ExifImageHeight  int        `json:"exifImageHeight"`
}

// Asset is a target-side asset as returned by album info and metadata search.
type Asset struct {
	ID            string     `json:"id"`
	FileName      string     `json:"originalFileName"`
	Checksum      string     `json:"checksum"`
	LocalDateTime *time.Time `json:"localDateTime"`
	ExifInfo      *ExifInfo  `json:"exifInfo"`
}

// TakenAt returns the best capture timestamp for the asset, preferring the
// EXIF original time over the file's local date time. Zero when neither is set.
func (a Asset) TakenAt() time.Time {
	if a.ExifInfo != nil && a.ExifInfo.DateTimeOriginal != nil {
		return *a.ExifInfo.DateTimeOriginal
	}
	if a.LocalDateTime != nil {
		return *a.LocalDateTime
	}
	return time.Time{}
}

// Dimensions returns the pixel dimensions, or zeros when unknown.
func (a Asset) Dimensions() (int, int) {
	if a.ExifInfo == nil {
		return 0, 0
	}
	return a.ExifInfo.ExifImageWidth, a.ExifInfo.ExifImageHeight
}

// AddResult is one entry of the bulk-id response from adding assets to an album.
// Error is "duplicate" when the asset was already a member.
type AddResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SearchQuery describes a metadata search. Zero-valued fields are omitted
// from the request.
type SearchQuery struct {
	// FileName matches the asset's original file name exactly.
	FileName string
	// Checksum matches the asset's content checksum exactly.
	Checksum string
	// TakenAfter and TakenBefore bound the capture timestamp.
	TakenAfter  *time.Time
	TakenBefore *time.Time
}
