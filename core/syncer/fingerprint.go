package syncer

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"lr2immich/core/catalog"
)

// FingerprintOf derives the stable cache key for a catalog asset.
// References carrying a checksum key on it directly; the rest key on a
// hash of the normalized path plus capture timestamp. The same
// reference yields the same fingerprint on every run.
func FingerprintOf(ref catalog.AssetRef) string {
	if ref.Checksum != "" {
		return "cs:" + strings.ToLower(ref.Checksum)
	}
	seed := normalizePath(ref.Path) + "|" + strconv.FormatInt(ref.CaptureTime.UTC().Unix(), 10)
	sum := sha256.Sum256([]byte(seed))
	return "pt:" + hex.EncodeToString(sum[:])
}

// normalizePath folds separators and case so the same catalog entry
// fingerprints identically whether the catalog was written on Windows
// or macOS.
func normalizePath(path string) string {
	return strings.ToLower(strings.ReplaceAll(path, "\\", "/"))
}
