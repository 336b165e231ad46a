package catalog

import (
	"os"
	"path/filepath"
	"strings"

	"switchshop/core/metadata"
)

// Recognized container formats, lowercased.
var formats = map[string]struct{}{
	"nsp": {},
	"nsz": {},
	"xci": {},
	"xcz": {},
}

// imageExts is the fixed probe order for image resolution.
var imageExts = [...]string{"jpg", "png", "jpeg", "webp"}

// Build constructs a catalog entry for the file at path. It returns
// ok=false for anything that is not a regular file with a recognized
// container extension.
//
// When a metadata snapshot is supplied and the filename carries a
// title identifier, the display name and publisher are overlaid from
// the title record (when one exists) and the latest known version is
// looked up in the version history.
//
// Image resolution, first match wins: the pre-fetched cache under
// dataDir/images/<ID>.<ext>, then a sibling file sharing the game
// file's stem.
func Build(path, rootDir, dataDir string, meta *metadata.Snapshot) (Entry, bool) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return Entry{}, false
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if _, ok := formats[ext]; !ok {
		return Entry{}, false
	}

	rel := relativeTo(rootDir, path)
	name, titleID, version, category := Classify(filepath.Base(path))

	entry := Entry{
		Name:         name,
		Path:         path,
		RelativePath: rel,
		Size:         uint64(info.Size()),
		Format:       ext,
		TitleID:      titleID,
		Version:      version,
		Category:     category,
	}

	if meta != nil && titleID != "" {
		if rec, ok := meta.Title(titleID); ok {
			if rec.Name != "" {
				entry.Name = rec.Name
			}
			entry.Publisher = rec.Publisher
		}
		if latest, ok := meta.LatestVersion(titleID); ok {
			entry.LatestVersion = latest
		}
	}

	entry.ImageURL = resolveImage(path, rootDir, dataDir, titleID)
	return entry, true
}

// resolveImage finds an image for the entry, preferring the cache
// over sibling files. Extensions are probed in the fixed imageExts
// order.
func resolveImage(path, rootDir, dataDir, titleID string) string {
	if titleID != "" {
		for _, ext := range imageExts {
			cached := filepath.Join(dataDir, "images", titleID+"."+ext)
			if _, err := os.Stat(cached); err == nil {
				return "/images/" + titleID + "." + ext
			}
		}
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for _, ext := range imageExts {
		sibling := filepath.Join(filepath.Dir(path), stem+"."+ext)
		if _, err := os.Stat(sibling); err == nil {
			return relativeTo(rootDir, sibling)
		}
	}
	return ""
}

// relativeTo computes the slash-separated path of target relative to
// root, falling back to the absolute path when target does not live
// under root.
func relativeTo(root, target string) string {
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return target
	}
	return filepath.ToSlash(rel)
}
