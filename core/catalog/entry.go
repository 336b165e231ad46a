package catalog

// Categories a catalog entry can be classified as.
const (
	CategoryBase   = "Base"
	CategoryUpdate = "Update"
	CategoryDLC    = "DLC"
)

// Entry is one game image file known to the catalog. The absolute
// Path is the entry's identity: the catalog never holds two entries
// for the same path. Entries are replaced wholesale on re-discovery,
// never merged field by field.
type Entry struct {
	// Name is the display name, either parsed from the filename or
	// overlaid from the title database.
	Name string `json:"name"`
	// Path is the absolute filesystem path (unique key).
	Path string `json:"path"`
	// RelativePath is the path relative to the games directory,
	// slash-separated, used to build client-facing URLs.
	RelativePath string `json:"relative_path"`
	// Size is the file size in bytes, best-effort (0 if unreadable).
	Size uint64 `json:"size"`
	// Format is the lowercased container extension (nsp, nsz, xci, xcz).
	Format string `json:"format"`
	// TitleID is the normalized 16-character uppercase hex title
	// identifier, empty when the filename carries none.
	TitleID string `json:"title_id,omitempty"`
	// Version is the version tag parsed from the filename (e.g. "v0").
	Version string `json:"version,omitempty"`
	// LatestVersion is the newest version known to the version
	// history for this title, independent of the entry's own Version.
	LatestVersion string `json:"latest_version,omitempty"`
	// Category is one of CategoryBase, CategoryUpdate, CategoryDLC.
	Category string `json:"category"`
	// Publisher comes from the title database when known.
	Publisher string `json:"publisher,omitempty"`
	// ImageURL is either a cached-image URL ("/images/<ID>.<ext>") or
	// the relative path of a sibling image file. Empty when neither
	// exists.
	ImageURL string `json:"image_url,omitempty"`
}

// Config holds the filesystem roots the catalog is built over.
type Config struct {
	// GamesDir is the storage root that is scanned and watched.
	GamesDir string `mapstructure:"games_dir" default:"./games"`
	// DataDir is the secondary data root holding the title database
	// and the image cache.
	DataDir string `mapstructure:"data_dir" default:"./data"`
}
