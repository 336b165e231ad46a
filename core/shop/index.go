package shop

import (
	"fmt"

	"switchshop/core/catalog"
)

// Config holds configuration for the shop endpoints.
type Config struct {
	// Encrypt wraps the shop index in the encrypted container when
	// true. When encryption fails the plain JSON index is served
	// instead; encryption is a presentation mode, never a hard
	// dependency.
	Encrypt bool `mapstructure:"encrypt" default:"false"`
}

// FileEntry is one downloadable file in a shop index.
type FileEntry struct {
	URL  string `json:"url"`
	Size uint64 `json:"size"`
}

// Index is the listing document consumed by shop clients.
type Index struct {
	Files   []FileEntry `json:"files"`
	Success string      `json:"success"`
}

// BuildIndex renders a catalog snapshot into a shop index. Download
// URLs are rooted at host (scheme and authority, no trailing slash)
// under the /files/ route, with every path segment percent-encoded.
func BuildIndex(entries []catalog.Entry, host string) Index {
	files := make([]FileEntry, 0, len(entries))
	for _, entry := range entries {
		files = append(files, FileEntry{
			URL:  host + "/files/" + EncodePath(entry.RelativePath),
			Size: entry.Size,
		})
	}
	return Index{
		Files:   files,
		Success: "The index was generated successfully.",
	}
}

// EncodePath percent-encodes every non-alphanumeric byte of each
// slash-separated segment. Clients expect this aggressive encoding
// (spaces, brackets, and punctuation all escaped), which is stricter
// than standard URL path escaping.
func EncodePath(path string) string {
	out := make([]byte, 0, len(path)*3)
	for i := 0; i < len(path); i++ {
		c := path[i]
		switch {
		case c == '/':
			out = append(out, c)
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
			out = append(out, c)
		default:
			out = append(out, fmt.Sprintf("%%%02X", c)...)
		}
	}
	return string(out)
}
