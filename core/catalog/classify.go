package catalog

import (
	"path/filepath"
	"strings"
)

// Classify parses a game filename into its display name, optional
// title identifier, optional version tag, and category.
//
// The stem (filename without its extension) is split on '[': the text
// before the first bracket, trimmed, is the display name. Each
// bracketed segment is then interpreted:
//
//   - exactly 16 hex characters: title identifier (last match wins)
//   - "v" followed by decimal digits: version tag; anything other
//     than "v0" flips the category to Update
//   - "UPD": category Update
//   - "DLC": category DLC
//
// Unterminated or unrecognized segments are ignored. The default
// category is Base.
func Classify(filename string) (name, titleID, version, category string) {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	category = CategoryBase

	parts := strings.Split(stem, "[")
	name = strings.TrimSpace(parts[0])

	for _, part := range parts[1:] {
		end := strings.IndexByte(part, ']')
		if end < 0 {
			continue
		}
		content := part[:end]

		switch {
		case len(content) == 16 && isHex(content):
			titleID = strings.ToUpper(content)
		case strings.HasPrefix(content, "v") && isDigits(content[1:]):
			version = content
			if content != "v0" {
				category = CategoryUpdate
			}
		case content == "UPD":
			category = CategoryUpdate
		case content == "DLC":
			category = CategoryDLC
		}
	}

	return name, titleID, version, category
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
