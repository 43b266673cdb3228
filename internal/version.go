package internal

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// Version is the current ankiforge release.
const Version = "0.3.0"

// NoteGUID creates a stable identifier for an Anki note based on the deck
// name and the source word, so reimporting a regenerated deck updates notes
// instead of duplicating them.
func NoteGUID(deckName, word string) string {
	hash := md5.Sum([]byte(deckName + "\x00" + word))
	return fmt.Sprintf("af_%s", hex.EncodeToString(hash[:])[:16])
}

// SanitizeFilename creates a safe filename from a string
func SanitizeFilename(s string) string {
	result := ""
	for _, r := range s {
		if isAlphaNumeric(r) || r == '-' || r == '_' {
			result += string(r)
		} else {
			result += "_"
		}
	}
	return result
}

// isAlphaNumeric checks if a rune is alphanumeric
func isAlphaNumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') || r > 127
}
