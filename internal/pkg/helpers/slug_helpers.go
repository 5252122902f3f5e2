package helpers

import (
	"strings"

	"github.com/gosimple/slug"
)

// Code normalises a human-entered code into its addressable form:
// lowercased, transliterated, punctuation stripped, words hyphen-joined.
func Code(raw string) string {
	return slug.Make(strings.TrimSpace(raw))
}
