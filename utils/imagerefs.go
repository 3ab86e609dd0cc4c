package utils

import (
	"strings"
	"unicode"
)

// ParseImageRefs extracts image URLs from a free-text spreadsheet cell.
// Tokens are separated by runs of whitespace, commas or semicolons, and
// only tokens starting with "http" are kept. Empty or blank input yields
// an empty result, never an error.
//
// Bare short host IDs (without a scheme) are intentionally NOT recognized
// here: building a full URL from a host ID is the image loader's job, and
// mixing the two contracts made the parser ambiguous. Callers that hold a
// bare ID should expand it before parsing.
func ParseImageRefs(cell string) []string {
	var refs []string
	tokens := strings.FieldsFunc(cell, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ';'
	})
	for _, token := range tokens {
		if strings.HasPrefix(token, "http") {
			refs = append(refs, token)
		}
	}
	return refs
}
