package utils

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"github.com/gosimple/slug"
)

// Slugify turns a product name into a filesystem- and URL-safe slug
func Slugify(name string) string {
	s := slug.Make(name)
	if s == "" {
		return "produit"
	}
	return s
}

// ShortHash returns the first 8 hex chars of the SHA-1 of s. Used to make
// derivative filenames stable across runs without hashing image bytes.
func ShortHash(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])[:8]
}

// DerivativeBasename builds the output basename for one source image:
// {slug}-{hash}-{index}. Identical inputs always produce the same name,
// which is what makes re-runs of the pipeline idempotent on disk.
func DerivativeBasename(productName, sourceURL string, index int) string {
	return fmt.Sprintf("%s-%s-%d", Slugify(productName), ShortHash(sourceURL), index)
}
