package models

// VariantKey identifies one generated image derivative by width and format
type VariantKey struct {
	Width  int
	Format string
}

// DerivativeSet describes the generated variants for one source image.
// Fallback is never empty: when generation fails entirely it carries the
// original remote URL so the storefront always has something to render.
type DerivativeSet struct {
	Base     string                `json:"base"`
	Variants map[VariantKey]string `json:"-"`
	Fallback string                `json:"fallback"`
}

// Degraded builds the derivative set used when fetching or encoding the
// source image failed: everything points back at the original URL.
func Degraded(originalURL string) DerivativeSet {
	return DerivativeSet{
		Base:     originalURL,
		Variants: map[VariantKey]string{},
		Fallback: originalURL,
	}
}

// IsDegraded reports whether no variant was generated for this source
func (d DerivativeSet) IsDegraded() bool {
	return len(d.Variants) == 0
}
