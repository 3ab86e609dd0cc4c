package models

// FilterCriteria is the ephemeral set of constraints applied against the
// catalog. Empty sets mean "no constraint" for their dimension.
type FilterCriteria struct {
	SearchText string
	PriceMin   int // cents, inclusive
	PriceMax   int // cents, inclusive
	Categories map[string]bool
	Colors     map[string]bool
	Sizes      map[string]bool
}

// NewFilterCriteria returns criteria that match the whole catalog
func NewFilterCriteria() FilterCriteria {
	return FilterCriteria{
		PriceMin:   0,
		PriceMax:   int(^uint(0) >> 1),
		Categories: map[string]bool{},
		Colors:     map[string]bool{},
		Sizes:      map[string]bool{},
	}
}
