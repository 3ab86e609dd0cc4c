package models

// SizeStock represents the available stock for one size of a product
type SizeStock struct {
	Label string `json:"label"`
	Stock int    `json:"stock"`
}

// Product represents a single product in the generated catalog.
// Records are written once by the ingestion pipeline and read-only afterwards.
type Product struct {
	ID           int         `json:"id"`
	Name         string      `json:"name"`
	Category     string      `json:"category"`
	Material     string      `json:"material"`
	Color        string      `json:"color"`
	Description  string      `json:"description"`
	Price        int         `json:"price"` // cents
	PrimaryImage string      `json:"primaryImage"`
	Images       []string    `json:"images"`
	Sizes        []SizeStock `json:"sizes"`
	IsNew        bool        `json:"isNew"`
}

// InStock reports whether at least one size has stock available
func (p *Product) InStock() bool {
	for _, s := range p.Sizes {
		if s.Stock > 0 {
			return true
		}
	}
	return false
}

// HasSize reports whether the product carries the given size label
func (p *Product) HasSize(label string) bool {
	for _, s := range p.Sizes {
		if s.Label == label {
			return true
		}
	}
	return false
}
