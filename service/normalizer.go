package service

import (
	"sort"
	"strconv"
	"strings"

	"camelia-boutique/models"
	"camelia-boutique/utils"
)

// fieldAliases maps each canonical product field to the header spellings
// seen in the boutique's spreadsheets over time. Resolution tries the
// aliases in order, case-insensitively, and takes the first header
// present in the row.
var fieldAliases = map[string][]string{
	"id":          {"id", "identifiant"},
	"name":        {"nom", "name", "produit", "titre"},
	"price":       {"prix", "price", "tarif"},
	"category":    {"categorie", "catégorie", "category"},
	"material":    {"matiere", "matière", "material", "tissu"},
	"color":       {"couleur", "color", "coloris"},
	"description": {"description", "desc", "détails", "details"},
	"images":      {"images", "image", "photos", "photo"},
	"isNew":       {"nouveau", "nouveauté", "new"},
}

// truthyTokens are the cell values accepted as "yes" for boolean columns
var truthyTokens = map[string]bool{
	"true": true, "1": true, "oui": true, "yes": true, "vrai": true,
}

// stockColumnPrefix identifies the wide-format stock columns ("stock_S",
// "Stock XL", ...); the remainder of the header is the size label
const stockColumnPrefix = "stock"

// categoryDefaults fills in for fields the source row leaves blank
type categoryDefaults struct {
	Name        string
	Material    string
	Color       string
	Description string
	Image       string
}

var defaultsByCategory = map[string]categoryDefaults{
	"Robes": {
		Name:        "Robe",
		Material:    "Coton",
		Color:       "Rouge",
		Description: "Robe élégante pour toutes les occasions",
		Image:       "/images/defaults/robe.jpg",
	},
	"Blouses": {
		Name:        "Blouse",
		Material:    "Viscose",
		Color:       "Blanc",
		Description: "Blouse légère et confortable",
		Image:       "/images/defaults/blouse.jpg",
	},
	"Pantalons": {
		Name:        "Pantalon",
		Material:    "Coton",
		Color:       "Noir",
		Description: "Pantalon à la coupe moderne",
		Image:       "/images/defaults/pantalon.jpg",
	},
	"Jupes": {
		Name:        "Jupe",
		Material:    "Polyester",
		Color:       "Bleu",
		Description: "Jupe fluide de mi-saison",
		Image:       "/images/defaults/jupe.jpg",
	},
}

var globalDefaults = categoryDefaults{
	Name:        "Article",
	Material:    "Coton",
	Color:       "Beige",
	Description: "Article de la boutique",
	Image:       "/images/defaults/article.jpg",
}

// Normalizer turns raw spreadsheet rows into canonical product records
type Normalizer struct{}

// NewNormalizer creates a new Normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// resolve returns the cell for a canonical field, trying each known
// header spelling case-insensitively against the row's actual headers
func resolve(field string, headers []string, row models.RawRow) string {
	for _, alias := range fieldAliases[field] {
		for _, h := range headers {
			if strings.EqualFold(h, alias) {
				if v := strings.TrimSpace(row[h]); v != "" {
					return v
				}
			}
		}
	}
	return ""
}

// sizeLabelFromHeader extracts the size label from a stock column header,
// "" when the header is not a stock column
func sizeLabelFromHeader(header string) (string, bool) {
	if !strings.HasPrefix(strings.ToLower(header), stockColumnPrefix) {
		return "", false
	}
	label := header[len(stockColumnPrefix):]
	label = strings.Trim(label, " _-")
	if label == "" {
		return "", false
	}
	return strings.ToUpper(label), true
}

// Normalize maps one raw row onto a Product. A nil product means the row
// was excluded; the SkipReason says why. Missing fields fall back to the
// category defaults, then to the global defaults.
func (n *Normalizer) Normalize(headers []string, row models.RawRow) (*models.Product, models.SkipReason) {
	id, err := strconv.Atoi(resolve("id", headers, row))
	if err != nil || id <= 0 {
		return nil, models.SkipMissingID
	}

	// Stock columns in header order; sorting by size rank happens later
	var sizes []models.SizeStock
	for _, h := range headers {
		label, ok := sizeLabelFromHeader(h)
		if !ok {
			continue
		}
		stock, _ := strconv.Atoi(strings.TrimSpace(row[h]))
		if stock < 0 {
			stock = 0
		}
		sizes = append(sizes, models.SizeStock{Label: label, Stock: stock})
	}

	product := &models.Product{
		ID:    id,
		Sizes: sizes,
	}
	if !product.InStock() {
		return nil, models.SkipNoStock
	}

	product.Category = resolve("category", headers, row)
	defaults, ok := defaultsByCategory[product.Category]
	if !ok {
		defaults = globalDefaults
	}

	product.Name = fallback(resolve("name", headers, row), defaults.Name)
	product.Material = fallback(resolve("material", headers, row), defaults.Material)
	product.Color = fallback(resolve("color", headers, row), defaults.Color)
	product.Description = fallback(resolve("description", headers, row), defaults.Description)
	product.IsNew = truthyTokens[strings.ToLower(resolve("isNew", headers, row))]

	if cents := utils.ParsePriceCents(resolve("price", headers, row)); cents >= 0 {
		product.Price = cents
	}

	product.Images = utils.ParseImageRefs(resolve("images", headers, row))
	if len(product.Images) == 0 {
		product.Images = []string{defaults.Image}
	}
	product.PrimaryImage = product.Images[0]

	return product, ""
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

// sizeRank orders the standard size ladder; unknown labels sort last in
// their original order
var sizeRank = map[string]int{
	"XS": 0, "S": 1, "M": 2, "L": 3, "XL": 4, "XXL": 5,
}

// SortSizes orders sizes XS through XXL, unrecognized labels after
func SortSizes(sizes []models.SizeStock) {
	sort.SliceStable(sizes, func(i, j int) bool {
		ri, iok := sizeRank[sizes[i].Label]
		rj, jok := sizeRank[sizes[j].Label]
		if !iok {
			ri = len(sizeRank) + 1
		}
		if !jok {
			rj = len(sizeRank) + 1
		}
		return ri < rj
	})
}
