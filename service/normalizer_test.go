package service

import (
	"testing"

	"camelia-boutique/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testHeaders = []string{"id", "nom", "prix", "categorie", "couleur", "matiere", "description", "images", "nouveau", "stock_S", "stock_M", "stock_L"}

func baseRow() models.RawRow {
	return models.RawRow{
		"id":          "3",
		"nom":         "Robe fleurie",
		"prix":        "39,90",
		"categorie":   "Robes",
		"couleur":     "Rouge",
		"matiere":     "Viscose",
		"description": "Robe longue à fleurs",
		"images":      "https://a.test/robe-1.jpg https://a.test/robe-2.jpg",
		"nouveau":     "oui",
		"stock_S":     "2",
		"stock_M":     "0",
		"stock_L":     "1",
	}
}

func TestNormalizeFullRow(t *testing.T) {
	n := NewNormalizer()

	product, reason := n.Normalize(testHeaders, baseRow())
	require.NotNil(t, product, "unexpected skip: %s", reason)

	assert.Equal(t, 3, product.ID)
	assert.Equal(t, "Robe fleurie", product.Name)
	assert.Equal(t, 3990, product.Price)
	assert.Equal(t, "Robes", product.Category)
	assert.Equal(t, "Rouge", product.Color)
	assert.True(t, product.IsNew)
	assert.Equal(t, []string{"https://a.test/robe-1.jpg", "https://a.test/robe-2.jpg"}, product.Images)
	assert.Equal(t, "https://a.test/robe-1.jpg", product.PrimaryImage)

	assert.Equal(t, []models.SizeStock{
		{Label: "S", Stock: 2},
		{Label: "M", Stock: 0},
		{Label: "L", Stock: 1},
	}, product.Sizes)
	assert.True(t, product.InStock())
}

func TestNormalizeSkipsMissingID(t *testing.T) {
	n := NewNormalizer()

	for _, id := range []string{"", "abc", "0", "-4"} {
		row := baseRow()
		row["id"] = id
		product, reason := n.Normalize(testHeaders, row)
		assert.Nil(t, product, "id %q should be skipped", id)
		assert.Equal(t, models.SkipMissingID, reason)
	}
}

// Rows where every stock column is zero or absent never produce a
// product, regardless of other fields.
func TestNormalizeSkipsOutOfStock(t *testing.T) {
	n := NewNormalizer()

	row := baseRow()
	row["stock_S"] = "0"
	row["stock_M"] = ""
	row["stock_L"] = "0"

	product, reason := n.Normalize(testHeaders, row)
	assert.Nil(t, product)
	assert.Equal(t, models.SkipNoStock, reason)

	// Even a fully populated, otherwise valid row
	row["nom"] = "Article parfait"
	row["prix"] = "99,00"
	product, reason = n.Normalize(testHeaders, row)
	assert.Nil(t, product)
	assert.Equal(t, models.SkipNoStock, reason)
}

func TestNormalizeHeaderAliases(t *testing.T) {
	n := NewNormalizer()
	headers := []string{"ID", "Name", "Price", "Category", "Stock XL"}
	row := models.RawRow{
		"ID":       "7",
		"Name":     "Jupe plissée",
		"Price":    "25.00",
		"Category": "Jupes",
		"Stock XL": "4",
	}

	product, reason := n.Normalize(headers, row)
	require.NotNil(t, product, "unexpected skip: %s", reason)
	assert.Equal(t, 7, product.ID)
	assert.Equal(t, "Jupe plissée", product.Name)
	assert.Equal(t, 2500, product.Price)
	assert.Equal(t, []models.SizeStock{{Label: "XL", Stock: 4}}, product.Sizes)
}

func TestNormalizeCategoryDefaults(t *testing.T) {
	n := NewNormalizer()
	headers := []string{"id", "categorie", "stock_m"}
	row := models.RawRow{
		"id":        "12",
		"categorie": "Blouses",
		"stock_m":   "1",
	}

	product, reason := n.Normalize(headers, row)
	require.NotNil(t, product, "unexpected skip: %s", reason)

	// Missing fields fall back to the Blouses defaults
	assert.Equal(t, "Blouse", product.Name)
	assert.Equal(t, "Viscose", product.Material)
	assert.Equal(t, "Blanc", product.Color)
	assert.NotEmpty(t, product.Description)
	require.Len(t, product.Images, 1)
	assert.Equal(t, product.Images[0], product.PrimaryImage)
	assert.Equal(t, 0, product.Price)
}

func TestNormalizeUnknownCategoryGlobalDefaults(t *testing.T) {
	n := NewNormalizer()
	headers := []string{"id", "categorie", "stock_s"}
	row := models.RawRow{
		"id":        "9",
		"categorie": "Chapeaux",
		"stock_s":   "3",
	}

	product, reason := n.Normalize(headers, row)
	require.NotNil(t, product, "unexpected skip: %s", reason)
	assert.Equal(t, "Chapeaux", product.Category)
	assert.Equal(t, "Article", product.Name)
}

func TestNormalizeIsNewTokens(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		token string
		want  bool
	}{
		{"true", true}, {"OUI", true}, {"Yes", true}, {"1", true}, {"Vrai", true},
		{"false", false}, {"non", false}, {"0", false}, {"", false}, {"2", false},
	}

	for _, tc := range tests {
		row := baseRow()
		row["nouveau"] = tc.token
		product, _ := n.Normalize(testHeaders, row)
		require.NotNil(t, product)
		assert.Equal(t, tc.want, product.IsNew, "token %q", tc.token)
	}
}

func TestNormalizeFallsBackToCategoryImageWhenCellHasNoURL(t *testing.T) {
	n := NewNormalizer()
	row := baseRow()
	row["images"] = "abc1234 xyz9876" // bare ids only, parser drops them

	product, _ := n.Normalize(testHeaders, row)
	require.NotNil(t, product)
	require.Len(t, product.Images, 1)
	assert.Contains(t, product.Images[0], "robe")
}

func TestSortSizes(t *testing.T) {
	sizes := []models.SizeStock{
		{Label: "XL"}, {Label: "S"}, {Label: "UNIQUE"}, {Label: "M"}, {Label: "XS"},
	}
	SortSizes(sizes)

	labels := make([]string, len(sizes))
	for i, s := range sizes {
		labels[i] = s.Label
	}
	assert.Equal(t, []string{"XS", "S", "M", "XL", "UNIQUE"}, labels)
}
