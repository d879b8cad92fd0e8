package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragancia/backend/internal/domain"
)

func TestParsePriceCell(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		wantPrice     *float64
		wantOnRequest bool
	}{
		{
			name:      "thousands and decimals",
			input:     "$ 12.500,50",
			wantPrice: floatValue(12500.50),
		},
		{
			name:      "thousands only",
			input:     "$ 5.000",
			wantPrice: floatValue(5000),
		},
		{
			name:      "plain number",
			input:     "7500",
			wantPrice: floatValue(7500),
		},
		{
			name:          "on request",
			input:         "Consultar",
			wantOnRequest: true,
		},
		{
			name:  "empty cell",
			input: "  ",
		},
		{
			name:  "no digits",
			input: "precio",
		},
		{
			name:  "zero is not a price",
			input: "$ 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, onRequest := parsePriceCell(tt.input)
			assert.Equal(t, tt.wantOnRequest, onRequest)
			if tt.wantPrice == nil {
				assert.Nil(t, price)
			} else {
				require.NotNil(t, price)
				assert.Equal(t, *tt.wantPrice, *price)
			}
		})
	}
}

func TestParseCatalogPage(t *testing.T) {
	html := `
<html><body>
<div class="product-item" data-code="A-1">
	<a href="/p/a"><span class="product-title">Eros (Versace)</span></a>
	<span class="price-30">$ 6.000</span>
	<span class="price-100">consultar</span>
</div>
<div class="product-item">
	<span class="product-title"></span>
</div>
<div class="product-item">
	<span class="product-title">Olympea</span>
</div>
</body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	records := parseCatalogPage(doc, domain.GenderFemenino)
	require.Len(t, records, 2, "card without a title is dropped")

	assert.Equal(t, "Eros (Versace)", records[0].Title)
	assert.Equal(t, "A-1", records[0].ExternalCode)
	assert.Equal(t, domain.GenderFemenino, records[0].Gender)
	require.NotNil(t, records[0].Price30)
	assert.Equal(t, 6000.0, *records[0].Price30)
	assert.True(t, records[0].PriceOnRequest, "consultar on one tier flags the record")

	assert.Equal(t, "Olympea", records[1].Title)
	assert.Nil(t, records[1].Price30)
	assert.False(t, records[1].PriceOnRequest)
}

func TestParseDetailPage(t *testing.T) {
	t.Run("parses the product card", func(t *testing.T) {
		html := `<html><body>
<div class="product-detail" data-code="B-2">
	<span class="product-title">Scandal</span>
	<span class="price-30">$ 9.900</span>
</div>
</body></html>`
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		require.NoError(t, err)

		rec := parseDetailPage(doc, domain.GenderFemenino)
		require.NotNil(t, rec)
		assert.Equal(t, "Scandal", rec.Title)
		assert.Equal(t, "B-2", rec.ExternalCode)
	})

	t.Run("returns nil without a product card", func(t *testing.T) {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body></body></html>"))
		require.NoError(t, err)

		assert.Nil(t, parseDetailPage(doc, domain.GenderMasculino))
	})
}

func floatValue(v float64) *float64 {
	return &v
}
