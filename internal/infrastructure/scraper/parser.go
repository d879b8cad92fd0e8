package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fragancia/backend/internal/domain"
)

// priceDigitsRegex keeps digits and separators out of price cells like
// "$ 12.500,00".
var priceDigitsRegex = regexp.MustCompile(`[0-9][0-9.,]*`)

// parseCatalogPage extracts every product row from one catalog listing page.
// The supplier renders products as .product-item cards with the title, an
// optional data-code, and two price cells (30g and 100g decants).
func parseCatalogPage(doc *goquery.Document, gender domain.Gender) []domain.ScrapedRecord {
	var records []domain.ScrapedRecord

	doc.Find(".product-item").Each(func(_ int, sel *goquery.Selection) {
		rec := parseProductSelection(sel, gender)
		if rec != nil {
			records = append(records, *rec)
		}
	})

	return records
}

// parseDetailPage extracts the single product card from a detail page.
func parseDetailPage(doc *goquery.Document, gender domain.Gender) *domain.ScrapedRecord {
	sel := doc.Find(".product-detail, .product-item").First()
	if sel.Length() == 0 {
		return nil
	}
	return parseProductSelection(sel, gender)
}

func parseProductSelection(sel *goquery.Selection, gender domain.Gender) *domain.ScrapedRecord {
	title := strings.TrimSpace(sel.Find(".product-title").First().Text())
	if title == "" {
		return nil
	}

	rec := &domain.ScrapedRecord{
		Title:  title,
		Gender: gender,
	}

	if code, ok := sel.Attr("data-code"); ok {
		rec.ExternalCode = strings.TrimSpace(code)
	}
	if href, ok := sel.Find("a").First().Attr("href"); ok {
		rec.SourceURL = strings.TrimSpace(href)
	}

	price30, onRequest30 := parsePriceCell(sel.Find(".price-30").First().Text())
	price100, onRequest100 := parsePriceCell(sel.Find(".price-100").First().Text())
	rec.Price30 = price30
	rec.Price100 = price100
	rec.PriceOnRequest = onRequest30 || onRequest100

	return rec
}

// parsePriceCell turns a price cell into a numeric value. The supplier
// writes prices in Argentine format ("$ 12.500,50") and marks unpriced
// tiers with "consultar".
func parsePriceCell(text string) (*float64, bool) {
	cleaned := strings.ToLower(strings.TrimSpace(text))
	if cleaned == "" {
		return nil, false
	}
	if strings.Contains(cleaned, "consultar") {
		return nil, true
	}

	digits := priceDigitsRegex.FindString(cleaned)
	if digits == "" {
		return nil, false
	}

	// Thousands dots drop, decimal comma becomes a point.
	digits = strings.ReplaceAll(digits, ".", "")
	digits = strings.ReplaceAll(digits, ",", ".")

	value, err := strconv.ParseFloat(digits, 64)
	if err != nil || value <= 0 {
		return nil, false
	}
	return &value, false
}
