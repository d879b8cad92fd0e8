package scraper

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/fragancia/backend/internal/domain"
)

// maxCatalogPages bounds pagination so a broken "next" link can never loop
// the scraper forever.
const maxCatalogPages = 200

// Client scrapes the supplier's public catalog pages.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a scraper client for the supplier site. The supplier
// tolerates roughly two requests per second; the limiter keeps us under it
// with a small burst for pagination.
func NewClient(baseURL string) *Client {
	limiter := rate.NewLimiter(rate.Limit(2), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: limiter,
	}
}

// SetDebug enables verbose request logging.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns the wait before the next retry attempt.
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500<<(attempt-1)) * time.Millisecond
}

// resolveURL expands a path or relative href against the supplier base URL.
func (c *Client) resolveURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return c.baseURL + "/" + strings.TrimLeft(href, "/")
}

// fetchBody executes a rate-limited GET with up to three attempts and
// returns the response body.
func (c *Client) fetchBody(ctx context.Context, pageURL string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", "FraganciaSync/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if c.debug {
				log.Printf("[SCRAPE] request error (attempt %d) for %s: %v", attempt, pageURL, err)
			}
			lastErr = err
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[SCRAPE] status %d (attempt %d) for %s", resp.StatusCode, attempt, pageURL)
			}
			lastErr = fmt.Errorf("%w: status %d for %s", domain.ErrScrapeFailed, resp.StatusCode, pageURL)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}
		if readErr != nil {
			lastErr = readErr
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		return body, nil
	}
	return nil, lastErr
}

// fetchDocument fetches and parses one page.
func (c *Client) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	body, err := c.fetchBody(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page %s: %w", pageURL, err)
	}
	return doc, nil
}

// FetchCatalog walks one gender catalog from its first page through the
// "next" links and returns every parsed product record.
func (c *Client) FetchCatalog(ctx context.Context, catalogURL string, gender domain.Gender) ([]domain.ScrapedRecord, error) {
	var records []domain.ScrapedRecord

	pageURL := c.resolveURL(catalogURL)
	for page := 1; page <= maxCatalogPages && pageURL != ""; page++ {
		doc, err := c.fetchDocument(ctx, pageURL)
		if err != nil {
			return nil, err
		}

		pageRecords := parseCatalogPage(doc, gender)
		if c.debug {
			log.Printf("[SCRAPE] %s page %d: %d records", gender, page, len(pageRecords))
		}
		records = append(records, pageRecords...)

		pageURL = ""
		if href, ok := doc.Find("a.next, a[rel=next]").First().Attr("href"); ok && href != "" {
			pageURL = c.resolveURL(href)
		}
	}

	log.Printf("[SCRAPE] %s catalog: %d records total", gender, len(records))
	return records, nil
}

// FetchDetailPage fetches a single product detail page, used by the rescue
// pass for products the paginated catalogs are known to miss.
func (c *Client) FetchDetailPage(ctx context.Context, pageURL string, gender domain.Gender) (*domain.ScrapedRecord, error) {
	doc, err := c.fetchDocument(ctx, c.resolveURL(pageURL))
	if err != nil {
		return nil, err
	}
	rec := parseDetailPage(doc, gender)
	if rec == nil {
		return nil, fmt.Errorf("%w: no product on detail page %s", domain.ErrScrapeFailed, pageURL)
	}
	rec.SourceURL = c.resolveURL(pageURL)
	return rec, nil
}

// FetchRawPage returns the unparsed first page of a catalog, for the debug
// sync mode.
func (c *Client) FetchRawPage(ctx context.Context, pageURL string) (string, error) {
	body, err := c.fetchBody(ctx, c.resolveURL(pageURL))
	if err != nil {
		return "", err
	}
	return string(body), nil
}
