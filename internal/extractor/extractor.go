// Package extractor retrieves listing pages and turns them into best-effort property drafts.
package extractor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/logging"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/model"
)

// Defaults used for any attribute the listing page does not yield.
const (
	FallbackTitle        = "Property from URL"
	DefaultTitle         = "Property"
	DefaultLocation      = "Italy"
	DefaultPrice         = 250000.0
	DefaultSizeSqm       = 85.0
	DefaultRooms         = 3
	DefaultBathrooms     = 2
	DefaultTimeout       = 10 * time.Second
	DefaultUserAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	maxBodyBytes   int64 = 5 << 20
)

var (
	currencyPattern = regexp.MustCompile(`(?i)€|\bEUR\b`)
	numberPattern   = regexp.MustCompile(`\d[\d.,]*`)
	sizePattern     = regexp.MustCompile(`(?i)(\d[\d.,]*)\s*(?:m²|m2|mq|sqm)`)
	roomsPattern    = regexp.MustCompile(`(?i)(\d+)\s*(?:locali|rooms|vani)\b`)
)

// Extractor produces a property draft from a listing URL.
// Implementations never fail: anything that goes wrong yields FallbackDraft.
type Extractor interface {
	Extract(ctx context.Context, url string) model.PropertyDraft
}

// HTTPExtractor fetches listing pages over HTTP and parses them with golang.org/x/net/html.
type HTTPExtractor struct {
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
	logger     *logging.Logger
}

// Option configures an HTTPExtractor
type Option func(*HTTPExtractor)

// WithHTTPClient sets the HTTP client used for page retrieval.
func WithHTTPClient(client *http.Client) Option {
	return func(e *HTTPExtractor) {
		if client != nil {
			e.httpClient = client
		}
	}
}

// WithUserAgent sets the User-Agent header sent to listing sites.
func WithUserAgent(userAgent string) Option {
	return func(e *HTTPExtractor) {
		if userAgent != "" {
			e.userAgent = userAgent
		}
	}
}

// WithTimeout bounds each page retrieval.
func WithTimeout(timeout time.Duration) Option {
	return func(e *HTTPExtractor) {
		if timeout > 0 {
			e.timeout = timeout
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(e *HTTPExtractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewHTTPExtractor creates a new listing extractor with default HTTP settings.
//
// Parameters:
//   - opts: Optional overrides for the HTTP client, User-Agent, timeout and logger
//
// Returns:
//   - *HTTPExtractor: A new extractor ready for use
func NewHTTPExtractor(opts ...Option) *HTTPExtractor {
	e := &HTTPExtractor{
		httpClient: &http.Client{},
		userAgent:  DefaultUserAgent,
		timeout:    DefaultTimeout,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.WithComponent("extractor")
	return e
}

// FallbackDraft is the draft returned when a listing cannot be retrieved or parsed.
func FallbackDraft(url string) model.PropertyDraft {
	return model.PropertyDraft{
		Title:        FallbackTitle,
		Location:     DefaultLocation,
		Price:        DefaultPrice,
		PropertyType: model.PropertyTypeApartment,
		SizeSqm:      DefaultSizeSqm,
		Rooms:        DefaultRooms,
		Bathrooms:    DefaultBathrooms,
		SourceURL:    url,
	}
}

// Extract fetches url and parses it into a property draft.
//
// Retrieval errors, non-2xx responses and unparseable documents all yield
// FallbackDraft(url). A page that parses but lacks some attribute keeps the
// default for that attribute only.
//
// Parameters:
//   - ctx: Request context; cancellation aborts the retrieval
//   - url: Listing page address
//
// Returns:
//   - model.PropertyDraft: Always fully populated
func (e *HTTPExtractor) Extract(ctx context.Context, url string) model.PropertyDraft {
	doc, err := e.fetch(ctx, url)
	if err != nil {
		e.logger.WithContext(ctx).Warn("listing extraction failed, using fallback draft", "url", url, "error", err)
		return FallbackDraft(url)
	}

	return ParseListing(doc, url)
}

func (e *HTTPExtractor) fetch(ctx context.Context, url string) (*html.Node, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// ParseListing reads the attributes it can find from a parsed listing page.
//
// Title comes from the first <h1>, else <title>. Price is the first text node
// mentioning € or EUR, read in European number format. The image is taken from
// og:image. Size and room counts are picked up from text such as "85 m²" or "3 locali".
func ParseListing(doc *html.Node, url string) model.PropertyDraft {
	draft := FallbackDraft(url)
	draft.Title = DefaultTitle

	var h1, title, priceText, sizeText, roomsText string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			switch n.Data {
			case "h1":
				if h1 == "" {
					h1 = textContent(n)
				}
			case "title":
				if title == "" {
					title = textContent(n)
				}
			case "meta":
				if attr(n, "property") == "og:image" && draft.ImageURL == "" {
					draft.ImageURL = strings.TrimSpace(attr(n, "content"))
				}
			case "script", "style":
				return
			}
		case html.TextNode:
			text := strings.TrimSpace(n.Data)
			if priceText == "" && currencyPattern.MatchString(text) && numberPattern.MatchString(text) {
				priceText = text
			}
			if sizeText == "" && sizePattern.MatchString(text) {
				sizeText = text
			}
			if roomsText == "" && roomsPattern.MatchString(text) {
				roomsText = text
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	switch {
	case h1 != "":
		draft.Title = h1
	case title != "":
		draft.Title = title
	}

	if price, ok := ParseEuropeanNumber(numberPattern.FindString(priceText)); ok && price > 0 {
		draft.Price = price
	}
	if m := sizePattern.FindStringSubmatch(sizeText); m != nil {
		if size, ok := ParseEuropeanNumber(m[1]); ok && size > 0 {
			draft.SizeSqm = size
		}
	}
	if m := roomsPattern.FindStringSubmatch(roomsText); m != nil {
		if rooms, err := strconv.Atoi(m[1]); err == nil && rooms > 0 {
			draft.Rooms = rooms
		}
	}

	return draft
}

// ParseEuropeanNumber parses numbers written with "." as thousands separator and
// "," as decimal separator, e.g. "1.250.000,50".
func ParseEuropeanNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".,")
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
