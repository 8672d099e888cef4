// Package fetch retrieves external show listings: it resolves a free-text
// query or URL to a target page, pulls a readable-text rendering of it
// through a reader proxy and parses it into candidate listings.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrUnreachable marks a failed or non-success proxy request.
var ErrUnreachable = errors.New("listing source unreachable")

// ErrNoContent marks an empty or implausibly short page text. Callers must
// treat this as "extraction failed", not as zero listings.
var ErrNoContent = errors.New("no usable page content")

// Config holds the fetcher endpoints and parser limits.
type Config struct {
	// ReaderURL is the text-extraction proxy prefix; the resolved target
	// URL is appended verbatim.
	ReaderURL string
	// SiteURL is the listing site used for non-URL queries.
	SiteURL string
	// Blacklist holds case-folded navigation terms that must never become
	// candidate titles.
	Blacklist []string
	// MaxResults caps the parsed listing count.
	MaxResults int
	// MinContent is the minimum plausible page text length in bytes.
	MinContent int
	// Timeout bounds the proxy request.
	Timeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.ReaderURL == "" {
		c.ReaderURL = "https://r.jina.ai/"
	}
	if c.SiteURL == "" {
		c.SiteURL = "https://www.theater.nl"
	}
	if c.Blacklist == nil {
		c.Blacklist = DefaultBlacklist()
	}
	if c.MaxResults <= 0 {
		c.MaxResults = 25
	}
	if c.MinContent <= 0 {
		c.MinContent = 100
	}
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	return c
}

// Client performs listing searches.
type Client struct {
	cfg   Config
	httpc *http.Client
	log   zerolog.Logger
}

// NewClient builds a Client, filling config defaults.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	cfg = cfg.withDefaults()
	return &Client{
		cfg:   cfg,
		httpc: &http.Client{Timeout: cfg.Timeout},
		log:   log,
	}
}

// Search resolves the query to a target page and returns the parsed listings.
// An unreachable proxy or an implausibly short page is an error; a valid page
// without recognizable listings yields an empty, non-error result.
func (c *Client) Search(ctx context.Context, query string) ([]Listing, error) {
	target := c.resolveTarget(query)
	c.log.Debug().Str("target", target).Msg("fetching listings")

	text, err := c.fetchText(ctx, target)
	if err != nil {
		return nil, err
	}
	return ParseListings(text, c.cfg.Blacklist, c.cfg.MaxResults), nil
}

var slugStrip = regexp.MustCompile(`[^\w\-]`)

// resolveTarget maps the query onto a page URL. Full URLs pass through; a
// query containing "/" is an already-formed city/venue path; two or more
// words become city + hyphenated venue slug; a single word falls back to the
// site's search page.
func (c *Client) resolveTarget(query string) string {
	q := strings.TrimSpace(query)
	if strings.HasPrefix(q, "http") {
		return q
	}

	if strings.Contains(q, "/") {
		return c.cfg.SiteURL + "/" + strings.TrimLeft(q, "/")
	}

	parts := strings.Fields(strings.ToLower(q))
	if len(parts) >= 2 {
		city := parts[0]
		slug := slugStrip.ReplaceAllString(strings.Join(parts[1:], "-"), "")
		return c.cfg.SiteURL + "/" + url.PathEscape(city) + "/" + url.PathEscape(slug)
	}

	return c.cfg.SiteURL + "/voorstellingen?search=" + url.QueryEscape(q)
}

// fetchText retrieves the readable-text rendering of the target through the
// reader proxy. One best-effort GET, no retries.
func (c *Client) fetchText(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.ReaderURL+target, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", ErrUnreachable, res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	text := string(body)
	if len(strings.TrimSpace(text)) < c.cfg.MinContent {
		return "", ErrNoContent
	}
	return text, nil
}
