package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/xhad/textotest/internal/models"
)

type FetcherConfig struct {
	// MaxDepth is how many links away from the start page to follow.
	// Zero fetches only the start page.
	MaxDepth          int
	RateLimit         float64 // requests per second
	IgnorePatterns    []string
	AllowedExtensions []string
	Timeout           time.Duration
	OnProgress        func(url string)
	Client            *http.Client
}

type Fetcher struct {
	config  FetcherConfig
	client  *http.Client
	limiter *rate.Limiter
}

func NewWithConfig(config FetcherConfig) *Fetcher {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RateLimit == 0 {
		config.RateLimit = 2
	}
	if len(config.AllowedExtensions) == 0 {
		config.AllowedExtensions = []string{".html", ".htm", "/", ""}
	}

	client := config.Client
	if client == nil {
		client = &http.Client{Timeout: config.Timeout}
	}

	return &Fetcher{
		config:  config,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(config.RateLimit), 1),
	}
}

// Fetch downloads one page.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (models.RawDocument, error) {
	raw, _, err := f.fetch(ctx, pageURL, 0)
	return raw, err
}

// Crawl fetches the start page and same-host links up to MaxDepth, in
// discovery order. Pages that fail after the first are skipped.
func (f *Fetcher) Crawl(ctx context.Context, startURL string) ([]models.RawDocument, error) {
	start, err := url.Parse(startURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL %s: %v", startURL, err)
	}

	type page struct {
		url   string
		depth int
	}
	queue := []page{{url: startURL}}
	visited := map[string]bool{startURL: true}

	var docs []models.RawDocument
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		raw, links, err := f.fetch(ctx, p.url, p.depth)
		if err != nil {
			if p.depth == 0 || ctx.Err() != nil {
				return docs, err
			}
			continue
		}
		docs = append(docs, raw)

		if p.depth >= f.config.MaxDepth {
			continue
		}
		for _, link := range links {
			if visited[link] || !f.shouldProcessURL(start.Host, link) {
				continue
			}
			visited[link] = true
			queue = append(queue, page{url: link, depth: p.depth + 1})
		}
	}
	return docs, nil
}

func (f *Fetcher) fetch(ctx context.Context, pageURL string, depth int) (models.RawDocument, []string, error) {
	if f.config.OnProgress != nil {
		f.config.OnProgress(pageURL)
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return models.RawDocument{}, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return models.RawDocument{}, nil, fmt.Errorf("failed to create request: %v", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return models.RawDocument{}, nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.RawDocument{}, nil, fmt.Errorf("received status code %d for URL: %s", resp.StatusCode, pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return models.RawDocument{}, nil, fmt.Errorf("failed to parse %s: %v", pageURL, err)
	}

	links := resolveLinks(doc, pageURL)
	raw := fromDocument(doc)
	raw.URL = pageURL
	raw.Metadata = map[string]interface{}{
		"depth":        depth,
		"contentType":  resp.Header.Get("Content-Type"),
		"lastModified": resp.Header.Get("Last-Modified"),
	}
	return raw, links, nil
}

func resolveLinks(doc *goquery.Document, pageURL string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref)
		abs.Fragment = ""
		links = append(links, abs.String())
	})
	return links
}

func (f *Fetcher) shouldProcessURL(host, urlStr string) bool {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return false
	}

	if parsedURL.Host != host {
		return false
	}

	path := strings.ToLower(parsedURL.Path)
	validExt := false
	for _, ext := range f.config.AllowedExtensions {
		if ext == "" {
			// extensionless paths such as /docs/intro
			validExt = validExt || !strings.Contains(path[strings.LastIndex(path, "/")+1:], ".")
			continue
		}
		if strings.HasSuffix(path, ext) {
			validExt = true
		}
	}
	if !validExt {
		return false
	}

	for _, pattern := range f.config.IgnorePatterns {
		if strings.Contains(urlStr, pattern) {
			return false
		}
	}
	return true
}
