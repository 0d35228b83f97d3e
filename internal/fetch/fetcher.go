// Package fetch retrieves article text locally so it can be submitted
// to the backend in text mode, the recommended recovery when URL-mode
// analysis times out.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/veridex/trustlens/internal/model"
	"golang.org/x/net/html"
)

// ErrRobotsDisallowed means robots.txt forbids fetching the URL.
var ErrRobotsDisallowed = errors.New("robots.txt disallows fetching this URL")

// Article is locally extracted article content.
type Article struct {
	URL   string
	Title string
	Text  string
	Words int
}

// Fetcher downloads a page and extracts its readable text.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *RobotsChecker // nil when robots checking is disabled
}

// New creates a fetcher from configuration.
func New(cfg model.FetchConfig) *Fetcher {
	var robots *RobotsChecker
	if cfg.RespectRobots {
		robots = NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		robots:    robots,
	}
}

// Article fetches rawURL and extracts its readable text and title.
func (f *Fetcher) Article(ctx context.Context, rawURL string) (*Article, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("parse URL %q: invalid", rawURL)
	}

	if f.robots != nil {
		allowed, err := f.robots.Allowed(ctx, rawURL)
		if err == nil && !allowed {
			return nil, ErrRobotsDisallowed
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	finalURL := resp.Request.URL
	article, err := readability.FromReader(bytes.NewReader(body), finalURL)
	text := ""
	title := ""
	if err == nil {
		text = strings.TrimSpace(article.TextContent)
		title = strings.TrimSpace(article.Title)
	}
	if text == "" {
		// Pages readability cannot segment still have usable text nodes.
		text = plainText(body)
	}
	if title == "" {
		title = htmlTitle(body)
	}
	if text == "" {
		return nil, fmt.Errorf("no readable text at %s", finalURL)
	}

	return &Article{
		URL:   finalURL.String(),
		Title: title,
		Text:  text,
		Words: len(strings.Fields(text)),
	}, nil
}

// htmlTitle returns the document <title>, or "".
func htmlTitle(body []byte) string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
			title = strings.TrimSpace(n.FirstChild.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return title
}

// plainText collects visible text nodes, skipping script and style.
func plainText(body []byte) string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
			return
		}
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				b.WriteString(s)
				b.WriteByte(' ')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.TrimSpace(b.String())
}
