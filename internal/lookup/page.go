package lookup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ppiankov/foundyear/internal/cache"
	"github.com/ppiankov/foundyear/internal/model"
	"github.com/ppiankov/foundyear/internal/util"
	"golang.org/x/net/html"
)

// PageLookup searches through the API and reads the rendered article page
type PageLookup struct {
	api     *APIClient
	fetcher *Fetcher
	robots  *util.RobotsChecker // nil skips robots.txt checks
	baseURL string
}

// NewPageLookup creates an HTML page backend
func NewPageLookup(api *APIClient, fetcher *Fetcher, robots *util.RobotsChecker, baseURL string) *PageLookup {
	return &PageLookup{
		api:     api,
		fetcher: fetcher,
		robots:  robots,
		baseURL: baseURL,
	}
}

// Name returns the backend name
func (p *PageLookup) Name() string {
	return "html"
}

// Lookup searches for name and extracts the paragraphs of the top hit's page
func (p *PageLookup) Lookup(ctx context.Context, name string) (*model.Article, error) {
	title, err := p.api.Search(ctx, name)
	if err != nil {
		return nil, &Error{Name: name, Err: err}
	}

	article, err := p.Fetch(ctx, title)
	if err != nil {
		return nil, &Error{Name: name, Title: title, Err: err}
	}
	return article, nil
}

// Fetch downloads and parses the article page for title
func (p *PageLookup) Fetch(ctx context.Context, title string) (*model.Article, error) {
	pageURL := PageURL(p.baseURL, title)

	if p.robots != nil {
		allowed, delay, err := p.robots.CanFetch(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("robots: %w", err)
		}
		if !allowed {
			return nil, fmt.Errorf("%w: %s disallowed by robots.txt", ErrNoMatch, pageURL)
		}
		if lim := p.fetcher.Limiter(); lim != nil {
			lim.ApplyCrawlDelay(pageURL, delay)
		}
	}

	resp, err := p.fetcher.Get(ctx, cache.KindPage, pageURL)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
			return nil, ErrNoMatch
		}
		return nil, err
	}

	doc, err := html.Parse(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	if isDisambiguation(doc) {
		return nil, ErrAmbiguous
	}

	resolved := title
	if heading := findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && attr(n, "id") == "firstHeading"
	}); heading != nil {
		if t := textOf(heading, nil); t != "" {
			resolved = t
		}
	}

	return &model.Article{
		Title: resolved,
		Text:  articleText(doc),
		URL:   resp.FinalURL,
	}, nil
}

// isDisambiguation detects the disambiguation notice box
func isDisambiguation(doc *html.Node) bool {
	return findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode &&
			(attr(n, "id") == "disambigbox" || hasClass(n, "dmbox-disambig"))
	}) != nil
}

// articleText returns the paragraph text of the main content area, one
// paragraph per blank-line separated block
func articleText(doc *html.Node) string {
	content := findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "div" &&
			(hasClass(n, "mw-parser-output") || attr(n, "id") == "mw-content-text")
	})
	if content == nil {
		content = doc
	}

	var paragraphs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if skipNode(n) {
			return
		}
		if n.Type == html.ElementNode && n.Data == "p" {
			if text := textOf(n, skipNode); text != "" {
				paragraphs = append(paragraphs, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(content)

	return strings.Join(paragraphs, "\n\n")
}

// skipNode drops tables (infoboxes), navigation, citation markers and scripts
func skipNode(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.Data {
	case "script", "style", "noscript", "table", "sup":
		return true
	}
	return hasClass(n, "navbox") || hasClass(n, "reflist") || hasClass(n, "mw-editsection")
}
