package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/ppiankov/foundyear/internal/cache"
	"github.com/ppiankov/foundyear/internal/model"
)

// APIClient looks articles up through the MediaWiki Action API
type APIClient struct {
	fetcher  *Fetcher
	baseURL  string
	endpoint string
}

// NewAPIClient creates a client for the wiki rooted at baseURL
func NewAPIClient(fetcher *Fetcher, baseURL string) *APIClient {
	return &APIClient{
		fetcher:  fetcher,
		baseURL:  baseURL,
		endpoint: baseURL + "/w/api.php",
	}
}

// Name returns the backend name
func (c *APIClient) Name() string {
	return "api"
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type searchResponse struct {
	Error *apiError `json:"error"`
	Query struct {
		Search []struct {
			Title  string `json:"title"`
			PageID int    `json:"pageid"`
		} `json:"search"`
	} `json:"query"`
}

type extractResponse struct {
	Error *apiError `json:"error"`
	Query struct {
		Pages []struct {
			PageID    int               `json:"pageid"`
			Title     string            `json:"title"`
			Missing   bool              `json:"missing"`
			Invalid   bool              `json:"invalid"`
			Extract   string            `json:"extract"`
			PageProps map[string]string `json:"pageprops"`
		} `json:"pages"`
	} `json:"query"`
}

// Lookup searches for name and returns the plain-text article of the top hit
func (c *APIClient) Lookup(ctx context.Context, name string) (*model.Article, error) {
	title, err := c.Search(ctx, name)
	if err != nil {
		return nil, &Error{Name: name, Err: err}
	}

	article, err := c.Extract(ctx, title)
	if err != nil {
		return nil, &Error{Name: name, Title: title, Err: err}
	}
	return article, nil
}

// Search returns the title of the best search hit for query
func (c *APIClient) Search(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", ErrNoMatch
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", "1")
	params.Set("srprop", "")
	params.Set("format", "json")
	params.Set("formatversion", "2")

	resp, err := c.fetcher.Get(ctx, cache.KindSearch, c.endpoint+"?"+params.Encode())
	if err != nil {
		return "", fmt.Errorf("search: %w", err)
	}

	var parsed searchResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return "", fmt.Errorf("decode search response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("search: api error %s: %s", parsed.Error.Code, parsed.Error.Info)
	}
	if len(parsed.Query.Search) == 0 {
		return "", ErrNoMatch
	}

	return parsed.Query.Search[0].Title, nil
}

// Extract returns the plain-text body of the article with the given title,
// following redirects
func (c *APIClient) Extract(ctx context.Context, title string) (*model.Article, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "extracts|pageprops")
	params.Set("explaintext", "1")
	params.Set("exsectionformat", "plain")
	params.Set("redirects", "1")
	params.Set("ppprop", "disambiguation")
	params.Set("titles", title)
	params.Set("format", "json")
	params.Set("formatversion", "2")

	resp, err := c.fetcher.Get(ctx, cache.KindExtract, c.endpoint+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	var parsed extractResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return nil, fmt.Errorf("decode extract response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("extract: api error %s: %s", parsed.Error.Code, parsed.Error.Info)
	}
	if len(parsed.Query.Pages) == 0 {
		return nil, ErrNoMatch
	}

	page := parsed.Query.Pages[0]
	if page.Missing || page.Invalid {
		return nil, ErrNoMatch
	}
	if _, ok := page.PageProps["disambiguation"]; ok {
		return nil, ErrAmbiguous
	}

	return &model.Article{
		Title: page.Title,
		Text:  page.Extract,
		URL:   PageURL(c.baseURL, page.Title),
	}, nil
}

// PageURL returns the article URL for title on the wiki rooted at baseURL
func PageURL(baseURL string, title string) string {
	return baseURL + "/wiki/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))
}
