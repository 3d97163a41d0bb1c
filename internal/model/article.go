package model

// Article is a resolved encyclopedia article for a company name
type Article struct {
	Title string `json:"title"`         // Resolved article title (after redirects)
	Text  string `json:"-"`             // Plain-text body
	URL   string `json:"url,omitempty"` // Canonical page URL, when known
}
