// Package wiki is a small client for the MediaWiki Action API: free-text
// search followed by resolution of a title to its canonical page and URL.
package wiki

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
)

// DefaultEndpoint is the English Wikipedia Action API.
const DefaultEndpoint = "https://en.wikipedia.org/w/api.php"

const (
	defaultSearchLimit = 10
	maxBodyBytes       = 4 << 20
)

var (
	// ErrPageMissing means the title does not name an existing page.
	ErrPageMissing = errors.New("wiki: page does not exist")
	// ErrAmbiguous means the title resolved to a disambiguation page.
	ErrAmbiguous = errors.New("wiki: title is ambiguous")
)

// APIError is an error body returned by the Action API itself.
type APIError struct {
	Code string
	Info string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wiki: api error %s: %s", e.Code, e.Info)
}

// Page is a resolved article.
type Page struct {
	ID    int64
	Title string
	URL   string
}

// Client queries one MediaWiki endpoint. Zero fields fall back to
// http.DefaultClient, DefaultEndpoint and the default search limit.
type Client struct {
	HTTP        *http.Client
	Endpoint    string
	UserAgent   string
	SearchLimit int
}

// New returns a Client with its own http.Client using timeout.
func New(endpoint, userAgent string, timeout time.Duration, searchLimit int) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if searchLimit <= 0 {
		searchLimit = defaultSearchLimit
	}
	return &Client{
		HTTP:        &http.Client{Timeout: timeout},
		Endpoint:    endpoint,
		UserAgent:   userAgent,
		SearchLimit: searchLimit,
	}
}

// Search returns candidate page titles for query, best match first. No
// matches yields an empty slice and a nil error.
func (c *Client) Search(ctx context.Context, query string) ([]string, error) {
	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {query},
		"srlimit":  {strconv.Itoa(c.searchLimit())},
		"srprop":   {""},
	}
	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	hits := gjson.GetBytes(body, "query.search.#.title").Array()
	titles := make([]string, 0, len(hits))
	for _, h := range hits {
		if s := h.String(); s != "" {
			titles = append(titles, s)
		}
	}
	return titles, nil
}

// Resolve follows redirects from title to the canonical page and its URL.
// Missing or invalid titles return ErrPageMissing; disambiguation pages
// return ErrAmbiguous.
func (c *Client) Resolve(ctx context.Context, title string) (Page, error) {
	params := url.Values{
		"action":    {"query"},
		"prop":      {"info|pageprops"},
		"inprop":    {"url"},
		"ppprop":    {"disambiguation"},
		"redirects": {"1"},
		"titles":    {title},
	}
	body, err := c.get(ctx, params)
	if err != nil {
		return Page{}, err
	}

	pages := gjson.GetBytes(body, "query.pages").Array()
	if len(pages) == 0 {
		return Page{}, fmt.Errorf("%w: %q", ErrPageMissing, title)
	}
	p := pages[0]
	if p.Get("missing").Bool() || p.Get("invalid").Bool() {
		return Page{}, fmt.Errorf("%w: %q", ErrPageMissing, title)
	}
	if p.Get("pageprops.disambiguation").Exists() {
		return Page{}, fmt.Errorf("%w: %q", ErrAmbiguous, p.Get("title").String())
	}

	page := Page{
		ID:    p.Get("pageid").Int(),
		Title: p.Get("title").String(),
		URL:   p.Get("fullurl").String(),
	}
	if page.Title == "" || page.URL == "" {
		return Page{}, fmt.Errorf("wiki: incomplete page info for %q", title)
	}
	return page, nil
}

func (c *Client) searchLimit() int {
	if c.SearchLimit <= 0 {
		return defaultSearchLimit
	}
	return c.SearchLimit
}

func (c *Client) get(ctx context.Context, params url.Values) ([]byte, error) {
	params.Set("format", "json")
	params.Set("formatversion", "2")

	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wiki request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wiki API returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading wiki response: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, errors.New("wiki: response is not valid JSON")
	}
	if e := gjson.GetBytes(body, "error"); e.Exists() {
		return nil, &APIError{Code: e.Get("code").String(), Info: e.Get("info").String()}
	}
	return body, nil
}
