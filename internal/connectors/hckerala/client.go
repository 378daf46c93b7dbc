package hckerala

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/logger"
)

// Default configuration values.
const (
	DefaultBaseURL           = "https://hckinfo.kerala.gov.in/digicourt/Casedetailssearch"
	DefaultTimeout           = 60 * time.Second
	DefaultRequestsPerSecond = 1.0
	DefaultUserAgent         = "casedocs/0.1 (+https://github.com/custodia-labs/casedocs)"
)

// Portal endpoints, relative to the base URL.
const (
	pathCaseTypes        = "/Statuscasetype"
	pathSearchByType     = "/Stausbycasetype"
	pathCaseStatus       = "/Viewcasestatus"
	pathFileView         = "/fileview"
	pathFileViewCitation = "/fileviewcitation"
)

// Config holds configuration for the portal client.
type Config struct {
	// BaseURL is the portal root (default: DefaultBaseURL).
	BaseURL string

	// Timeout bounds each request (default: 60s).
	Timeout time.Duration

	// RequestsPerSecond throttles every request (default: 1).
	RequestsPerSecond float64

	// UserAgent is sent with every request.
	UserAgent string

	// Transport overrides the HTTP transport. Used by tests.
	Transport http.RoundTripper
}

// Client is a rate-limited HTTP session with the portal.
type Client struct {
	http      *http.Client
	baseURL   string
	limiter   *rate.Limiter
	userAgent string
}

// NewClient creates a portal client with its own cookie jar.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	return &Client{
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Jar:       jar,
			Transport: cfg.Transport,
		},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		userAgent: cfg.UserAgent,
	}, nil
}

// BaseURL returns the portal root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// endpoint joins path onto the base URL.
func (c *Client) endpoint(path string) string {
	return c.baseURL + path
}

// getDocument fetches rawURL and parses the response as HTML.
func (c *Client) getDocument(ctx context.Context, rawURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", domain.ErrNetwork, err)
	}
	return c.doDocument(req)
}

// postForm submits form to path and parses the response as HTML.
func (c *Client) postForm(ctx context.Context, path string, form url.Values) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", domain.ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.doDocument(req)
}

func (c *Client) doDocument(req *http.Request) (*goquery.Document, error) {
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: reading body: %v", domain.ErrNetwork, req.Method, req.URL, err)
	}
	return doc, nil
}

// getBytes fetches rawURL and returns the full body.
func (c *Client) getBytes(ctx context.Context, rawURL string) ([]byte, *url.URL, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: create request: %v", domain.ErrNetwork, err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: GET %s: reading body: %v", domain.ErrNetwork, rawURL, err)
	}
	return body, resp.Request.URL, nil
}

// do waits for the rate limiter, sends req and rejects non-200 responses.
// On success the caller owns resp.Body.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", domain.ErrNetwork, err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	logger.Debug("%s %s", req.Method, req.URL)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrNetwork, req.Method, req.URL, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s %s: status %d", domain.ErrNetwork, req.Method, req.URL, resp.StatusCode)
	}
	return resp, nil
}

// cellText returns the text of s with whitespace runs collapsed.
func cellText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}
