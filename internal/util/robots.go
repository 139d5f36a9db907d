package util

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// ErrDisallowed is returned when robots.txt forbids the page
var ErrDisallowed = errors.New("disallowed by robots.txt")

// RobotsChecker answers whether a page may be fetched. One robots.txt is
// downloaded per host and kept for the life of the checker.
type RobotsChecker struct {
	client *http.Client
	agent  string // product token matched against User-agent groups
	ua     string // full header value sent with the robots request

	mu    sync.Mutex
	hosts map[string]*robotstxt.RobotsData
}

// NewRobotsChecker creates a checker sending userAgent. A nil client gets
// a plain one with the given timeout.
func NewRobotsChecker(userAgent string, client *http.Client, timeout time.Duration) *RobotsChecker {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &RobotsChecker{
		client: client,
		agent:  NormalizeUserAgent(userAgent),
		ua:     userAgent,
		hosts:  make(map[string]*robotstxt.RobotsData),
	}
}

// Check returns the crawl delay for the page, or ErrDisallowed.
// An unreachable or unparsable robots.txt allows the fetch.
func (r *RobotsChecker) Check(ctx context.Context, rawURL string) (time.Duration, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return 0, fmt.Errorf("parse URL: %w", err)
	}
	if parsed.Host == "" {
		return 0, fmt.Errorf("parse URL: missing host in %q", rawURL)
	}

	data := r.load(ctx, parsed)
	if data == nil {
		return 0, nil
	}

	if !data.TestAgent(pathOf(parsed), r.agent) {
		return 0, fmt.Errorf("%w: %s", ErrDisallowed, rawURL)
	}
	if group := data.FindGroup(r.agent); group != nil {
		return group.CrawlDelay, nil
	}
	return 0, nil
}

func (r *RobotsChecker) load(ctx context.Context, page *url.URL) *robotstxt.RobotsData {
	r.mu.Lock()
	defer r.mu.Unlock()

	if data, ok := r.hosts[page.Host]; ok {
		return data
	}

	robotsURL := (&url.URL{Scheme: page.Scheme, Host: page.Host, Path: "/robots.txt"}).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", r.ua)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	// FromResponse maps 4xx to allow-all and 5xx to disallow-all
	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil
	}
	r.hosts[page.Host] = data
	return data
}

func pathOf(u *url.URL) string {
	p := u.EscapedPath()
	if p == "" {
		p = "/"
	}
	if u.RawQuery != "" {
		p += "?" + u.RawQuery
	}
	return p
}

// NormalizeUserAgent reduces a User-Agent header to its product token,
// e.g. "Lifelines/0.1 (+https://...)" becomes "Lifelines"
func NormalizeUserAgent(ua string) string {
	parts := strings.Fields(ua)
	if len(parts) == 0 {
		return ua
	}
	return strings.Split(parts[0], "/")[0]
}
