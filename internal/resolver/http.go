package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/litescript/ls-astro/internal/version"
)

const (
	// DefaultScript is the name query script on the resolution server.
	DefaultScript = "/cgi-bin/Calibrators/new/sourcequery.pl"

	// DefaultTimeout for HTTP requests.
	DefaultTimeout = 10 * time.Second

	// CacheTTL is how long a successful lookup is reused.
	CacheTTL = 10 * time.Minute
)

// HTTPResolver queries a remote name resolution script with a form POST.
type HTTPResolver struct {
	client  *http.Client
	baseURL string
	script  string
	timeout time.Duration

	mu    sync.RWMutex
	cache map[string]cachedLookup
}

type cachedLookup struct {
	resolved  Resolved
	fetchedAt time.Time
}

// Option configures an HTTPResolver.
type Option func(*HTTPResolver)

// WithBaseURL sets the scheme and host of the resolution server.
func WithBaseURL(u string) Option {
	return func(r *HTTPResolver) {
		r.baseURL = strings.TrimRight(u, "/")
	}
}

// WithScript sets the path of the query script.
func WithScript(path string) Option {
	return func(r *HTTPResolver) {
		r.script = path
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *HTTPResolver) {
		r.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(r *HTTPResolver) {
		r.client = client
	}
}

// NewHTTPResolver creates a resolver for the server at the configured base
// URL.
func NewHTTPResolver(opts ...Option) *HTTPResolver {
	r := &HTTPResolver{
		script:  DefaultScript,
		timeout: DefaultTimeout,
		cache:   make(map[string]cachedLookup),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.client == nil {
		r.client = &http.Client{
			Timeout: r.timeout,
		}
	}

	return r
}

// URL returns the full script URL.
func (r *HTTPResolver) URL() string {
	script := r.script
	if !strings.HasPrefix(script, "/") {
		script = "/" + script
	}
	return r.baseURL + script
}

// Resolve implements Resolver. Successful lookups are cached for CacheTTL.
func (r *HTTPResolver) Resolve(ctx context.Context, name string) (Resolved, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Resolved{}, ErrEmptyName
	}

	key := strings.ToLower(name)
	r.mu.RLock()
	cached, ok := r.cache[key]
	r.mu.RUnlock()
	if ok && time.Since(cached.fetchedAt) < CacheTTL {
		return cached.resolved, nil
	}

	body, err := r.post(ctx, name)
	if err != nil {
		return Resolved{}, err
	}
	res, err := ParseResponse(body)
	if err != nil {
		return Resolved{}, fmt.Errorf("resolve %s: %w", name, err)
	}

	r.mu.Lock()
	r.cache[key] = cachedLookup{resolved: res, fetchedAt: time.Now()}
	r.mu.Unlock()

	return res, nil
}

// InvalidateCache forgets all cached lookups.
func (r *HTTPResolver) InvalidateCache() {
	r.mu.Lock()
	r.cache = make(map[string]cachedLookup)
	r.mu.Unlock()
}

func (r *HTTPResolver) post(ctx context.Context, name string) ([]byte, error) {
	form := url.Values{}
	form.Set("name", name)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", version.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call resolver script %q: %w", r.URL(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("resolver script %q: unexpected status code: %d", r.URL(), resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return body, nil
}
