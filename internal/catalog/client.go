package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Browser defines the read operations the rest of the application needs
// from the remote catalog. Implemented by *Client; fakes implement it in
// tests.
type Browser interface {
	ListCharacters(ctx context.Context, page int, name string) (CharacterPage, error)
	GetCharacter(ctx context.Context, idOrURL string) (Character, error)
	GetLocation(ctx context.Context, idOrURL string) (Location, error)
	GetEpisode(ctx context.Context, idOrURL string) (Episode, error)
	GetCharactersBatch(ctx context.Context, ids []string) ([]Character, error)
	GetEpisodesBatch(ctx context.Context, ids []string) ([]Episode, error)
}

// Ensure Client implements Browser at compile time.
var _ Browser = (*Client)(nil)

// Client talks to the remote catalog HTTP API. It performs no caching;
// that is the query cache's responsibility.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
}

const (
	// DefaultBaseURL is the public catalog endpoint.
	DefaultBaseURL = "https://rickandmortyapi.com/api"

	defaultUserAgent = "portal/0.1"
	requestTimeout   = 10 * time.Second
)

// trailing digits of a canonical record URL path
var idPattern = regexp.MustCompile(`/(\d+)$`)

// Option adjusts Client construction.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRateLimit caps outgoing requests per second. Zero or negative
// disables the limiter.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		} else {
			c.limiter = nil
		}
	}
}

// NewClient builds a Client for the given base URL. An empty baseURL uses
// the public endpoint.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		limiter:   rate.NewLimiter(rate.Limit(4), 1),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListCharacters retrieves one page of the character listing. Pages start
// at 1; non-positive pages are treated as 1. A non-empty name is passed as
// the upstream name filter.
func (c *Client) ListCharacters(ctx context.Context, page int, name string) (CharacterPage, error) {
	if c == nil {
		return CharacterPage{}, fmt.Errorf("client is nil")
	}
	if page < 1 {
		page = 1
	}
	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	if name = strings.TrimSpace(name); name != "" {
		values.Set("name", name)
	}
	rel := &url.URL{Path: "/character", RawQuery: values.Encode()}
	var payload CharacterPage
	if err := c.doURL(ctx, rel, &payload); err != nil {
		return CharacterPage{}, err
	}
	return payload, nil
}

// GetCharacter retrieves a single character by bare id or canonical URL.
func (c *Client) GetCharacter(ctx context.Context, idOrURL string) (Character, error) {
	var payload Character
	if err := c.getRecord(ctx, "character", idOrURL, &payload); err != nil {
		return Character{}, err
	}
	return payload, nil
}

// GetLocation retrieves a single location by bare id or canonical URL.
func (c *Client) GetLocation(ctx context.Context, idOrURL string) (Location, error) {
	var payload Location
	if err := c.getRecord(ctx, "location", idOrURL, &payload); err != nil {
		return Location{}, err
	}
	return payload, nil
}

// GetEpisode retrieves a single episode by bare id or canonical URL.
func (c *Client) GetEpisode(ctx context.Context, idOrURL string) (Episode, error) {
	var payload Episode
	if err := c.getRecord(ctx, "episode", idOrURL, &payload); err != nil {
		return Episode{}, err
	}
	return payload, nil
}

// GetCharactersBatch retrieves multiple characters by id. The result is
// always a slice, even when the upstream collapses a singleton list to a
// bare object.
func (c *Client) GetCharactersBatch(ctx context.Context, ids []string) ([]Character, error) {
	var payload []Character
	if err := c.getBatch(ctx, "character", ids, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GetEpisodesBatch retrieves multiple episodes by id, normalized to a slice.
func (c *Client) GetEpisodesBatch(ctx context.Context, ids []string) ([]Episode, error) {
	var payload []Episode
	if err := c.getBatch(ctx, "episode", ids, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ExtractID pulls the trailing numeric id out of a canonical record URL.
// A bare numeric id is returned unchanged. Returns "" when no id is
// present.
func ExtractID(idOrURL string) string {
	trimmed := strings.TrimSpace(idOrURL)
	if trimmed == "" {
		return ""
	}
	if !strings.Contains(trimmed, "/") {
		if _, err := strconv.Atoi(trimmed); err == nil {
			return trimmed
		}
		return ""
	}
	m := idPattern.FindStringSubmatch(strings.TrimSuffix(trimmed, "/"))
	if m == nil {
		return ""
	}
	return m[1]
}

func (c *Client) getRecord(ctx context.Context, resource, idOrURL string, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	id := ExtractID(idOrURL)
	if id == "" {
		return &NotFoundError{Resource: resource, Target: idOrURL}
	}
	rel := &url.URL{Path: "/" + resource + "/" + id}
	return c.doURL(ctx, rel, dest)
}

// getBatch fetches a comma-joined id list. The upstream returns a bare
// object when the list collapses to one element, so the raw body is
// sniffed and a singleton is normalized before it reaches the caller.
func (c *Client) getBatch(ctx context.Context, resource string, ids []string, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if len(ids) == 0 {
		return nil
	}
	cleaned := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = ExtractID(id); id != "" {
			cleaned = append(cleaned, id)
		}
	}
	if len(cleaned) == 0 {
		return &NotFoundError{Resource: resource, Target: strings.Join(ids, ",")}
	}
	rel := &url.URL{Path: "/" + resource + "/" + strings.Join(cleaned, ",")}

	var raw json.RawMessage
	if err := c.doURL(ctx, rel, &raw); err != nil {
		return err
	}
	return json.Unmarshal(normalizeBatch(raw), dest)
}

// normalizeBatch wraps a bare-object payload in a one-element JSON array.
func normalizeBatch(raw json.RawMessage) json.RawMessage {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return raw
		default:
			wrapped := make(json.RawMessage, 0, len(raw)+2)
			wrapped = append(wrapped, '[')
			wrapped = append(wrapped, raw...)
			wrapped = append(wrapped, ']')
			return wrapped
		}
	}
	return json.RawMessage("[]")
}

func (c *Client) doURL(ctx context.Context, rel *url.URL, dest any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &NetworkError{Op: rel.Path, Err: err}
		}
	}

	reqURL := c.baseURL.ResolveReference(&url.URL{
		Path:     strings.TrimSuffix(c.baseURL.Path, "/") + rel.Path,
		RawQuery: rel.RawQuery,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: rel.Path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &NotFoundError{Resource: strings.Trim(rel.Path, "/"), Target: rel.String()}
	case resp.StatusCode >= 500:
		return &NetworkError{Op: rel.Path, StatusCode: resp.StatusCode}
	case resp.StatusCode >= 400:
		return fmt.Errorf("api %s returned status %d", rel.String(), resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
