package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Clark-Hu/movie-space/internal/domain"
)

// DefaultBaseURL is the upstream metadata API root.
const DefaultBaseURL = "https://api.themoviedb.org/3"

// ErrMissingCredential is returned before any request is made when no API key
// is configured.
var ErrMissingCredential = errors.New("catalog: missing credential")

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog: upstream returned %d for %s", e.Code, e.Endpoint)
}

// HTTPClient queries the movie metadata API over HTTP. The listing methods
// never fail: transport, status and decode errors are logged and collapse to
// an empty result so a single broken panel does not take the page down.
type HTTPClient struct {
	baseURL     *url.URL
	language    string
	credentials *Credentials
	client      *http.Client
	logger      *log.Logger
}

// Options configures NewHTTPClient.
type Options struct {
	BaseURL  string
	Language string
	Timeout  time.Duration
	Logger   *log.Logger
}

// NewHTTPClient constructs a client that reads its API key from credentials.
func NewHTTPClient(credentials *Credentials, opts Options) (*HTTPClient, error) {
	if credentials == nil {
		return nil, errors.New("catalog: credentials are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	parsed, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}
	language := opts.Language
	if language == "" {
		language = "en-US"
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL:     parsed,
		language:    language,
		credentials: credentials,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: 1 * time.Second,
				MaxIdleConnsPerHost:   8,
			},
		},
		logger: logger,
	}, nil
}

// Get issues one GET against endpoint and decodes the JSON body into dst.
func (c *HTTPClient) Get(ctx context.Context, endpoint string, params url.Values, dst interface{}) error {
	apiKey := c.credentials.Value()
	if apiKey == "" {
		return ErrMissingCredential
	}

	u := c.baseURL.JoinPath(endpoint)
	q := url.Values{}
	for k, vals := range params {
		for _, v := range vals {
			q.Add(k, v)
		}
	}
	q.Set("api_key", apiKey)
	q.Set("language", c.language)
	q.Set("include_adult", "false")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("catalog: request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return &StatusError{Endpoint: endpoint, Code: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

// Trending returns the trending movies for the window.
func (c *HTTPClient) Trending(ctx context.Context, window TimeWindow) []domain.MovieSummary {
	return c.list(ctx, "trending "+string(window), trendingEndpoint(window), url.Values{})
}

// Category returns one page of a fixed collection.
func (c *HTTPClient) Category(ctx context.Context, category Category, page int) []domain.MovieSummary {
	q := CategoryQuery(category, page)
	return c.list(ctx, "category "+string(category), q.Endpoint, q.Params)
}

// Search returns title matches. A blank query returns nothing without a
// request.
func (c *HTTPClient) Search(ctx context.Context, query string) []domain.MovieSummary {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.MovieSummary{}
	}
	params := url.Values{}
	params.Set("query", query)
	return c.list(ctx, "search", endpointSearch, params)
}

// Discover returns movies matching the filters.
func (c *HTTPClient) Discover(ctx context.Context, criteria domain.FilterCriteria) []domain.MovieSummary {
	return c.list(ctx, "discover", endpointDiscover, DiscoverParams(criteria))
}

// Detail fetches one movie with credits, videos and similar titles attached.
// It returns nil on any failure.
func (c *HTTPClient) Detail(ctx context.Context, id int) *domain.MovieDetail {
	params := url.Values{}
	params.Set("append_to_response", "credits,videos,similar")

	var payload apiDetail
	if err := c.Get(ctx, detailEndpoint(id), params, &payload); err != nil {
		c.logger.Printf("catalog: detail %d failed: %v", id, err)
		return nil
	}
	detail := convertDetail(payload)
	return &detail
}

// Genres returns the upstream genre table.
func (c *HTTPClient) Genres(ctx context.Context) []domain.Genre {
	var payload struct {
		Genres []domain.Genre `json:"genres"`
	}
	if err := c.Get(ctx, endpointGenres, url.Values{}, &payload); err != nil {
		c.logger.Printf("catalog: genres failed: %v", err)
		return []domain.Genre{}
	}
	if payload.Genres == nil {
		return []domain.Genre{}
	}
	return payload.Genres
}

func (c *HTTPClient) list(ctx context.Context, label, endpoint string, params url.Values) []domain.MovieSummary {
	var payload apiListResponse
	if err := c.Get(ctx, endpoint, params, &payload); err != nil {
		c.logger.Printf("catalog: %s failed: %v", label, err)
		return []domain.MovieSummary{}
	}
	return convertList(payload.Results)
}
