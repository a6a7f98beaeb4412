package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Result represents a single TMDB search match.
type Result struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  string  `json:"poster_path"`
	Popularity  float64 `json:"popularity"`
	VoteAverage float64 `json:"vote_average"`
}

// Response models the TMDB paginated search response.
type Response struct {
	Page         int      `json:"page"`
	Results      []Result `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// Genre is a TMDB genre entry attached to movie details.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ReleaseCertification is one certification entry within a country block.
type ReleaseCertification struct {
	Certification string `json:"certification"`
	ReleaseDate   string `json:"release_date"`
}

// CountryReleases groups the certifications issued in a single country.
type CountryReleases struct {
	CountryCode  string                 `json:"iso_3166_1"`
	ReleaseDates []ReleaseCertification `json:"release_dates"`
}

// MovieDetails captures the TMDB movie payload with release dates appended.
type MovieDetails struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	Runtime      int     `json:"runtime"`
	PosterPath   string  `json:"poster_path"`
	Budget       int64   `json:"budget"`
	Revenue      int64   `json:"revenue"`
	Genres       []Genre `json:"genres"`
	ReleaseDates struct {
		Results []CountryReleases `json:"results"`
	} `json:"release_dates"`
}

// USCertification returns the certification for the US release, or "N/A"
// when the movie has no US release entry.
func (d *MovieDetails) USCertification() string {
	for _, country := range d.ReleaseDates.Results {
		if country.CountryCode == "US" && len(country.ReleaseDates) > 0 {
			if cert := country.ReleaseDates[0].Certification; cert != "" {
				return cert
			}
		}
	}
	return "N/A"
}

// Searcher defines the TMDB operations used by the catalog.
type Searcher interface {
	SearchMovie(ctx context.Context, query string) (*Response, error)
	Discover(ctx context.Context) (*Response, error)
	GetMovieDetails(ctx context.Context, movieID int64) (*MovieDetails, error)
}

// Client provides access to the TMDB API.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
}

var _ Searcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func (c *Client) params() url.Values {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	return params
}

func (c *Client) get(ctx context.Context, endpoint *url.URL, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}
	return nil
}

// StatusError reports a non-200 TMDB response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb returned %d", e.StatusCode)
}

// SearchMovie searches TMDB for the supplied title.
func (c *Client) SearchMovie(ctx context.Context, query string) (*Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/search/movie")
	if err != nil {
		return nil, fmt.Errorf("parse tmdb url: %w", err)
	}
	params := c.params()
	params.Set("query", query)
	params.Set("include_adult", "false")
	params.Set("page", "1")
	endpoint.RawQuery = params.Encode()

	var payload Response
	if err := c.get(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Discover lists popular movies, used when a search query is empty.
func (c *Client) Discover(ctx context.Context) (*Response, error) {
	endpoint, err := url.Parse(c.baseURL + "/discover/movie")
	if err != nil {
		return nil, fmt.Errorf("parse tmdb url: %w", err)
	}
	params := c.params()
	params.Set("sort_by", "popularity.desc")
	params.Set("include_adult", "false")
	params.Set("include_video", "false")
	params.Set("page", "1")
	endpoint.RawQuery = params.Encode()

	var payload Response
	if err := c.get(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GetMovieDetails fetches movie details by TMDB ID with release dates appended.
func (c *Client) GetMovieDetails(ctx context.Context, movieID int64) (*MovieDetails, error) {
	if movieID <= 0 {
		return nil, errors.New("movie id must be positive")
	}
	endpoint, err := url.Parse(fmt.Sprintf("%s/movie/%d", c.baseURL, movieID))
	if err != nil {
		return nil, fmt.Errorf("parse tmdb url: %w", err)
	}
	params := c.params()
	params.Set("append_to_response", "release_dates")
	endpoint.RawQuery = params.Encode()

	var payload MovieDetails
	if err := c.get(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
