package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/cinematch/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const DefaultBaseURL = "https://api.themoviedb.org/3"

/*
Client queries The Movie Database. Requests are authenticated with a bearer
token (a TMDB v4 read access token).
*/
type Client struct {
	baseURL     string
	apiKey      string
	conn        *http.Client
	concurrency int
}

type ClientOption func(*Client)

func WithHTTPClient(conn *http.Client) ClientOption {
	return func(c *Client) {
		c.conn = conn
	}
}

// WithConcurrency bounds the number of detail requests in flight.
func WithConcurrency(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		conn:        &http.Client{},
		concurrency: 5,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

/*
Discover returns the first page of movies in the given genres, most popular
first. genre is passed through as with_genres, so "35,10749" asks for both.
*/
func (c *Client) Discover(ctx context.Context, genre string) ([]Movie, error) {
	return c.discover(ctx, genre, 0)
}

func (c *Client) discover(ctx context.Context, genre string, limit int) ([]Movie, error) {
	query := url.Values{}
	query.Set("with_genres", genre)
	query.Set("sort_by", "popularity.desc")
	query.Set("page", "1")

	body, err := c.get(ctx, "/discover/movie?"+query.Encode())
	if err != nil {
		return nil, err
	}

	results, err := decodeDiscover(body, limit)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("No movies found for genre: %s", genre)
	}

	movies := make([]Movie, len(results))

	for i, result := range results {
		movies[i] = result.movie()
	}

	log.Debug("discovered movies", "genre", genre, "count", len(movies))
	return movies, nil
}

func (c *Client) details(ctx context.Context, id int64) (*movieDetails, error) {
	body, err := c.get(ctx, "/movie/"+strconv.FormatInt(id, 10))
	if err != nil {
		return nil, err
	}

	var details movieDetails

	if err := json.Unmarshal(body, &details); err != nil {
		return nil, errors.NewUpstreamSchemaError("tmdb", "", err.Error())
	}

	return &details, nil
}

/*
Recommend discovers movies for genre and enriches the first limit of them with
runtime and genre names. Detail requests run concurrently and the result keeps
the discover order. A failed detail request leaves that movie with a zero
runtime and no genres instead of failing the whole call.
*/
func (c *Client) Recommend(ctx context.Context, genre string, limit int) ([]Movie, error) {
	movies, err := c.discover(ctx, genre, limit)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i := range movies {
		g.Go(func() error {
			details, err := c.details(gctx, movies[i].ID)
			if err != nil {
				log.Warn("movie details unavailable", "id", movies[i].ID, "error", err)
				return nil
			}

			details.apply(&movies[i])
			return nil
		})
	}

	// Workers never return an error.
	_ = g.Wait()

	return movies, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	endpoint := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.conn.Do(req)
	if err != nil {
		return nil, &ConnectionError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectionError{URL: endpoint, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	return body, nil
}
