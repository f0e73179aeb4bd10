package tmdb

import (
	"encoding/json"
	"strconv"

	"github.com/theapemachine/cinematch/pkg/errors"
)

/*
Movie is a catalog entry as CinemaMatch returns it.
*/
type Movie struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	Rating      float64  `json:"rating"`
	ReleaseDate string   `json:"releaseDate"`
	Runtime     int      `json:"runtime"`
	Genres      []string `json:"genres"`
	Popularity  float64  `json:"popularity"`
}

type discoverResult struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	VoteAverage float64 `json:"vote_average"`
	ReleaseDate string  `json:"release_date"`
	Popularity  float64 `json:"popularity"`
}

type discoverPage struct {
	Page    int               `json:"page"`
	Results *[]discoverResult `json:"results"`
}

type genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type movieDetails struct {
	ID      int64   `json:"id"`
	Runtime int     `json:"runtime"`
	Genres  []genre `json:"genres"`
}

/*
decodeDiscover parses a /discover/movie page and keeps its first limit
results, or all of them when limit is not positive. The page must carry a
results array, and every kept item must have an id and a title. Items past
limit are dropped unchecked.
*/
func decodeDiscover(body []byte, limit int) ([]discoverResult, error) {
	var page discoverPage

	if err := json.Unmarshal(body, &page); err != nil {
		return nil, errors.NewUpstreamSchemaError("tmdb", "", err.Error())
	}

	if page.Results == nil {
		return nil, errors.NewUpstreamSchemaError("tmdb", "results", "is missing")
	}

	results := *page.Results
	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}

	for i, result := range results {
		if result.ID == 0 {
			return nil, errors.NewUpstreamSchemaError(
				"tmdb", "results["+strconv.Itoa(i)+"].id", "is missing",
			)
		}

		if result.Title == "" {
			return nil, errors.NewUpstreamSchemaError(
				"tmdb", "results["+strconv.Itoa(i)+"].title", "is missing",
			)
		}
	}

	return results, nil
}

func (result discoverResult) movie() Movie {
	return Movie{
		ID:          result.ID,
		Title:       result.Title,
		Overview:    result.Overview,
		Rating:      result.VoteAverage,
		ReleaseDate: result.ReleaseDate,
		Genres:      []string{},
		Popularity:  result.Popularity,
	}
}

func (details *movieDetails) apply(movie *Movie) {
	movie.Runtime = details.Runtime

	for _, g := range details.Genres {
		movie.Genres = append(movie.Genres, g.Name)
	}
}
