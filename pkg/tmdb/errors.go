package tmdb

import "fmt"

// Error types for the tmdb package
type (
	// StatusError is returned when TMDB answers with a non-2xx status
	StatusError struct {
		StatusCode int
		Status     string
		Body       string
	}

	// ConnectionError wraps transport failures while talking to TMDB
	ConnectionError struct {
		URL string
		Err error
	}
)

func (e *StatusError) Error() string {
	return fmt.Sprintf("TMDB API error: %s", e.Status)
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to TMDB (%s): %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}
