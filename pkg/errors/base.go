package errors

import (
	"errors"
	"fmt"
)

/*
ConfigError reports a missing or invalid piece of configuration. It is raised
before any network call is attempted.
*/
type ConfigError struct {
	Key    string
	Reason string
}

func NewConfigError(key, reason string) *ConfigError {
	return &ConfigError{Key: key, Reason: reason}
}

func (err *ConfigError) Error() string {
	if err.Reason == "" {
		return fmt.Sprintf("%s not configured", err.Key)
	}

	return fmt.Sprintf("%s not configured: %s", err.Key, err.Reason)
}

/*
UpstreamSchemaError is returned when an upstream service (movie catalog,
mood classifier, language model) answers with a payload that does not match
the shape we expect.
*/
type UpstreamSchemaError struct {
	Source string
	Field  string
	Reason string
}

func NewUpstreamSchemaError(source, field, reason string) *UpstreamSchemaError {
	return &UpstreamSchemaError{Source: source, Field: field, Reason: reason}
}

func (err *UpstreamSchemaError) Error() string {
	if err.Field == "" {
		return fmt.Sprintf("%s returned an unexpected payload: %s", err.Source, err.Reason)
	}

	return fmt.Sprintf(
		"%s returned an unexpected payload: field %q %s", err.Source, err.Field, err.Reason,
	)
}

// IsConfigError reports whether any error in err's chain is a ConfigError.
func IsConfigError(err error) bool {
	var target *ConfigError
	return errors.As(err, &target)
}

// IsUpstreamSchemaError reports whether any error in err's chain is an
// UpstreamSchemaError.
func IsUpstreamSchemaError(err error) bool {
	var target *UpstreamSchemaError
	return errors.As(err, &target)
}
