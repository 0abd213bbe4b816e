// Package errs defines the two error kinds the client surfaces: validation
// errors detected locally before any request is made, and GitHub API errors
// for anything that goes wrong once a request is in flight.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrGitHubAPI  = errors.New("github api error")
)

type ValidationError struct{ err error }

func (e *ValidationError) Error() string { return e.err.Error() }
func (e *ValidationError) Unwrap() error { return e.err }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func Validation(err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{err: err}
}

func Validationf(format string, args ...any) error {
	return &ValidationError{err: fmt.Errorf(format, args...)}
}

// GitHubAPIError carries the HTTP status of the failed exchange. StatusCode
// is 0 when no response was received at all, e.g. a DNS or connection error.
type GitHubAPIError struct {
	err        error
	StatusCode int
}

func (e *GitHubAPIError) Error() string { return e.err.Error() }
func (e *GitHubAPIError) Unwrap() error { return e.err }
func (e *GitHubAPIError) Is(target error) bool { return target == ErrGitHubAPI }

func API(statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &GitHubAPIError{err: err, StatusCode: statusCode}
}

func APIf(statusCode int, format string, args ...any) error {
	return &GitHubAPIError{err: fmt.Errorf(format, args...), StatusCode: statusCode}
}

// StatusCode reports the HTTP status attached to err, if err is a
// GitHubAPIError that received a response.
func StatusCode(err error) (int, bool) {
	var apiErr *GitHubAPIError
	if errors.As(err, &apiErr) && apiErr.StatusCode != 0 {
		return apiErr.StatusCode, true
	}
	return 0, false
}
