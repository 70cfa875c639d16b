package models

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("requested resource not found")
var ErrInvalidTier = errors.New("invalid difficulty tier")
var ErrInvalidRequest = errors.New("invalid request parameters")

// ErrMissingCredentials means a provider API key is not configured. It is
// fatal for the whole request and checked before any trial runs.
var ErrMissingCredentials = errors.New("provider credentials are not configured")

// MissingCredentialsError records which provider keys were present when a
// request was refused. It matches ErrMissingCredentials with errors.Is.
type MissingCredentialsError struct {
	DirectionsLoaded bool
	ElevationLoaded  bool
}

func (e *MissingCredentialsError) Error() string {
	return fmt.Sprintf("%v (directions=%t, elevation=%t)", ErrMissingCredentials, e.DirectionsLoaded, e.ElevationLoaded)
}

func (e *MissingCredentialsError) Unwrap() error { return ErrMissingCredentials }

// Provider-side failures. Inside a trial these only ever become a discard.
var ErrProviderUnavailable = errors.New("provider request failed")
var ErrMalformedResponse = errors.New("malformed provider response")
var ErrNoRoute = errors.New("provider returned no usable route")
var ErrElevationMismatch = errors.New("elevation count does not match requested points")

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Message string `json:"message"`
}
