package weather

import (
	"errors"
	"fmt"
)

// ErrMalformedPayload marks an upstream response that decoded but lacks the
// daily parameter block.
var ErrMalformedPayload = errors.New("malformed upstream payload")

// RemoteFetchError is returned when historical data for a coordinate could not
// be retrieved, either because the call failed or the payload was malformed.
type RemoteFetchError struct {
	Coordinate Coordinate
	Source     string
	Err        error
}

func (e *RemoteFetchError) Error() string {
	return fmt.Sprintf("fetch historical data for %s from %s: %v", e.Coordinate.Key(), e.Source, e.Err)
}

func (e *RemoteFetchError) Unwrap() error {
	return e.Err
}

// IsRemoteFetch reports whether err is, or wraps, a RemoteFetchError.
func IsRemoteFetch(err error) bool {
	var rfe *RemoteFetchError
	return errors.As(err, &rfe)
}
