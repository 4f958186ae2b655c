package flow

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrUnexpectedShape is reported when the folder list is not a JSON array.
var ErrUnexpectedShape = errors.New("unexpected response shape")

// NetworkError is returned when a trigger request could not complete. URL
// has its query removed since that is where the trigger signature lives.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func newNetworkError(op, rawURL string, err error) *NetworkError {
	// *url.Error repeats the full URL in its message.
	var urlErr *url.Error
	for errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	return &NetworkError{Op: op, URL: redactURL(rawURL), Err: err}
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: request to %s failed: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "(invalid url)"
	}
	u.User = nil
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
