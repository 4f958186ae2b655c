package mailitem

import (
	"errors"
	"fmt"
)

var errUnknownHostFailure = errors.New("host request failed")

// HostAPIError is returned when a host request reports a non-success status.
type HostAPIError struct {
	Op  string
	Err error
}

func (e *HostAPIError) Error() string {
	return fmt.Sprintf("host %s: %v", e.Op, e.Err)
}

func (e *HostAPIError) Unwrap() error {
	return e.Err
}

// AttachmentFetchError is returned when any attachment's content cannot be
// fetched. The whole resolution fails with it.
type AttachmentFetchError struct {
	ID   string
	Name string
	Err  error
}

func (e *AttachmentFetchError) Error() string {
	return fmt.Sprintf("fetch attachment %q (%s): %v", e.Name, e.ID, e.Err)
}

func (e *AttachmentFetchError) Unwrap() error {
	return e.Err
}

func hostError(op string, err error) *HostAPIError {
	if err == nil {
		err = errUnknownHostFailure
	}
	return &HostAPIError{Op: op, Err: err}
}
