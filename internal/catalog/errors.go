package catalog

import "fmt"

// NotFoundError reports that the upstream has no record or page for the
// requested target. It is never retried automatically.
type NotFoundError struct {
	Resource string
	Target   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Target)
}

// NetworkError reports a transport-level failure: connection errors,
// timeouts, and upstream 5xx responses. Subject to the caller's retry
// policy.
type NetworkError struct {
	Op         string
	StatusCode int // zero when the request never completed
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: upstream returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
