package ingestion

import (
	"errors"
	"fmt"
)

// ErrRateLimited reports that the upstream API rejected the call because the
// daily/issued quota was exceeded. The batch should stop and retry later;
// records already persisted remain valid.
var ErrRateLimited = errors.New("upstream rate limit exceeded")

// TransportError reports an HTTP, decoding or upstream-result failure other
// than rate limiting. Fatal to the current batch; surfaced to the operator.
type TransportError struct {
	Op  string // what was being attempted
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsRateLimited reports whether err classifies as a rate-limit rejection.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsTransportFailure reports whether err classifies as a transport or parse
// failure.
func IsTransportFailure(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
