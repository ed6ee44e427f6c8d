package extraction

import (
	"context"
	"errors"
	"fmt"

	"hackathon-radar/pkg/domain"
)

// Extractor turns one free-text announcement into a candidate record.
// Implementations are stateless and safe for concurrent use.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, rawText string) (domain.Candidate, error)
}

// Reason classifies why an extraction failed.
type Reason string

const (
	// ReasonUnavailable: no extraction backend is configured.
	ReasonUnavailable Reason = "unavailable"
	// ReasonTransport: the service could not be reached or answered non-2xx.
	ReasonTransport Reason = "transport"
	// ReasonPayload: the service answered but not with a usable message.
	ReasonPayload Reason = "payload"
	// ReasonContract: the message was not a single JSON object with the
	// expected fields.
	ReasonContract Reason = "contract"
)

// ErrUnavailable is wrapped by every error from the disabled extractor.
var ErrUnavailable = errors.New("no extraction available")

// Error is returned for every failed extraction.
type Error struct {
	Reason Reason
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("extraction failed (%s): %v", e.Reason, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func fail(reason Reason, format string, args ...any) error {
	return &Error{Reason: reason, Err: fmt.Errorf(format, args...)}
}

// IsUnavailable reports whether err means extraction is switched off.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
