package errors

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// safeDetailsPrefix tags the safe-details payload that carries structured
// fields through the cockroachdb error chain to the API error response.
const safeDetailsPrefix = "__json__:"

// ErrorBuilder assembles an error out of an internal message, a
// caller-facing hint and structured details, and finishes by marking it with
// one of the package sentinels. Mark must be the last call in the chain; the
// builder itself is not an error.
type ErrorBuilder struct {
	err     error
	details map[string]any
}

// NewError starts a chain from an internal message. The message is for logs;
// callers see hints.
func NewError(msg string) *ErrorBuilder {
	return &ErrorBuilder{err: errors.New(msg)}
}

// WithError starts a chain wrapping an existing error.
func WithError(err error) *ErrorBuilder {
	return &ErrorBuilder{err: err}
}

// WithHint sets the message shown to API callers.
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err = errors.WithHint(b.err, hint)
	return b
}

// WithHintf formats the message shown to API callers.
func (b *ErrorBuilder) WithHintf(format string, args ...any) *ErrorBuilder {
	b.err = errors.WithHintf(b.err, format, args...)
	return b
}

// WithReportableDetails attaches structured fields (invoice ids, periods,
// offending values) that are safe to return in the error response body.
// Repeated calls merge; later keys win.
func (b *ErrorBuilder) WithReportableDetails(details map[string]any) *ErrorBuilder {
	if b.details == nil {
		b.details = make(map[string]any, len(details))
	}
	for k, v := range details {
		b.details[k] = v
	}
	return b
}

// Mark stamps the sentinel that drives Is* predicates and the HTTP status,
// and seals any accumulated details into the chain. Always the last call.
func (b *ErrorBuilder) Mark(sentinel error) error {
	if len(b.details) > 0 {
		if marshaled, err := json.Marshal(b.details); err == nil {
			b.err = errors.WithSafeDetails(b.err, safeDetailsPrefix+"%s", errors.Safe(string(marshaled)))
		}
	}
	return errors.Mark(b.err, sentinel)
}
