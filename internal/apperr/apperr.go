// Package apperr classifies application errors and maps them
// to HTTP status codes at the transport boundary.
package apperr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error kinds used across the service.
const (
	KindValidation    = "validation"
	KindUnauthorized  = "unauthorized"
	KindConfig        = "config"
	KindUpstream      = "upstream"
	KindQuotaExceeded = "quota_exceeded"
	KindTimeout       = "timeout"
	KindCanceled      = "canceled"
	KindInternal      = "internal"
)

// Error is a classified application error. Detail carries the raw
// upstream payload when one is available.
type Error struct {
	ErrKind        string
	Message        string
	UpstreamStatus int             // set only for upstream errors
	Detail         json.RawMessage // raw upstream body, if any
}

func (e *Error) Error() string {
	if e.UpstreamStatus != 0 {
		return fmt.Sprintf("%s: %s (upstream status %d)", e.ErrKind, e.Message, e.UpstreamStatus)
	}
	return fmt.Sprintf("%s: %s", e.ErrKind, e.Message)
}

// Kind returns the error's classification kind.
func (e *Error) Kind() string { return e.ErrKind }

// Validation reports malformed or missing caller input.
func Validation(format string, args ...any) *Error {
	return &Error{ErrKind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized reports a failed admin-password check.
func Unauthorized() *Error {
	return &Error{ErrKind: KindUnauthorized, Message: "unauthorized"}
}

// Config reports a missing required secret or setting. Operator
// action is required; the caller cannot recover by retrying.
func Config(format string, args ...any) *Error {
	return &Error{ErrKind: KindConfig, Message: fmt.Sprintf(format, args...)}
}

// Upstream reports a non-success response from an external gateway.
// status is the upstream HTTP status; body is the raw upstream payload,
// kept so the caller can inspect the gateway's own error message. A
// body that is not valid JSON is dropped rather than corrupting the
// error response.
func Upstream(status int, message string, body []byte) *Error {
	e := &Error{
		ErrKind:        KindUpstream,
		Message:        message,
		UpstreamStatus: status,
	}
	if json.Valid(body) {
		e.Detail = json.RawMessage(body)
	}
	return e
}

// QuotaExceeded reports that the per-window message ceiling was reached.
func QuotaExceeded(max int) *Error {
	return &Error{ErrKind: KindQuotaExceeded, Message: fmt.Sprintf("demo limit reached: max %d messages per window", max)}
}

// kinder is satisfied by errors that carry a classification kind.
type kinder interface {
	Kind() string
}

// Kind returns the classification kind of any error.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	var k kinder
	if errors.As(err, &k) {
		return k.Kind()
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, context.Canceled):
		return KindCanceled
	default:
		return KindInternal
	}
}

// kindToStatus maps error classification kinds to HTTP status codes.
var kindToStatus = map[string]int{
	KindValidation:    http.StatusBadRequest,
	KindUnauthorized:  http.StatusUnauthorized,
	KindConfig:        http.StatusInternalServerError,
	KindQuotaExceeded: http.StatusTooManyRequests,
	KindTimeout:       http.StatusGatewayTimeout,
	KindCanceled:      http.StatusRequestTimeout,
}

// HTTPStatus maps an error to the status code written to the client.
// Upstream errors propagate the upstream status when it is known.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var e *Error
	if errors.As(err, &e) && e.ErrKind == KindUpstream {
		// Only genuine upstream error statuses propagate. A gateway
		// that answered 2xx with an unusable body, or no status at
		// all, is reported as a bad gateway.
		if e.UpstreamStatus >= http.StatusBadRequest {
			return e.UpstreamStatus
		}
		return http.StatusBadGateway
	}
	if s, ok := kindToStatus[Kind(err)]; ok {
		return s
	}
	return http.StatusInternalServerError
}
