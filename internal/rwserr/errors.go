// Package rwserr implements the error taxonomy shared by every rws
// subsystem: InvalidArgument, ProtocolError, TimeoutError, IoError and
// LogicError, each carrying whatever request/response context is
// available at the point of failure.
package rwserr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error into one of the five taxonomy buckets.
type Kind int

const (
	// KindInvalid marks a client-side precondition violation (bad enum
	// string, speed ratio out of range, and similar).
	KindInvalid Kind = iota
	// KindProtocol marks a server response the client cannot make sense
	// of: unexpected status, missing header, missing XML node, unknown
	// event class.
	KindProtocol
	// KindTimeout marks a blocking I/O deadline reached, or a missed
	// heartbeat.
	KindTimeout
	// KindIO marks a transport-level failure: connect refused, TLS
	// failure, unexpected socket close.
	KindIO
	// KindLogic marks an internal invariant violation, such as a
	// mastership release that would make the counter negative.
	KindLogic
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "InvalidArgument"
	case KindProtocol:
		return "ProtocolError"
	case KindTimeout:
		return "TimeoutError"
	case KindIO:
		return "IoError"
	case KindLogic:
		return "LogicError"
	default:
		return "UnknownError"
	}
}

// Error is the concrete error type returned by every package in this
// module. Fields are populated on a best-effort basis: a KindInvalid
// error rarely has an HTTP context, while a KindProtocol error usually
// carries the full request/response picture.
type Error struct {
	Kind     Kind
	Message  string
	Method   string
	URI      string
	ReqBody  string
	RespBody string
	Status   int
	Reason   string
	Wrapped  error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Method != "" || e.URI != "" {
		msg += fmt.Sprintf(" (method=%s uri=%s", e.Method, e.URI)
		if e.Status != 0 {
			msg += fmt.Sprintf(" status=%d reason=%q", e.Status, e.Reason)
		}
		msg += ")"
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Wrapped }

// Is reports whether target is (or wraps) an *Error of the same Kind,
// so errors.Is(err, &rwserr.Error{Kind: rwserr.KindTimeout}) matches
// any timeout error regardless of its message or context.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// Invalid builds a KindInvalid error.
func Invalid(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalid, Message: fmt.Sprintf(format, args...)}
}

// HTTPContext carries the request/response detail a ProtocolError
// attaches per spec: method, URI, request body, response body, status
// and reason.
type HTTPContext struct {
	Method   string
	URI      string
	ReqBody  string
	RespBody string
	Status   int
	Reason   string
}

// Protocol builds a KindProtocol error, optionally attaching ctx.
func Protocol(ctx HTTPContext, format string, args ...interface{}) *Error {
	return &Error{
		Kind:     KindProtocol,
		Message:  fmt.Sprintf(format, args...),
		Method:   ctx.Method,
		URI:      ctx.URI,
		ReqBody:  ctx.ReqBody,
		RespBody: ctx.RespBody,
		Status:   ctx.Status,
		Reason:   ctx.Reason,
	}
}

// Timeout builds a KindTimeout error, optionally wrapping the underlying
// cause (e.g. a net.Error from a read deadline).
func Timeout(cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindTimeout, Message: fmt.Sprintf(format, args...), Wrapped: cause}
}

// IO builds a KindIO error wrapping a transport-level cause.
func IO(cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindIO, Message: fmt.Sprintf(format, args...), Wrapped: cause}
}

// Logic builds a KindLogic error for an internal invariant violation.
func Logic(format string, args ...interface{}) *Error {
	return &Error{Kind: KindLogic, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of err if it is (or wraps) an *Error, and ok=false
// otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
