package domain

import (
	"errors"
	"fmt"
)

// Error codes carried by Error. The handler layer maps each one onto an
// HTTP status; services only tag errors with them.
const (
	ECONFLICT     = "conflict"         // duplicate email, double waitlist join (409)
	EINTERNAL     = "internal"         // anything the client must not see (500)
	EINVALID      = "invalid"          // bad input (400)
	ENOTFOUND     = "not_found"        // missing row or route (404)
	EUNAUTHORIZED = "unauthorized"     // missing or bad credentials (401)
	EFORBIDDEN    = "forbidden"        // authenticated but wrong role or owner (403)
	ENOTIMPL      = "not_implemented"  // feature switched off, e.g. grocery search (501)
	ERATELIMIT    = "rate_limit"       // too many attempts (429)
	EPAYMENT      = "payment_required" // declined or otherwise unpaid (402)
	EGONE         = "gone"             // deleted and not coming back (410)
	ETOOLARGE     = "too_large"        // request body over the cap (413)
)

// genericErrorMessage replaces anything the client must not see.
const genericErrorMessage = "An internal error occurred. Please try again later."

// Error is the application error. Handlers read Code for the HTTP
// status and Message for the response body; Op and Err exist for the
// logs.
type Error struct {
	Code    string // one of the E* constants
	Message string // safe to show to the client
	Op      string // where it happened, e.g. "order.checkout"
	Err     error  // cause, when wrapping another error
}

// Error builds "op: message: cause", dropping whichever parts are
// absent.
func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// ErrorCode reports err's code, looking through any wrapping. Errors
// that never got classified read as EINTERNAL so they render as a 500
// rather than something softer. Nil reports "".
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage reports what the client is allowed to read: the message
// for classified errors, the generic sentence for EINTERNAL and for
// anything unclassified.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Code != EINTERNAL {
		return e.Message
	}
	return genericErrorMessage
}

// ErrorOp reports the operation for logging, "" when err carries none.
func ErrorOp(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Op
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code string) bool {
	return ErrorCode(err) == code
}

// Errorf mints a classified error with a formatted message.
//
//	domain.Errorf(domain.EINVALID, "location.validate", "unsupported country: %s", country)
func Errorf(code, op, format string, args ...any) error {
	return &Error{
		Code:    code,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError classifies an existing error without losing it: the code
// and message face the client while err stays reachable for errors.Is
// and the logs. Nil in, nil out.
func WrapError(err error, code, op, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// Validation errors. Payload checks report every bad field in one
// round trip instead of failing on the first.

// ValidationError collects per-field problems with a request payload.
// The handler renders Fields as the error envelope's fields object.
type ValidationError struct {
	Fields map[string]string // field name -> what is wrong with it
	Op     string
}

// Error names the field directly when there is exactly one, otherwise
// just counts them.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("validation failed for %d fields", len(e.Fields))
	if len(e.Fields) == 1 {
		for field, m := range e.Fields {
			msg = fmt.Sprintf("%s: %s", field, m)
		}
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, msg)
	}
	return msg
}

// NewValidationError starts a validation error with one bad field.
func NewValidationError(op, field, message string) error {
	return &ValidationError{
		Op:     op,
		Fields: map[string]string{field: message},
	}
}

// AddFieldError records another bad field on err. A nil err, or one
// that is not a ValidationError, starts a fresh one; repeating a field
// keeps the latest message.
func AddFieldError(err error, field, message string) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		if ve.Fields == nil {
			ve.Fields = make(map[string]string)
		}
		ve.Fields[field] = message
		return ve
	}
	return &ValidationError{
		Fields: map[string]string{field: message},
	}
}

// IsValidationError reports whether err has a ValidationError anywhere
// in its chain.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// GetValidationFields pulls the per-field messages out of err, nil when
// err is not a ValidationError.
func GetValidationFields(err error) map[string]string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}

// Constructors for the common cases, so call sites stay one line.

// NotFound reports a missing resource by name and identifier.
//
//	domain.NotFound("offering.get", "offering", offeringID.String())
func NotFound(op, resource, identifier string) error {
	return &Error{
		Code:    ENOTFOUND,
		Op:      op,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
	}
}

// Unauthorized reports missing or bad credentials.
func Unauthorized(op, message string) error {
	return &Error{Code: EUNAUTHORIZED, Op: op, Message: message}
}

// Forbidden reports a role or ownership problem.
func Forbidden(op, message string) error {
	return &Error{Code: EFORBIDDEN, Op: op, Message: message}
}

// Invalid reports a single bad input without the field machinery.
func Invalid(op, message string) error {
	return &Error{Code: EINVALID, Op: op, Message: message}
}

// Conflict reports a uniqueness or state collision.
func Conflict(op, message string) error {
	return &Error{Code: ECONFLICT, Op: op, Message: message}
}

// Internal classifies a failure the client must not see. The message
// here is for the logs; ErrorMessage hides it behind the generic
// sentence.
func Internal(err error, op, message string) error {
	return &Error{
		Code:    EINTERNAL,
		Op:      op,
		Message: message,
		Err:     err,
	}
}
