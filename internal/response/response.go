// Package response defines the uniform JSON envelope and the domain error
// taxonomy. Every endpoint, success and failure alike, renders
// {code, payload, request} where request is the path without query string.
package response

import "github.com/gin-gonic/gin"

type Envelope struct {
	Code    int    `json:"code"`
	Payload any    `json:"payload"`
	Request string `json:"request"`
}

// Error is a renderable domain failure. Payload is either a message map or a
// structured object, exactly as it will appear in the envelope.
type Error struct {
	Code    int
	Payload any
}

func (e *Error) Error() string {
	if m, ok := e.Payload.(gin.H); ok {
		if msg, ok := m["message"].(string); ok {
			return msg
		}
	}
	return "request failed"
}

// ErrAuth is the uniform authentication failure: missing, malformed, expired
// token and deleted user all collapse to this so nothing leaks to the caller.
var ErrAuth = &Error{Code: 403, Payload: gin.H{"message": "Please login"}}

// ErrNotFound covers absent and soft-deleted entities alike.
var ErrNotFound = &Error{Code: 404, Payload: gin.H{"message": "Page not found"}}

// ErrDatabase is the backing-store-unavailable failure, always a server error.
var ErrDatabase = &Error{Code: 500, Payload: gin.H{"message": "Database error, please try it later"}}

// Validation reports the first failing field of a form.
func Validation(field, message string) *Error {
	return &Error{Code: 400, Payload: gin.H{
		"error_field":   field,
		"error_message": message,
	}}
}

// Fail is a business-rule violation past validation.
func Fail(message string) *Error {
	return &Error{Code: 400, Payload: gin.H{"message": message}}
}

// Forbidden is an authenticated caller with insufficient role weight. Unlike
// ErrAuth it carries a human message: identity is already established.
func Forbidden(message string) *Error {
	return &Error{Code: 403, Payload: gin.H{"message": message}}
}

// ServerError wraps an internal failure with a caller-safe message.
func ServerError(message string) *Error {
	return &Error{Code: 500, Payload: gin.H{"message": message}}
}

// Success renders a 200 envelope. A string payload becomes {"message": s};
// nil becomes the generic success message.
func Success(c *gin.Context, payload any) {
	switch v := payload.(type) {
	case nil:
		payload = gin.H{"message": "Success"}
	case string:
		payload = gin.H{"message": v}
	}
	c.JSON(200, Envelope{
		Code:    200,
		Payload: payload,
		Request: c.Request.URL.Path,
	})
}

// Abort renders a failure envelope and stops the handler chain. Unrecognized
// errors render as a generic server error; domain errors render as declared.
func Abort(c *gin.Context, err error) {
	e, ok := err.(*Error)
	if !ok {
		e = &Error{Code: 500, Payload: gin.H{"message": "Server error"}}
	}
	c.Abort()
	c.JSON(e.Code, Envelope{
		Code:    e.Code,
		Payload: e.Payload,
		Request: c.Request.URL.Path,
	})
}
