package rpc

import (
	"fmt"
)

// Error is a JSON-RPC error object returned by the server. It is
// surfaced to the caller as-is and never retried.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error: %s (code %d)", e.Message, e.Code)
}

// ErrorCode returns the server-supplied numeric code.
func (e *Error) ErrorCode() int {
	return e.Code
}

// HTTPError is a transport-level failure: the endpoint answered with a
// non-success status. It keeps whatever diagnostic context was
// available when the call died.
type HTTPError struct {
	StatusCode int
	Method     string
	Params     []interface{}
	Body       []byte
}

func (e *HTTPError) Error() string {
	if len(e.Body) > 0 {
		return fmt.Sprintf("http error %d calling %s: %s", e.StatusCode, e.Method, e.Body)
	}
	return fmt.Sprintf("http error %d calling %s", e.StatusCode, e.Method)
}
