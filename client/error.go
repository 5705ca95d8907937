package client

import (
	"errors"
	"fmt"
)

// maxErrBodySize caps the amount of response body kept on a
// [ResponseError].
const maxErrBodySize = 4 << 10 // 4KB

// ResponseError is the raw failure produced for a non-2xx response.
// Transports may also return it directly, setting Message.
type ResponseError struct {
	Message    string
	StatusCode int
	StatusText string
	Body       []byte
}

func (e *ResponseError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%v: %d, body: %s", ErrUnexpectedStatusCode, e.StatusCode, e.Body)
}

func (e *ResponseError) Unwrap() error {
	if e.StatusCode == 0 {
		return nil
	}
	return ErrUnexpectedStatusCode
}

func newResponseError(resp *Response) *ResponseError {
	body := resp.Body
	if len(body) > maxErrBodySize {
		body = body[:maxErrBodySize]
	}

	return &ResponseError{
		StatusCode: resp.StatusCode,
		StatusText: resp.StatusText,
		Body:       body,
	}
}

// TransportError reports an exchange that produced no response, such as
// a refused connection. Op names the failed step.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Error is the failure every activated call resolves to. It carries only
// the normalized, human-readable message.
type Error string

func (e Error) Error() string {
	return string(e)
}

// NormalizeError derives the message for a failed call, in priority order:
// an explicit message, then "<status> - <statusText>", then "Server error".
// A [TransportError] contributes the text of its cause; other errors use
// their Error text as the message.
func NormalizeError(err error) Error {
	var re *ResponseError
	if errors.As(err, &re) {
		switch {
		case re.Message != "":
			return Error(re.Message)
		case re.StatusCode != 0:
			return Error(fmt.Sprintf("%d - %s", re.StatusCode, re.StatusText))
		default:
			return fallbackErrMessage
		}
	}

	var te *TransportError
	if errors.As(err, &te) && te.Err != nil {
		err = te.Err
	}

	if err != nil && err.Error() != "" {
		return Error(err.Error())
	}

	return fallbackErrMessage
}
