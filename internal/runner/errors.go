package runner

import (
	"encoding/json"
	"fmt"
)

// game specific status codes returned by the API
var codeDescriptions = map[int]string{
	404: "not found",
	461: "transaction already in progress",
	478: "missing item or insufficient quantity",
	486: "action already in progress",
	490: "character already at destination",
	497: "character inventory is full",
	498: "character not found",
	499: "character in cooldown",
}

// TransportError means the round trip could not be completed.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ResponseError means the API answered, but not with something usable: a non 2xx
// status, a body that is not a JSON object, or a missing field.
type ResponseError struct {
	// Status is zero when the HTTP exchange itself succeeded.
	Status  int
	Code    int
	Message string
	Err     error
}

func (e *ResponseError) Error() string {
	msg := "unexpected response"
	if e.Status != 0 {
		msg = fmt.Sprintf("unexpected status %d", e.Status)
	}
	if e.Code != 0 && e.Code != e.Status {
		msg += fmt.Sprintf(" (code %d)", e.Code)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

type errorEnvelope struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewStatusError builds a ResponseError for a non 2xx response, using the API error
// envelope when the body has one.
func NewStatusError(status int, body []byte) *ResponseError {
	e := &ResponseError{Status: status, Code: status}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil {
		if env.Error.Code != 0 {
			e.Code = env.Error.Code
		}
		e.Message = env.Error.Message
	}
	if e.Message == "" {
		e.Message = codeDescriptions[e.Code]
	}

	return e
}
