package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrTransport marks failures where no HTTP answer was received.
var ErrTransport = errors.New("backend unreachable")

// TransportError wraps a failed round trip.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// StatusError is a non-2xx answer. Fields carries the server's per-field
// messages when the payload had an "errors" object, keyed by form field.
type StatusError struct {
	Op         string
	StatusCode int
	Message    string
	Fields     map[string][]string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
}

// FieldMessages returns the server's per-field messages.
func (e *StatusError) FieldMessages() map[string][]string {
	return e.Fields
}

// FieldErrors extracts server field errors from err, if any.
func FieldErrors(err error) map[string][]string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Fields
	}
	return nil
}

// fieldMsgs accepts either a list of messages or a single message.
type fieldMsgs []string

func (f *fieldMsgs) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*f = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*f = []string{single}
	return nil
}

// serverFieldNames maps backend field names to form field names.
var serverFieldNames = map[string]string{
	"password_confirmation": "confirmPassword",
}

func newStatusError(op string, status int, body []byte) *StatusError {
	statusErr := &StatusError{Op: op, StatusCode: status}

	var payload struct {
		Message string               `json:"message"`
		Errors  map[string]fieldMsgs `json:"errors"`
	}
	if len(body) == 0 || json.Unmarshal(body, &payload) != nil {
		return statusErr
	}

	statusErr.Message = strings.TrimSpace(payload.Message)
	if len(payload.Errors) > 0 {
		statusErr.Fields = make(map[string][]string, len(payload.Errors))
		for field, msgs := range payload.Errors {
			if mapped, ok := serverFieldNames[field]; ok {
				field = mapped
			}
			statusErr.Fields[field] = append(statusErr.Fields[field], msgs...)
		}
	}
	return statusErr
}
