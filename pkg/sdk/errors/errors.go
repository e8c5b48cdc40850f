package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

var ErrBadRequest = fmt.Errorf("bad request")
var ErrUnauthorized = fmt.Errorf("unauthorized request")
var ErrPaymentRequired = fmt.Errorf("message rejected")
var ErrForbidden = fmt.Errorf("access denied")
var ErrNotFound = fmt.Errorf("resource not found")
var ErrMethodNotAllowed = fmt.Errorf("method not allowed")
var ErrGone = fmt.Errorf("resource removed")
var ErrUnprocessable = fmt.Errorf("mail provider error")
var ErrRateLimited = fmt.Errorf("sending quota exceeded")
var ErrInternal = fmt.Errorf("internal error")
var ErrNotImplemented = fmt.Errorf("endpoint not yet implemented")
var ErrBadGateway = fmt.Errorf("bad gateway")
var ErrServiceUnavailable = fmt.Errorf("service unavailable")
var ErrTimeout = fmt.Errorf("request timed out")

var ErrRequest = fmt.Errorf("request error")
var ErrBadResponse = fmt.Errorf("bad response")

var sentinels = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusPaymentRequired:     ErrPaymentRequired,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusMethodNotAllowed:    ErrMethodNotAllowed,
	http.StatusGone:                ErrGone,
	http.StatusUnprocessableEntity: ErrUnprocessable,
	http.StatusTooManyRequests:     ErrRateLimited,
	http.StatusInternalServerError: ErrInternal,
	http.StatusNotImplemented:      ErrNotImplemented,
	http.StatusBadGateway:          ErrBadGateway,
	http.StatusServiceUnavailable:  ErrServiceUnavailable,
	http.StatusGatewayTimeout:      ErrTimeout,
}

// APIError is returned for every response with an error status code
type APIError struct {
	StatusCode int
	Type       string
	Message    string
	target     error
}

func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("[code: %d] %s: %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("[code: %d] %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool { return target == e.target }

// NewErrorFromResponse translates an error response into an *APIError that
// matches the sentinel error for its status code
func NewErrorFromResponse(code int, contentType string, body []byte) error {
	report := &struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}{}

	if len(body) > 0 {
		if err := json.Unmarshal(body, report); err != nil {
			report.Message = string(body)
		}
	}

	if report.Message == "" {
		report.Message = http.StatusText(code)
	}

	target, ok := sentinels[code]
	if !ok {
		target = ErrInternal
		if code < http.StatusInternalServerError {
			target = ErrBadRequest
		}
	}

	return &APIError{
		StatusCode: code,
		Type:       report.Type,
		Message:    report.Message,
		target:     target,
	}
}

// Report is the body of an error response as sent by the API
type Report struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewReport(errorType, message string) Report {
	return Report{Type: errorType, Message: message}
}

func (r Report) WriteResponse(w http.ResponseWriter, code int) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(code)

	b, err := json.Marshal(r)
	if err == nil {
		w.Write(b)
	}
}
