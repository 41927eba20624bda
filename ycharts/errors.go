// Copyright 2022 Stock Parfait

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ycharts

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/stockparfait/errors"
)

// Kind is the closed set of failure categories reported by the client.
type Kind string

// Values of Kind.
const (
	ValidationError         = Kind("ValidationError")
	ConfigurationError      = Kind("ConfigurationError")
	TooManySymbolsError     = Kind("TooManySymbolsError")
	InsufficientAccessError = Kind("InsufficientAccessError")
	MissingCredentialsError = Kind("MissingCredentialsError")
	ConnectionError         = Kind("ConnectionError")
	ServiceUnavailableError = Kind("ServiceUnavailableError")
	MalformedResponseError  = Kind("MalformedResponseError")
)

// Error is the only error type returned by the API calls.
type Error struct {
	Kind       Kind
	Reason     string
	StatusCode int   // HTTP status, when the error came from a response
	Cause      error // underlying failure, if any
}

var _ error = &Error{}

// Sentinels for use with errors.Is. Only the Kind is compared.
var (
	ErrValidation         = &Error{Kind: ValidationError}
	ErrConfiguration      = &Error{Kind: ConfigurationError}
	ErrTooManySymbols     = &Error{Kind: TooManySymbolsError}
	ErrInsufficientAccess = &Error{Kind: InsufficientAccessError}
	ErrMissingCredentials = &Error{Kind: MissingCredentialsError}
	ErrConnection         = &Error{Kind: ConnectionError}
	ErrServiceUnavailable = &Error{Kind: ServiceUnavailableError}
	ErrMalformedResponse  = &Error{Kind: MalformedResponseError}
)

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	msg := string(e.Kind) + ": " + e.Reason
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// KindOf returns the Kind of the first *Error in the err's chain, or "" if
// there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// StatusCode returns the HTTP status of the first *Error in the err's chain,
// or 0 if not available.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// unavailable wraps a transport level failure.
func unavailable(cause error) *Error {
	e := newError(ServiceUnavailableError, "API is down for maintenance, please try again")
	e.Cause = cause
	return e
}

// classify maps the response status and body to the result or an error.
func classify(status int, body []byte) (map[string]interface{}, error) {
	if status >= 200 && status < 300 {
		var res map[string]interface{}
		if err := json.Unmarshal(body, &res); err != nil {
			e := newError(MalformedResponseError, "response is not a valid JSON object")
			e.StatusCode = status
			e.Cause = err
			return nil, e
		}
		if res == nil { // body was JSON null
			e := newError(MalformedResponseError, "response is not a valid JSON object")
			e.StatusCode = status
			return nil, e
		}
		return res, nil
	}
	var e *Error
	switch status {
	case http.StatusRequestURITooLong:
		e = newError(TooManySymbolsError, "too many symbols or fields, ensure 100 or fewer of each")
	case http.StatusForbidden:
		e = newError(InsufficientAccessError, "API key is insufficient for requested access")
	case http.StatusUnauthorized:
		e = newError(MissingCredentialsError, "missing API key header")
	default:
		e = newError(ConnectionError, "connection error, please try again")
	}
	e.StatusCode = status
	return nil, e
}
