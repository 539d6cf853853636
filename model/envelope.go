// Package model - the uniform success/failure envelope returned by every
// public operation.
package model

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried by failure envelopes.
const (
	CodeInvalidInput  = "INVALID_INPUT"
	CodeUpstreamError = "UPSTREAM_ERROR"
	CodeRateLimited   = "RATE_LIMITED"
	CodeTimeout       = "TIMEOUT"
	CodeParseError    = "PARSE_ERROR"
	CodeInternalError = "INTERNAL_ERROR"
)

// Meta carries envelope metadata common to success and failure responses.
type Meta struct {
	RetrievedAt string   `json:"retrieved_at"`
	Warnings    []string `json:"warnings,omitempty"`
	Source      string   `json:"source,omitempty"`
}

// ErrorBody describes a failed operation.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Envelope is the uniform response wrapper. Exactly one of Data or Error is
// populated depending on OK.
type Envelope struct {
	OK    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error *ErrorBody  `json:"error,omitempty"`
	Meta  Meta        `json:"meta"`
}

func newMeta() Meta {
	return Meta{RetrievedAt: time.Now().UTC().Format(time.RFC3339)}
}

// Success wraps data in a success envelope.
func Success(data interface{}, warnings ...string) Envelope {
	meta := newMeta()
	meta.Warnings = warnings
	return Envelope{OK: true, Data: data, Meta: meta}
}

// SuccessWithSource wraps data in a success envelope annotated with the
// upstream data source.
func SuccessWithSource(data interface{}, source string, warnings ...string) Envelope {
	env := Success(data, warnings...)
	env.Meta.Source = source
	return env
}

// Failure wraps an error code and message in a failure envelope.
func Failure(code, message string, details interface{}) Envelope {
	return Envelope{
		OK:    false,
		Error: &ErrorBody{Code: code, Message: message, Details: details},
		Meta:  newMeta(),
	}
}

// HTTPStatus maps the envelope to the HTTP status the REST layer responds
// with. The envelope itself is transport-agnostic.
func (e Envelope) HTTPStatus() int {
	if e.OK {
		return fiber.StatusOK
	}
	switch e.Error.Code {
	case CodeInvalidInput:
		return fiber.StatusBadRequest
	case CodeParseError:
		return fiber.StatusUnprocessableEntity
	case CodeRateLimited:
		return fiber.StatusTooManyRequests
	case CodeTimeout:
		return fiber.StatusGatewayTimeout
	case CodeUpstreamError:
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}
