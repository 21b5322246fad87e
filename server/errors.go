package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ByLCY/vitae/export"
	"github.com/ByLCY/vitae/resume"
)

// APIError 是所有错误响应的 JSON 结构。
type APIError struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

var (
	ErrBadRequest = func(detail string) *APIError { return NewAPIError(http.StatusBadRequest, "Bad Request", detail) }
	ErrPayloadTooLarge = func(detail string) *APIError {
		return NewAPIError(http.StatusRequestEntityTooLarge, "Payload Too Large", detail)
	}
	ErrUnprocessable = func(detail string) *APIError {
		return NewAPIError(http.StatusUnprocessableEntity, "Unprocessable Entity", detail)
	}
	ErrInternalServer = func(detail string) *APIError {
		return NewAPIError(http.StatusInternalServerError, "Internal Server Error", detail)
	}
	ErrServiceUnavailable = func(detail string) *APIError {
		return NewAPIError(http.StatusServiceUnavailable, "Service Unavailable", detail)
	}
)

func NewAPIError(code int, message, detail string) *APIError {
	return &APIError{Code: code, Message: message, Detail: detail}
}

func (e *APIError) WithRequestID(requestID string) *APIError {
	e.RequestID = requestID
	return e
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// toAPIError 把领域错误映射为 HTTP 错误。
func toAPIError(err error) *APIError {
	var apiErr *APIError
	var validation *resume.ValidationError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.As(err, &tooLarge):
		return ErrPayloadTooLarge(fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
	case errors.Is(err, resume.ErrInvalidJSON), errors.Is(err, resume.ErrNotObject):
		return ErrBadRequest(err.Error())
	case errors.As(err, &validation):
		return ErrUnprocessable(validation.Error())
	case errors.Is(err, export.ErrPrinterDisabled):
		return ErrServiceUnavailable(err.Error())
	default:
		return ErrInternalServer(err.Error())
	}
}
