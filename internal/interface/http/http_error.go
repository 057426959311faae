package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/skyfetch/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	status, code := classify(err, "internal_error")
	return &HTTPError{Status: status, Code: code, Message: publicMessage(err), Err: err}
}

func publicMessage(err error) string {
	if msg := apperrors.PublicMessage(err); msg != "" {
		return msg
	}
	return "something went wrong"
}

// classify maps domain error codes onto HTTP statuses.
func classify(err error, fallbackCode string) (int, string) {
	switch {
	case apperrors.IsCode(err, "invalid_input"):
		return http.StatusBadRequest, "invalid_request"
	case apperrors.IsCode(err, "not_found"):
		return http.StatusNotFound, "not_found"
	case apperrors.IsCode(err, "weather_unavailable"):
		return http.StatusBadGateway, "weather_unavailable"
	default:
		return http.StatusInternalServerError, fallbackCode
	}
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
