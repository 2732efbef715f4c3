package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/contenttools/internal/domain/faq"
	"github.com/yanqian/contenttools/internal/infra/reports"
	apperrors "github.com/yanqian/contenttools/pkg/errors"
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

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

var codeStatus = map[string]int{
	faq.CodeInvalidInput:    http.StatusBadRequest,
	faq.CodeNotFound:        http.StatusNotFound,
	faq.CodeConfiguration:   http.StatusServiceUnavailable,
	faq.CodeAPI:             http.StatusBadGateway,
	faq.CodeInvalidResponse: http.StatusBadGateway,
	faq.CodeNoFAQFound:      http.StatusUnprocessableEntity,
	faq.CodeValidation:      http.StatusUnprocessableEntity,
	faq.CodeStore:           http.StatusInternalServerError,
}

// fromDomainError maps a service error to its HTTP status by AppError code.
func fromDomainError(err error) *HTTPError {
	if errors.Is(err, reports.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "report_not_found", "report not found", err)
	}
	code := apperrors.CodeOf(err, "")
	status, ok := codeStatus[code]
	if !ok {
		return asHTTPError(err)
	}
	return NewHTTPError(status, code, apperrors.MessageOf(err), err)
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
