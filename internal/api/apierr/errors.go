package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jcallaghan/betpool/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeNotOperator         = "NOT_OPERATOR"
	CodeMemberNotFound      = "MEMBER_NOT_FOUND"
	CodeLineNotFound        = "LINE_NOT_FOUND"
	CodeInvalidOptions      = "INVALID_OPTIONS"
	CodeLineNotOpen         = "LINE_NOT_OPEN"
	CodeAlreadyResolved     = "ALREADY_RESOLVED"
	CodeUnknownOption       = "UNKNOWN_OPTION"
	CodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	CodeDuplicateStake      = "DUPLICATE_STAKE"
	CodeRateLimited         = "RATE_LIMITED"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrMemberNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMemberNotFound, "Member not found"}}
	case errors.Is(err, model.ErrLineNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeLineNotFound, "Line not found"}}
	case errors.Is(err, model.ErrInvalidOptions):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidOptions, "A line needs at least two distinct non-empty options"}}
	case errors.Is(err, model.ErrNotOpen):
		return &httpError{http.StatusConflict, APIError{CodeLineNotOpen, "Line is not open"}}
	case errors.Is(err, model.ErrAlreadyResolved):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyResolved, "Line is already resolved"}}
	case errors.Is(err, model.ErrUnknownOption):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownOption, "Option is not on this line"}}
	case errors.Is(err, model.ErrInsufficientBalance):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientBalance, "Not enough balance to stake"}}
	case errors.Is(err, model.ErrDuplicateStake):
		return &httpError{http.StatusConflict, APIError{CodeDuplicateStake, "Stake already placed on this option"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Member identity required"}}
}

// NewNotOperatorError creates a forbidden error for non-operators
func NewNotOperatorError() error {
	return &httpError{http.StatusForbidden, APIError{CodeNotOperator, "Only an operator can perform this action"}}
}

// NewRateLimitedError creates a 429 error
func NewRateLimitedError() error {
	return &httpError{http.StatusTooManyRequests, APIError{CodeRateLimited, "Too many signal events"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
