package apierror

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is what services hand back to routes instead of a raw error.
// Routes write it with its own status code.
type ErrorResponse interface {
	Code() int
	Error() string
}

type SimpleError struct {
	Status  int               `json:"-"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *SimpleError) Code() int {
	return e.Status
}

func (e *SimpleError) Error() string {
	return e.Message
}

func NewSimple(status int, message string) *SimpleError {
	return &SimpleError{Status: status, Message: message}
}

var (
	InternalServerError   = NewSimple(http.StatusInternalServerError, "Internal server error")
	FeedNotFoundError     = NewSimple(http.StatusNotFound, "Feed not found")
	MalformedBodyError    = NewSimple(http.StatusBadRequest, "Malformed request body")
	InvalidAuthTokenError = NewSimple(http.StatusUnauthorized, "Invalid or missing auth token")
	UserNotFoundError     = NewSimple(http.StatusNotFound, "User not found")
)

// FromValidationError maps validator failures to a 400 listing the
// offending fields and the rule each one broke.
func FromValidationError(err error) *SimpleError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return MalformedBodyError
	}

	fields := make(map[string]string, len(verrs))
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		fields[name] = fe.Tag()
		names = append(names, name)
	}

	return &SimpleError{
		Status:  http.StatusBadRequest,
		Message: "Invalid fields: " + strings.Join(names, ", "),
		Fields:  fields,
	}
}
