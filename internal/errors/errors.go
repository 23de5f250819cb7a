package errors

import (
	"errors"
	"net/http"
)

// Error kinds. Every domain failure wraps exactly one of these.
var (
	// ErrUnauthenticated is returned when a request carries no valid identity.
	ErrUnauthenticated = errors.New("could not validate credentials")
	// ErrInvalidCredentials is returned when login email or password is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden is returned when the principal's role does not allow the operation.
	ErrForbidden = errors.New("insufficient privileges")
	// ErrNotFound is returned when an entity is absent or not visible to the principal.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a uniqueness rule would be violated.
	ErrConflict = errors.New("conflict")
	// ErrValidation is returned when input is well-formed but semantically invalid.
	ErrValidation = errors.New("validation failed")
)

// DomainError carries a client-safe message and a stable code on top of an error kind.
type DomainError struct {
	Kind    error
	Message string
	Code    string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap exposes the kind so callers can use errors.Is.
func (e *DomainError) Unwrap() error {
	return e.Kind
}

// New creates a DomainError of the given kind.
func New(kind error, message, code string) *DomainError {
	return &DomainError{Kind: kind, Message: message, Code: code}
}

var (
	ErrEmailTaken       = New(ErrConflict, "email already registered", "EMAIL_TAKEN")
	ErrUsernameTaken    = New(ErrConflict, "username already taken", "USERNAME_TAKEN")
	ErrProjectNameTaken = New(ErrConflict, "project name already taken", "PROJECT_NAME_TAKEN")
	ErrAlreadyMember    = New(ErrConflict, "user is already a member of this project", "ALREADY_MEMBER")
	ErrProjectNotFound  = New(ErrNotFound, "project not found", "PROJECT_NOT_FOUND")
	ErrTaskNotFound     = New(ErrNotFound, "task not found", "TASK_NOT_FOUND")
	ErrMemberNotFound   = New(ErrNotFound, "member not found", "MEMBER_NOT_FOUND")
	ErrUserNotFound     = New(ErrNotFound, "user not found", "USER_NOT_FOUND")
	ErrUnknownAssignee  = New(ErrValidation, "assignee does not exist", "UNKNOWN_ASSIGNEE")
	ErrUnknownUser      = New(ErrValidation, "user does not exist", "UNKNOWN_USER")
	ErrInvalidRole      = New(ErrValidation, "invalid role", "INVALID_ROLE")
	ErrInvalidStatus    = New(ErrValidation, "invalid task status", "INVALID_STATUS")
	ErrInvalidDueDate   = New(ErrValidation, "invalid due date", "INVALID_DUE_DATE")
	ErrBlankField       = New(ErrValidation, "required field must not be blank", "BLANK_FIELD")
	ErrRoleNotPermitted = New(ErrForbidden, "you don't have permission to perform this action", "FORBIDDEN")
	ErrNotAuthenticated = New(ErrUnauthenticated, "could not validate credentials", "UNAUTHENTICATED")
	ErrBadCredentials   = New(ErrInvalidCredentials, "invalid credentials", "INVALID_CREDENTIALS")
	ErrBadRefreshToken  = New(ErrUnauthenticated, "invalid or expired refresh token", "INVALID_REFRESH_TOKEN")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Errors that carry no
// domain kind become a generic 500 so storage details never reach clients.
func MapErrorToHTTP(err error) *HTTPError {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		return NewHTTPError(status, "internal server error", "INTERNAL_ERROR")
	}

	var de *DomainError
	if errors.As(err, &de) {
		return NewHTTPError(status, de.Message, de.Code)
	}
	return NewHTTPError(status, err.Error(), defaultCode(status))
}

func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func defaultCode(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "UNAUTHENTICATED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	default:
		return "BAD_REQUEST"
	}
}
