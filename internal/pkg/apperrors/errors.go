package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Team workflow errors
var (
	ErrTeamNotFound        = errors.New("team not found")
	ErrAlreadyMember       = errors.New("user is already a member of this team")
	ErrNotAMember          = errors.New("user is not a member of this team")
	ErrDuplicateRequest    = errors.New("a pending join request already exists")
	ErrDuplicateInvitation = errors.New("an invitation already exists for this user")
	ErrAlreadyProcessed    = errors.New("join request has already been processed")
	ErrInvalidState        = errors.New("invitation is no longer pending")
	ErrTeamFull            = errors.New("team is full")
	ErrInvitationExpired   = errors.New("invitation has expired")
	ErrInvitationNotFound  = errors.New("invitation not found")
	ErrJoinRequestNotFound = errors.New("join request not found")
)

// Event errors
var (
	ErrEventNotFound      = errors.New("event not found")
	ErrAlreadyRegistered  = errors.New("user is already registered for this event")
	ErrNotRegistered      = errors.New("user is not registered for this event")
	ErrRegistrationClosed = errors.New("event registration deadline has passed")
)

// Skill errors
var (
	ErrSkillNotFound = errors.New("skill not found")
	ErrSkillExists   = errors.New("skill with this name already exists")
)

// Messaging errors
var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError wrapping a sentinel error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewResourceNotFoundError creates a resource-not-found error with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewForbiddenError creates a permission-denied error with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewBadRequestError creates a bad-request error with a message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}
