package service

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a service matches exactly one of
// these through errors.Is; handlers map them to status codes.
var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrDatabase     = errors.New("database error")
	ErrInternal     = errors.New("internal error")
)

// Error is a service error of a given kind with a user-facing message.
// Err, when set, is the underlying cause and is never shown to users.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func newError(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func validationError(format string, args ...interface{}) error {
	return newError(ErrValidation, fmt.Sprintf(format, args...))
}

// dbError wraps a persistence failure. The message stays generic.
func dbError(op string, err error) error {
	return &Error{Kind: ErrDatabase, Msg: "failed to " + op, Err: err}
}

// internalError wraps a failure outside the database: hashing, token
// signing, randomness or object storage.
func internalError(op string, err error) error {
	return &Error{Kind: ErrInternal, Msg: "failed to " + op, Err: err}
}

// --- Error Definitions ---
var (
	// Accounts
	ErrDuplicateEmail       = newError(ErrConflict, "an account with this email already exists")
	ErrUsernameUnavailable  = newError(ErrConflict, "could not derive a free username from this name")
	ErrCodeUnavailable      = newError(ErrConflict, "could not generate a unique profile code")
	ErrAuthenticationFailed = newError(ErrUnauthorized, "invalid email or password")
	ErrTokenGeneration      = newError(ErrInternal, "failed to generate authentication token")

	// Linking
	ErrRoleMismatch        = newError(ErrValidation, "role mismatch")
	ErrTargetNotClient     = newError(ErrRoleMismatch, "target user is not a client")
	ErrTargetNotCoach      = newError(ErrRoleMismatch, "target user is not a coach")
	ErrAlreadyLinked       = newError(ErrConflict, "client already has a coach")
	ErrCallerAlreadyLinked = newError(ErrAlreadyLinked, "you already have a coach")
	ErrIdentifierNotFound  = newError(ErrNotFound, "user not found with that identifier")

	// Ownership and access
	ErrForbiddenRole          = newError(ErrUnauthorized, "operation not permitted for this role")
	ErrClientNotLinked        = newError(ErrUnauthorized, "client is not linked to this coach")
	ErrNotWorkoutOwner        = newError(ErrUnauthorized, "workout belongs to another coach")
	ErrNotMealPlanOwner       = newError(ErrUnauthorized, "meal plan belongs to another coach")
	ErrNotAssignmentOwner     = newError(ErrUnauthorized, "assignment belongs to another client")
	ErrNotProgressOwner       = newError(ErrUnauthorized, "progress log belongs to another client")
	ErrNotConversationPartner = newError(ErrUnauthorized, "you can only message your coach or your clients")

	// Lookups
	ErrUserNotFound         = newError(ErrNotFound, "user not found")
	ErrProfileNotFound      = newError(ErrNotFound, "profile not found")
	ErrClientNotFound       = newError(ErrNotFound, "client not found")
	ErrWorkoutNotFound      = newError(ErrNotFound, "workout not found")
	ErrMealPlanNotFound     = newError(ErrNotFound, "meal plan not found")
	ErrAssignmentNotFound   = newError(ErrNotFound, "assignment not found")
	ErrProgressLogNotFound  = newError(ErrNotFound, "progress log not found")
	ErrMessageNotFound      = newError(ErrNotFound, "message not found")
	ErrProgressPhotoMissing = newError(ErrNotFound, "progress log has no photo")

	// Messaging
	ErrEmptyMessage = newError(ErrValidation, "message content cannot be empty")

	// Progress photos
	ErrPhotosDisabled     = newError(ErrValidation, "progress photos are not enabled")
	ErrInvalidPhotoKey    = newError(ErrValidation, "object key does not belong to this progress log")
	ErrMealToggleConflict = newError(ErrConflict, "meal completion changed concurrently, try again")
)
