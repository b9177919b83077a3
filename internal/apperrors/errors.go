// Package apperrors defines the business error taxonomy shared by all
// services. Callers match failures with errors.Is against the sentinels and
// transports map kinds to status codes with KindOf.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a business failure.
type Kind string

const (
	KindAuthentication Kind = "authentication"
	KindValidation     Kind = "validation"
	KindConflict       Kind = "conflict"
	KindNotFound       Kind = "not_found"
	KindStorage        Kind = "storage"
)

// Error carries a kind plus a human-readable message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// New builds an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

var (
	// ErrInvalidSession is returned when a session token resolves to no active session.
	ErrInvalidSession = New(KindAuthentication, "invalid session token")
	// ErrInvalidCredentials is returned on login with a bad username/password pair.
	ErrInvalidCredentials = New(KindAuthentication, "invalid username or password")

	// ErrInvalidMatchData is returned when a match candidate is structurally invalid.
	ErrInvalidMatchData = New(KindValidation, "invalid match data")

	// ErrUnknownSport is returned when a sport name resolves to no sport.
	ErrUnknownSport = New(KindNotFound, "sport does not exist")
	// ErrUnknownTeam is returned when a team does not exist under the given sport.
	ErrUnknownTeam = New(KindNotFound, "team does not exist")
	// ErrUnknownMatch is returned when a match id resolves to no match.
	ErrUnknownMatch = New(KindNotFound, "match does not exist")
	// ErrUnknownUser is returned when a username resolves to no user.
	ErrUnknownUser = New(KindNotFound, "user does not exist")

	// ErrScheduleConflict signals a pre-existing booking for one of the teams
	// at the same date-time.
	ErrScheduleConflict = New(KindConflict, "a match already exists for that team and date")
	// ErrAlreadyFollowing signals a duplicate favorite pair.
	ErrAlreadyFollowing = New(KindConflict, "user already follows this team")
	// ErrNotFollowing is returned on unfollow when no favorite pair exists.
	ErrNotFollowing = New(KindNotFound, "user does not follow this team")
	// ErrDuplicateName signals a natural-key clash (sport name, team name
	// within a sport, username).
	ErrDuplicateName = New(KindConflict, "name already taken")
)

// Validation builds a validation error with a formatted message.
func Validation(format string, args ...any) *Error {
	return New(KindValidation, fmt.Sprintf(format, args...))
}

// KindOf extracts the kind of err. Errors without a business classification
// (driver faults, timeouts) report KindStorage.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}
