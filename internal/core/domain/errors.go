package domain

import "errors"

var (
	ErrSnapshotUnavailable = errors.New("snapshot unavailable")
	ErrUnenrolledPlayer    = errors.New("player is not enrolled")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidDisplayName  = errors.New("display name is required")
)

// IsUserError reports whether err should be shown to the player instead of
// being treated as an internal failure.
func IsUserError(err error) bool {
	return errors.Is(err, ErrSnapshotUnavailable) ||
		errors.Is(err, ErrUnenrolledPlayer) ||
		errors.Is(err, ErrPlayerNotFound) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidDisplayName)
}
