package reviews

import "errors"

var (
	// ErrDuplicateReview means a review by this author for this place
	// already exists. Raised by the storage layer's unique index, never by
	// an application-level pre-check.
	ErrDuplicateReview = errors.New("review already exists for this place and user")

	// ErrNotFound covers both a missing place and a review that does not
	// belong to the given place.
	ErrNotFound = errors.New("not found")
)

// ValidationError reports malformed review input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }
