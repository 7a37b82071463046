// progression/errors.go - Engine error taxonomy
package progression

import "errors"

// Validation failures surfaced to the presentation layer. None of these
// are retried automatically; they indicate a usage error, not a
// transient fault.
var (
	ErrNotStarted         = errors.New("no in-progress attempt for this challenge")
	ErrAlreadyCompleted   = errors.New("challenge already completed and retries are disabled")
	ErrInvalidScore       = errors.New("score must be between 0 and 100")
	ErrUnknownChallenge   = errors.New("challenge not in catalog")
	ErrPrerequisiteNotMet = errors.New("challenge prerequisites not completed")
)
