package wizard

import (
	"errors"
	"fmt"

	"suncrest/models"
)

// ErrSessionNotFound means the wizard session expired or never existed.
var ErrSessionNotFound = errors.New("wizard session not found or expired")

// ErrSessionConflict means another transition saved the session after
// this one loaded it; the late writer must discard its result.
var ErrSessionConflict = errors.New("wizard session was modified concurrently")

// ErrLoginRequired is signaled when an unauthenticated caller tries to
// select a room. The handler turns it into a redirect to the auth page.
var ErrLoginRequired = errors.New("please register or log in to book a room")

// ErrSubmitInFlight rejects a second submission while one is pending.
var ErrSubmitInFlight = errors.New("a submission is already in progress")

// ValidationError is a local, non-fatal input failure. The user stays on
// the current step; the network is never contacted.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}

// TransitionError rejects an illegal wizard position change.
type TransitionError struct {
	From   models.WizardStep
	To     models.WizardStep
	Reason string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move from %q to %q: %s", e.From, e.To, e.Reason)
}

// Submission error kinds.
const (
	KindAuthInvalid      = "authInvalid"
	KindSubmissionFailed = "submissionFailed"
)

// SubmissionError classifies a failed final submission. Redirect is set
// when the client should be sent back to authentication.
type SubmissionError struct {
	Kind     string
	Message  string
	Redirect bool
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// CatalogError is a retryable room catalog failure; the UI offers a
// reload action rather than aborting the wizard.
type CatalogError struct {
	Message string
}

func (e *CatalogError) Error() string {
	return e.Message
}
