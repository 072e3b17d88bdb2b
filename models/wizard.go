package models

import "time"

// WizardStep identifies a position in the booking wizard, ordered 1-4.
type WizardStep int

const (
	StepRoomSelection WizardStep = iota + 1
	StepAvailability
	StepPersonalInfo
	StepPayment
)

func (s WizardStep) String() string {
	switch s {
	case StepRoomSelection:
		return "Room Selection"
	case StepAvailability:
		return "Availability"
	case StepPersonalInfo:
		return "Personal Info"
	case StepPayment:
		return "Payment"
	}
	return "Unknown"
}

// Valid reports whether s is one of the four wizard steps.
func (s WizardStep) Valid() bool {
	return s >= StepRoomSelection && s <= StepPayment
}

// WizardSession holds the wizard state between requests. Version is
// bumped on every save so that results of remote calls issued against
// an older revision can be detected and discarded.
type WizardSession struct {
	SessionID  string       `json:"sessionId"`
	UserID     string       `json:"userId,omitempty"`
	Step       WizardStep   `json:"step"`
	Draft      BookingDraft `json:"draft"`
	Error      string       `json:"error,omitempty"`
	Submitting bool         `json:"submitting"`
	Version    int64        `json:"version"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// WizardSnapshot is the session view returned to the UI.
type WizardSnapshot struct {
	SessionID  string       `json:"sessionId"`
	Step       WizardStep   `json:"step"`
	StepTitle  string       `json:"stepTitle"`
	Draft      BookingDraft `json:"draft"`
	Error      string       `json:"error,omitempty"`
	Submitting bool         `json:"submitting"`
}

// Snapshot projects the session into its UI view.
func (s *WizardSession) Snapshot() WizardSnapshot {
	return WizardSnapshot{
		SessionID:  s.SessionID,
		Step:       s.Step,
		StepTitle:  s.Step.String(),
		Draft:      s.Draft,
		Error:      s.Error,
		Submitting: s.Submitting,
	}
}
