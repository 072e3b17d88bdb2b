package wizard

import (
	"context"
	"strings"

	"suncrest/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// setStep is the only place wizard position changes. Forward moves go
// through completeStep, backward moves through jumpTo; nothing else may
// assign Step.
func setStep(session *models.WizardSession, target models.WizardStep) {
	session.Step = target
	session.Error = ""
}

// completeStep advances exactly one step after its gate has passed.
func completeStep(session *models.WizardSession, target models.WizardStep) error {
	if !target.Valid() || target != session.Step+1 {
		return &TransitionError{From: session.Step, To: target, Reason: "steps complete one at a time"}
	}
	setStep(session, target)
	return nil
}

// jumpTo moves to an already-reached step. Jumping past the furthest
// completed step is rejected; jumping to the current step is a no-op.
func jumpTo(session *models.WizardSession, target models.WizardStep) error {
	if !target.Valid() {
		return &TransitionError{From: session.Step, To: target, Reason: "no such step"}
	}
	if target > session.Step {
		return &TransitionError{From: session.Step, To: target, Reason: "cannot skip ahead of the current step"}
	}
	if target == session.Step {
		return nil
	}
	setStep(session, target)
	return nil
}

// StartSession creates a fresh wizard session at the room selection step.
func (s *DefaultWizardService) StartSession(ctx context.Context, userID string) (*models.WizardSession, error) {
	session := &models.WizardSession{
		SessionID: uuid.New().String(),
		UserID:    userID,
		Step:      models.StepRoomSelection,
		CreatedAt: s.now(),
	}
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SelectRoom handles the first transition. An unauthenticated caller is
// turned away with ErrLoginRequired and the session is left untouched.
func (s *DefaultWizardService) SelectRoom(ctx context.Context, sessionID, userID, roomID string) (*models.WizardSnapshot, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if userID == "" {
		s.Logger.Info("room selection blocked for unauthenticated caller",
			zap.String("sessionID", sessionID))
		return nil, ErrLoginRequired
	}

	version := session.Version
	rooms, err := s.Catalog.ListRooms(ctx)
	if err != nil {
		s.Logger.Error("failed to resolve room for selection", zap.Error(err))
		return nil, &CatalogError{Message: "Failed to load rooms. Please try again later."}
	}

	var selected *models.Room
	for i := range rooms {
		if rooms[i].ID == roomID {
			selected = &rooms[i]
			break
		}
	}
	if selected == nil || selected.Status != models.RoomStatusAvailable {
		return nil, NewValidationError("Selected room is no longer available")
	}

	session, err = s.reloadAt(ctx, sessionID, version)
	if err != nil {
		return nil, err
	}

	session.UserID = userID
	session.Draft.Room = selected
	if err := completeStep(session, models.StepAvailability); err != nil {
		return nil, err
	}
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	snap := session.Snapshot()
	return &snap, nil
}

// SubmitStay validates dates and occupancy through the availability gate
// and advances to personal info on success. Gate failures keep the user
// on the step with the reason recorded as the transient error.
func (s *DefaultWizardService) SubmitStay(ctx context.Context, sessionID string, stay models.StayDetails) (*models.WizardSnapshot, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepAvailability {
		return nil, &TransitionError{From: session.Step, To: models.StepPersonalInfo, Reason: "stay details are submitted from the availability step"}
	}
	if session.Draft.Room == nil {
		return nil, &TransitionError{From: session.Step, To: models.StepPersonalInfo, Reason: "no room selected"}
	}

	token := s.credentialFor(ctx, session.UserID)
	version := session.Version
	result := s.Gate.Check(ctx, token, session.Draft.Room, stay)

	// The gate may have suspended on the network; discard the outcome if
	// the session moved on while we waited.
	session, err = s.reloadAt(ctx, sessionID, version)
	if err != nil {
		return nil, err
	}

	session.Draft.Stay = stay
	if !result.OK {
		session.Error = result.Reason
		if err := s.Sessions.Save(ctx, session); err != nil {
			return nil, err
		}
		return nil, NewValidationError(result.Reason)
	}

	session.Draft.TotalPrice = TotalPrice(session.Draft.Room, stay)
	if err := completeStep(session, models.StepPersonalInfo); err != nil {
		return nil, err
	}
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	snap := session.Snapshot()
	return &snap, nil
}

// SubmitGuestDetails enforces the required-field semantics of the guest
// form and advances to payment.
func (s *DefaultWizardService) SubmitGuestDetails(ctx context.Context, sessionID string, guest models.GuestProfile) (*models.WizardSnapshot, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepPersonalInfo {
		return nil, &TransitionError{From: session.Step, To: models.StepPayment, Reason: "guest details are submitted from the personal info step"}
	}

	if reason := validateGuest(guest); reason != "" {
		session.Error = reason
		session.Draft.Guest = guest
		if err := s.Sessions.Save(ctx, session); err != nil {
			return nil, err
		}
		return nil, NewValidationError(reason)
	}

	session.Draft.Guest = guest
	if err := completeStep(session, models.StepPayment); err != nil {
		return nil, err
	}
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	snap := session.Snapshot()
	return &snap, nil
}

// Back moves one step toward room selection. Always allowed above step 1.
func (s *DefaultWizardService) Back(ctx context.Context, sessionID string) (*models.WizardSnapshot, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step <= models.StepRoomSelection {
		return nil, &TransitionError{From: session.Step, To: session.Step, Reason: "already at the first step"}
	}
	if err := jumpTo(session, session.Step-1); err != nil {
		return nil, err
	}
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	snap := session.Snapshot()
	return &snap, nil
}

// JumpTo moves directly to a previously reached step via the step
// indicator. Idempotent for the current step.
func (s *DefaultWizardService) JumpTo(ctx context.Context, sessionID string, target models.WizardStep) (*models.WizardSnapshot, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := jumpTo(session, target); err != nil {
		return nil, err
	}
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	snap := session.Snapshot()
	return &snap, nil
}

// Quote returns the price breakdown for the current draft.
func (s *DefaultWizardService) Quote(ctx context.Context, sessionID string) (*models.PriceQuote, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	quote := Quote(session.Draft.Room, session.Draft.Stay)
	return &quote, nil
}

// Snapshot returns the current session view.
func (s *DefaultWizardService) Snapshot(ctx context.Context, sessionID string) (*models.WizardSnapshot, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	snap := session.Snapshot()
	return &snap, nil
}

// Cancel discards the session and everything in its draft.
func (s *DefaultWizardService) Cancel(ctx context.Context, sessionID string) error {
	return s.Sessions.Delete(ctx, sessionID)
}

// reloadAt re-fetches the session after a remote call and rejects the
// result when the session was saved in the meantime.
func (s *DefaultWizardService) reloadAt(ctx context.Context, sessionID string, version int64) (*models.WizardSession, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Version != version {
		return nil, ErrSessionConflict
	}
	return session, nil
}

// credentialFor fetches the stored credential, tolerating absence; the
// availability check works unauthenticated as well.
func (s *DefaultWizardService) credentialFor(ctx context.Context, userID string) string {
	if userID == "" {
		return ""
	}
	token, err := s.Credentials.Get(ctx, userID)
	if err != nil {
		return ""
	}
	return token
}

func validateGuest(guest models.GuestProfile) string {
	required := []struct {
		label string
		value string
	}{
		{"First name", guest.FirstName},
		{"Last name", guest.LastName},
		{"Email address", guest.Email},
		{"Phone number", guest.Phone},
		{"Address line 1", guest.Address1},
		{"City", guest.City},
		{"State/Province", guest.State},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return field.label + " is required"
		}
	}
	return ""
}
