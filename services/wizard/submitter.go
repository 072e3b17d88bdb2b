package wizard

import (
	"context"
	"errors"
	"strings"

	"suncrest/gateway"
	"suncrest/models"

	"go.uber.org/zap"
)

const (
	msgSessionExpired = "Your session has expired. Please log in again."
	msgTokenInvalid   = "Authentication token is invalid"
	msgGenericFailure = "Something went wrong. Please try again."
)

// SubmitBilling finalizes the wizard. It probes the credential, computes
// the total, assembles the payload and sends the create-booking request.
// Success discards the whole session; failure keeps the draft so the
// user can retry, except for an invalid credential which also clears the
// stored token and points the client back to authentication.
func (s *DefaultWizardService) SubmitBilling(ctx context.Context, sessionID string, billing models.BillingDetails) (*models.BookingConfirmation, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Submitting {
		return nil, ErrSubmitInFlight
	}
	if session.Step != models.StepPayment {
		return nil, &TransitionError{From: session.Step, To: models.StepPayment, Reason: "billing is submitted from the payment step"}
	}

	if reason := validateBilling(billing); reason != "" {
		session.Error = reason
		session.Draft.Billing = billing
		if err := s.Sessions.Save(ctx, session); err != nil {
			return nil, err
		}
		return nil, NewValidationError(reason)
	}

	draft := &session.Draft
	if draft.Room == nil || draft.Room.ID == "" || draft.Room.Category.ID == "" {
		return nil, NewValidationError("No room selected for this booking")
	}

	if session.UserID == "" {
		return nil, &SubmissionError{Kind: KindAuthInvalid, Message: "User not authenticated", Redirect: true}
	}
	token, err := s.Credentials.Get(ctx, session.UserID)
	if err != nil {
		return nil, &SubmissionError{Kind: KindAuthInvalid, Message: "No authentication token found", Redirect: true}
	}

	session.Submitting = true
	session.Draft.Billing = billing
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	version := session.Version

	// Liveness probe first: a doomed write request is never sent.
	if err := s.Bookings.VerifyCredential(ctx, token); err != nil {
		subErr := s.classifyAuthFailure(ctx, session.UserID, err)
		s.recordFailure(ctx, sessionID, version, subErr.Message)
		return nil, subErr
	}

	totalPrice := TotalPrice(draft.Room, draft.Stay)
	payload := models.BookingPayload{
		Room:             draft.Room.ID,
		Category:         draft.Room.Category.ID,
		CheckInDate:      draft.Stay.CheckInDate,
		CheckOutDate:     draft.Stay.CheckOutDate,
		NumberOfAdults:   draft.Stay.NumberOfAdults,
		NumberOfChildren: draft.Stay.NumberOfChildren,
		TotalPrice:       totalPrice,
		Billing:          billing,
	}

	confirmation, err := s.Bookings.CreateBooking(ctx, token, payload)
	if err != nil {
		subErr := s.classifySubmitFailure(ctx, session.UserID, err)
		s.recordFailure(ctx, sessionID, version, subErr.Message)
		return nil, subErr
	}

	if confirmation == nil {
		confirmation = &models.BookingConfirmation{}
	}
	if confirmation.CategoryName == "" {
		confirmation.CategoryName = draft.Room.Category.Name
	}
	if confirmation.RoomNumber == "" {
		confirmation.RoomNumber = draft.Room.RoomNumber
	}
	confirmation.TotalPrice = totalPrice
	confirmation.Message = "Your booking for " + confirmation.CategoryName + " has been confirmed!"

	// Full reset: the draft exists only until the submit succeeds.
	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		s.Logger.Warn("failed to discard wizard session after booking",
			zap.String("sessionID", sessionID), zap.Error(err))
	}
	s.Logger.Info("booking confirmed",
		zap.String("sessionID", sessionID),
		zap.String("category", confirmation.CategoryName),
		zap.Float64("totalPrice", totalPrice))

	return confirmation, nil
}

// classifyAuthFailure maps a failed credential probe. A 401 response
// additionally clears the stored credential.
func (s *DefaultWizardService) classifyAuthFailure(ctx context.Context, userID string, err error) *SubmissionError {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == 401 {
		s.clearCredential(ctx, userID)
		return &SubmissionError{Kind: KindAuthInvalid, Message: msgSessionExpired, Redirect: true}
	}
	return &SubmissionError{Kind: KindAuthInvalid, Message: msgTokenInvalid}
}

// classifySubmitFailure maps a failed create-booking call. 401 clears
// the credential regardless of payload content; anything else surfaces
// the service message when present.
func (s *DefaultWizardService) classifySubmitFailure(ctx context.Context, userID string, err error) *SubmissionError {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == 401 {
			s.clearCredential(ctx, userID)
			return &SubmissionError{Kind: KindAuthInvalid, Message: msgSessionExpired, Redirect: true}
		}
		if apiErr.Message != "" {
			return &SubmissionError{Kind: KindSubmissionFailed, Message: apiErr.Message}
		}
	}
	return &SubmissionError{Kind: KindSubmissionFailed, Message: msgGenericFailure}
}

func (s *DefaultWizardService) clearCredential(ctx context.Context, userID string) {
	if err := s.Credentials.Clear(ctx, userID); err != nil {
		s.Logger.Warn("failed to clear stored credential", zap.String("userID", userID), zap.Error(err))
	}
}

// recordFailure drops the submitting flag and records the error text.
// When the session moved on while the request was in flight the failure
// text is stale and discarded, but the flag is still released; leaving
// it set would reject every later submission until the session expires.
func (s *DefaultWizardService) recordFailure(ctx context.Context, sessionID string, version int64, message string) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return
	}
	if session.Version != version {
		s.Logger.Debug("discarding stale submission outcome", zap.String("sessionID", sessionID))
		if !session.Submitting {
			return
		}
		session.Submitting = false
		if err := s.Sessions.Save(ctx, session); err != nil {
			s.Logger.Warn("failed to release submission guard", zap.String("sessionID", sessionID), zap.Error(err))
		}
		return
	}
	session.Submitting = false
	session.Error = message
	if err := s.Sessions.Save(ctx, session); err != nil {
		s.Logger.Warn("failed to record submission failure", zap.String("sessionID", sessionID), zap.Error(err))
	}
}

func validateBilling(billing models.BillingDetails) string {
	required := []struct {
		label string
		value string
	}{
		{"Full name on card", billing.FullName},
		{"Billing email", billing.Email},
		{"Card number", billing.CardNumber},
		{"Billing address", billing.Address},
		{"City", billing.City},
		{"State", billing.State},
		{"ZIP code", billing.Zip},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return field.label + " is required"
		}
	}
	return ""
}
