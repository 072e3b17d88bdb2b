package wizard

import (
	"context"
	"errors"
	"testing"

	"suncrest/gateway"
	"suncrest/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitBillingConfirmsAndResets(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	sessionID := env.advanceToPayment(ctx)

	confirmation, err := env.svc.SubmitBilling(ctx, sessionID, validBilling())
	require.NoError(t, err)

	assert.Equal(t, "bk-1", confirmation.BookingID)
	assert.Equal(t, "Deluxe Suite", confirmation.CategoryName)
	assert.Equal(t, "101", confirmation.RoomNumber)
	assert.Equal(t, 30000.0, confirmation.TotalPrice)
	assert.Equal(t, "Your booking for Deluxe Suite has been confirmed!", confirmation.Message)

	require.Len(t, env.bookings.created, 1)
	payload := env.bookings.created[0]
	assert.Equal(t, "room-1", payload.Room)
	assert.Equal(t, "cat-1", payload.Category)
	assert.Equal(t, 30000.0, payload.TotalPrice)
	assert.Equal(t, validStay().CheckInDate, payload.CheckInDate)

	// Success discards the whole session.
	_, err = env.svc.Snapshot(ctx, sessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSubmitBillingValidatesRequiredFields(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	sessionID := env.advanceToPayment(ctx)

	billing := validBilling()
	billing.CardNumber = ""
	_, err := env.svc.SubmitBilling(ctx, sessionID, billing)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Card number is required", validationErr.Reason)

	stored, err := env.sessions.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepPayment, stored.Step)
	assert.Equal(t, "Card number is required", stored.Error)
	assert.Empty(t, env.bookings.created)
}

func TestSubmitBillingRequiresPaymentStep(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	session, err := env.svc.StartSession(ctx, "user-1")
	require.NoError(t, err)

	_, err = env.svc.SubmitBilling(ctx, session.SessionID, validBilling())

	var transitionErr *TransitionError
	assert.ErrorAs(t, err, &transitionErr)
}

func TestSubmitBillingRejectsSecondSubmitInFlight(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	sessionID := env.advanceToPayment(ctx)

	stored, err := env.sessions.Get(ctx, sessionID)
	require.NoError(t, err)
	stored.Submitting = true
	require.NoError(t, env.sessions.Save(ctx, stored))

	_, err = env.svc.SubmitBilling(ctx, sessionID, validBilling())
	assert.ErrorIs(t, err, ErrSubmitInFlight)
	assert.Empty(t, env.bookings.created)
}

func TestSubmitBillingWithoutStoredCredential(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	sessionID := env.advanceToPayment(ctx)
	delete(env.credentials.tokens, "user-1")

	_, err := env.svc.SubmitBilling(ctx, sessionID, validBilling())

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, KindAuthInvalid, subErr.Kind)
	assert.Equal(t, "No authentication token found", subErr.Message)
	assert.True(t, subErr.Redirect)
}

func TestSubmitBillingExpiredCredentialClearsToken(t *testing.T) {
	env := newTestEnv()
	env.bookings.verifyErr = &gateway.APIError{StatusCode: 401, Message: "unauthorized"}
	ctx := context.Background()
	sessionID := env.advanceToPayment(ctx)

	_, err := env.svc.SubmitBilling(ctx, sessionID, validBilling())

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, KindAuthInvalid, subErr.Kind)
	assert.Equal(t, msgSessionExpired, subErr.Message)
	assert.True(t, subErr.Redirect)
	assert.Contains(t, env.credentials.cleared, "user-1")
	assert.Empty(t, env.bookings.created)

	// The draft survives so the user can retry after logging back in.
	stored, err := env.sessions.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.False(t, stored.Submitting)
	assert.Equal(t, msgSessionExpired, stored.Error)
	assert.Equal(t, models.StepPayment, stored.Step)
	require.NotNil(t, stored.Draft.Room)
	assert.Equal(t, "room-1", stored.Draft.Room.ID)
}

func TestSubmitBillingProbeFailureKeepsToken(t *testing.T) {
	env := newTestEnv()
	env.bookings.verifyErr = errors.New("connection reset")
	ctx := context.Background()
	sessionID := env.advanceToPayment(ctx)

	_, err := env.svc.SubmitBilling(ctx, sessionID, validBilling())

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, KindAuthInvalid, subErr.Kind)
	assert.Equal(t, msgTokenInvalid, subErr.Message)
	assert.False(t, subErr.Redirect)
	assert.Empty(t, env.credentials.cleared)
}

func TestSubmitBillingSurfacesServiceMessage(t *testing.T) {
	env := newTestEnv()
	env.bookings.createErr = errUpstream
	ctx := context.Background()
	sessionID := env.advanceToPayment(ctx)

	_, err := env.svc.SubmitBilling(ctx, sessionID, validBilling())

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, KindSubmissionFailed, subErr.Kind)
	assert.Equal(t, "upstream down", subErr.Message)

	stored, err := env.sessions.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.False(t, stored.Submitting)
	assert.Equal(t, "upstream down", stored.Error)
}

func TestSubmitBillingGenericFailureMessage(t *testing.T) {
	env := newTestEnv()
	env.bookings.createErr = errors.New("dial tcp: i/o timeout")
	ctx := context.Background()
	sessionID := env.advanceToPayment(ctx)

	_, err := env.svc.SubmitBilling(ctx, sessionID, validBilling())

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, KindSubmissionFailed, subErr.Kind)
	assert.Equal(t, msgGenericFailure, subErr.Message)
}

func TestSubmitBillingReleasesGuardWhenSessionMovesOn(t *testing.T) {
	env := newTestEnv()
	env.bookings.verifyErr = errors.New("connection reset")
	ctx := context.Background()
	sessionID := env.advanceToPayment(ctx)

	// The user steps back while the credential probe is in flight.
	env.bookings.onVerify = func() {
		_, err := env.svc.Back(ctx, sessionID)
		require.NoError(t, err)
	}

	_, err := env.svc.SubmitBilling(ctx, sessionID, validBilling())
	require.Error(t, err)

	// The outcome is stale, but the guard must not stay locked.
	stored, err := env.sessions.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.False(t, stored.Submitting)
	assert.Equal(t, models.StepPersonalInfo, stored.Step)

	// A later submission attempt is not turned away as in-flight.
	_, err = env.svc.SubmitBilling(ctx, sessionID, validBilling())
	assert.NotErrorIs(t, err, ErrSubmitInFlight)
}

func TestSubmitBillingCreate401ClearsToken(t *testing.T) {
	env := newTestEnv()
	env.bookings.createErr = &gateway.APIError{StatusCode: 401, Message: "token revoked"}
	ctx := context.Background()
	sessionID := env.advanceToPayment(ctx)

	_, err := env.svc.SubmitBilling(ctx, sessionID, validBilling())

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, KindAuthInvalid, subErr.Kind)
	assert.True(t, subErr.Redirect)
	assert.Contains(t, env.credentials.cleared, "user-1")
}
