package wizard

import (
	"context"
	"time"

	"suncrest/models"

	"go.uber.org/zap"
)

// CatalogAPI is the room catalog collaborator.
type CatalogAPI interface {
	ListRooms(ctx context.Context) ([]models.Room, error)
}

// BookingAPI is the booking persistence collaborator.
type BookingAPI interface {
	CheckAvailability(ctx context.Context, token, roomID, checkIn, checkOut string) (bool, error)
	VerifyCredential(ctx context.Context, token string) error
	CreateBooking(ctx context.Context, token string, payload models.BookingPayload) (*models.BookingConfirmation, error)
}

// CredentialStore holds each user's bearer credential. The wizard only
// reads it, except for the submitter's 401 path which clears it.
type CredentialStore interface {
	Get(ctx context.Context, userID string) (string, error)
	Set(ctx context.Context, userID, token string) error
	Clear(ctx context.Context, userID string) error
}

// SessionStore persists wizard sessions between requests. Save must
// reject writers holding a stale session version.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.WizardSession, error)
	Save(ctx context.Context, session *models.WizardSession) error
	Delete(ctx context.Context, sessionID string) error
}

// WizardService drives the multi-step booking wizard.
type WizardService interface {
	LoadRooms(ctx context.Context) ([]models.RoomView, error)
	StartSession(ctx context.Context, userID string) (*models.WizardSession, error)
	SelectRoom(ctx context.Context, sessionID, userID string, roomID string) (*models.WizardSnapshot, error)
	SubmitStay(ctx context.Context, sessionID string, stay models.StayDetails) (*models.WizardSnapshot, error)
	SubmitGuestDetails(ctx context.Context, sessionID string, guest models.GuestProfile) (*models.WizardSnapshot, error)
	SubmitBilling(ctx context.Context, sessionID string, billing models.BillingDetails) (*models.BookingConfirmation, error)
	Back(ctx context.Context, sessionID string) (*models.WizardSnapshot, error)
	JumpTo(ctx context.Context, sessionID string, target models.WizardStep) (*models.WizardSnapshot, error)
	Quote(ctx context.Context, sessionID string) (*models.PriceQuote, error)
	Snapshot(ctx context.Context, sessionID string) (*models.WizardSnapshot, error)
	Cancel(ctx context.Context, sessionID string) error
}

// DefaultWizardService implements WizardService.
type DefaultWizardService struct {
	Sessions    SessionStore
	Credentials CredentialStore
	Catalog     CatalogAPI
	Bookings    BookingAPI
	Gate        *AvailabilityGate
	Logger      *zap.Logger

	// Now is the clock used for date validation; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultWizardService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
