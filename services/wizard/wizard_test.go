package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"suncrest/gateway"
	"suncrest/models"

	"go.uber.org/zap"
)

// memSessionStore mimics the Redis store's versioned-save semantics.
type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string][]byte
	versions map[string]int64
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{
		sessions: make(map[string][]byte),
		versions: make(map[string]int64),
	}
}

func (s *memSessionStore) Get(_ context.Context, sessionID string) (*models.WizardSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	var session models.WizardSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *memSessionStore) Save(_ context.Context, session *models.WizardSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.versions[session.SessionID]; ok && current != session.Version {
		return ErrSessionConflict
	}
	session.Version++
	session.UpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	s.sessions[session.SessionID] = data
	s.versions[session.SessionID] = session.Version
	return nil
}

func (s *memSessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	delete(s.versions, sessionID)
	return nil
}

// memCredentialStore records clears so tests can assert on them.
type memCredentialStore struct {
	tokens  map[string]string
	cleared []string
}

func newMemCredentialStore() *memCredentialStore {
	return &memCredentialStore{tokens: make(map[string]string)}
}

func (s *memCredentialStore) Get(_ context.Context, userID string) (string, error) {
	token, ok := s.tokens[userID]
	if !ok {
		return "", errors.New("no stored credential")
	}
	return token, nil
}

func (s *memCredentialStore) Set(_ context.Context, userID, token string) error {
	s.tokens[userID] = token
	return nil
}

func (s *memCredentialStore) Clear(_ context.Context, userID string) error {
	delete(s.tokens, userID)
	s.cleared = append(s.cleared, userID)
	return nil
}

type fakeCatalog struct {
	rooms []models.Room
	err   error
}

func (f *fakeCatalog) ListRooms(context.Context) ([]models.Room, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rooms, nil
}

type fakeBookings struct {
	available    bool
	availErr     error
	verifyErr    error
	createErr    error
	confirmation *models.BookingConfirmation
	created      []models.BookingPayload

	// onCheck and onVerify run before the canned response, letting a
	// test race the session while a remote call is in flight.
	onCheck  func()
	onVerify func()
}

func (f *fakeBookings) CheckAvailability(context.Context, string, string, string, string) (bool, error) {
	if f.onCheck != nil {
		f.onCheck()
	}
	if f.availErr != nil {
		return false, f.availErr
	}
	return f.available, nil
}

func (f *fakeBookings) VerifyCredential(context.Context, string) error {
	if f.onVerify != nil {
		f.onVerify()
	}
	return f.verifyErr
}

func (f *fakeBookings) CreateBooking(_ context.Context, _ string, payload models.BookingPayload) (*models.BookingConfirmation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, payload)
	if f.confirmation != nil {
		return f.confirmation, nil
	}
	return &models.BookingConfirmation{BookingID: "bk-1"}, nil
}

var testToday = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func testRoom() models.Room {
	return models.Room{
		ID:         "room-1",
		RoomNumber: "101",
		Status:     models.RoomStatusAvailable,
		Category: models.Category{
			ID:    "cat-1",
			Name:  "Deluxe Suite",
			Price: 10000,
		},
	}
}

type testEnv struct {
	svc         *DefaultWizardService
	sessions    *memSessionStore
	credentials *memCredentialStore
	catalog     *fakeCatalog
	bookings    *fakeBookings
}

func newTestEnv() *testEnv {
	sessions := newMemSessionStore()
	credentials := newMemCredentialStore()
	catalog := &fakeCatalog{rooms: []models.Room{testRoom()}}
	bookings := &fakeBookings{available: true}

	clock := func() time.Time { return testToday }
	svc := &DefaultWizardService{
		Sessions:    sessions,
		Credentials: credentials,
		Catalog:     catalog,
		Bookings:    bookings,
		Gate: &AvailabilityGate{
			Bookings: bookings,
			Logger:   zap.NewNop(),
			Now:      clock,
		},
		Logger: zap.NewNop(),
		Now:    clock,
	}
	return &testEnv{
		svc:         svc,
		sessions:    sessions,
		credentials: credentials,
		catalog:     catalog,
		bookings:    bookings,
	}
}

func dateOffset(days int) string {
	return testToday.AddDate(0, 0, days).Format(dateLayout)
}

func validStay() models.StayDetails {
	return models.StayDetails{
		CheckInDate:      dateOffset(0),
		CheckOutDate:     dateOffset(3),
		NumberOfAdults:   2,
		NumberOfChildren: 1,
	}
}

func validGuest() models.GuestProfile {
	return models.GuestProfile{
		FirstName: "Amara",
		LastName:  "Perera",
		Address1:  "12 Beach Road",
		City:      "Galle",
		State:     "Southern",
		Phone:     "+94 77 123 4567",
		Email:     "amara@example.com",
	}
}

func validBilling() models.BillingDetails {
	return models.BillingDetails{
		FullName:   "Amara Perera",
		Email:      "amara@example.com",
		CardNumber: "4111 1111 1111 1111",
		Address:    "12 Beach Road",
		City:       "Galle",
		State:      "Southern",
		Zip:        "80000",
	}
}

// advanceToPayment walks an authenticated session to the payment step.
func (e *testEnv) advanceToPayment(ctx context.Context) string {
	e.credentials.tokens["user-1"] = "token-1"
	session, err := e.svc.StartSession(ctx, "user-1")
	if err != nil {
		panic(err)
	}
	if _, err := e.svc.SelectRoom(ctx, session.SessionID, "user-1", "room-1"); err != nil {
		panic(err)
	}
	if _, err := e.svc.SubmitStay(ctx, session.SessionID, validStay()); err != nil {
		panic(err)
	}
	if _, err := e.svc.SubmitGuestDetails(ctx, session.SessionID, validGuest()); err != nil {
		panic(err)
	}
	return session.SessionID
}

// errUpstream is a non-2xx upstream response; transport failures are
// represented as plain errors in these tests.
var errUpstream = &gateway.APIError{StatusCode: 503, Message: "upstream down"}
