package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"suncrest/models"
)

// BookingClient talks to the booking persistence service. Requests that
// write or read user data carry the caller's bearer credential.
type BookingClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewBookingClient(baseURL string) *BookingClient {
	return &BookingClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// CheckAvailability asks whether the room is free for the date range.
func (c *BookingClient) CheckAvailability(ctx context.Context, token, roomID, checkIn, checkOut string) (bool, error) {
	q := url.Values{}
	q.Set("roomId", roomID)
	q.Set("checkInDate", checkIn)
	q.Set("checkOutDate", checkOut)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/booking/check-availability?"+q.Encode(), nil)
	if err != nil {
		return false, fmt.Errorf("failed to build availability request: %w", err)
	}
	setAuth(req, token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return false, fmt.Errorf("availability request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, &APIError{StatusCode: resp.StatusCode, Message: readMessage(resp.Body)}
	}

	var body struct {
		Available bool `json:"available"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("failed to decode availability response: %w", err)
	}
	return body.Available, nil
}

// VerifyCredential probes the booking-history endpoint as a liveness
// check for the credential. Any response other than 200 is a failure.
func (c *BookingClient) VerifyCredential(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/booking/user", nil)
	if err != nil {
		return fmt.Errorf("failed to build credential probe request: %w", err)
	}
	setAuth(req, token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("credential probe failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: readMessage(resp.Body)}
	}
	return nil
}

// CreateBooking submits the assembled reservation payload.
func (c *BookingClient) CreateBooking(ctx context.Context, token string, payload models.BookingPayload) (*models.BookingConfirmation, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal booking payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/booking", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to build create-booking request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	setAuth(req, token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create-booking request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: readMessage(resp.Body)}
	}

	var confirmation models.BookingConfirmation
	if err := json.NewDecoder(resp.Body).Decode(&confirmation); err != nil {
		return nil, fmt.Errorf("failed to decode booking confirmation: %w", err)
	}
	return &confirmation, nil
}

func setAuth(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}
