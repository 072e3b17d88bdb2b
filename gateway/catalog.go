package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"suncrest/models"
)

// CatalogClient talks to the room catalog service.
type CatalogClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewCatalogClient(baseURL string) *CatalogClient {
	return &CatalogClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// ListRooms fetches the full room catalog. The response is materialized
// eagerly; filtering to bookable rooms happens in the wizard service.
func (c *CatalogClient) ListRooms(ctx context.Context) ([]models.Room, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/room", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build room catalog request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("room catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: readMessage(resp.Body)}
	}

	var rooms []models.Room
	if err := json.NewDecoder(resp.Body).Decode(&rooms); err != nil {
		return nil, fmt.Errorf("failed to decode room catalog response: %w", err)
	}
	return rooms, nil
}

// readMessage pulls an optional {"message": "..."} out of an error body.
func readMessage(r io.Reader) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return ""
	}
	return body.Message
}
