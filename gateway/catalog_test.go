package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRooms(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/room", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"_id":"room-1","roomNumber":"101","status":"available",
			 "category":{"_id":"cat-1","name":"Deluxe Suite","price":10000}},
			{"_id":"room-2","roomNumber":"102","status":"occupied",
			 "category":{"_id":"cat-2","name":"Standard","price":4000}}
		]`))
	}))
	defer srv.Close()

	client := NewCatalogClient(srv.URL)
	rooms, err := client.ListRooms(context.Background())
	require.NoError(t, err)

	require.Len(t, rooms, 2)
	assert.Equal(t, "room-1", rooms[0].ID)
	assert.Equal(t, "101", rooms[0].RoomNumber)
	assert.Equal(t, "Deluxe Suite", rooms[0].Category.Name)
	assert.Equal(t, 10000.0, rooms[0].Category.Price)
	assert.Equal(t, "occupied", rooms[1].Status)
}

func TestListRoomsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"catalog unavailable"}`))
	}))
	defer srv.Close()

	client := NewCatalogClient(srv.URL)
	_, err := client.ListRooms(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "catalog unavailable", apiErr.Message)
}

func TestListRoomsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := NewCatalogClient(srv.URL)
	_, err := client.ListRooms(context.Background())

	// Transport failures stay plain wrapped errors, never APIError.
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
