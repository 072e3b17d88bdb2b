package models

// Room status values as reported by the catalog service.
const (
	RoomStatusAvailable = "available"
	RoomStatusOccupied  = "occupied"
	RoomStatusPending   = "pending"
)

// Category describes a room class with its nightly rate.
// It is an immutable snapshot within a booking session.
type Category struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// Room is a read-only snapshot of a catalog room. The catalog service
// owns the lifecycle; the wizard never mutates it.
type Room struct {
	ID         string   `json:"_id"`
	RoomNumber string   `json:"roomNumber"`
	Status     string   `json:"status"`
	Category   Category `json:"category"`
}

// RoomView is a room enriched with display attributes derived from its
// category, as presented on the room selection step.
type RoomView struct {
	Room
	Features []string `json:"features"`
	Popular  bool     `json:"popular"`
}
