package models

import "time"

// BookingPayload is the create-booking request body sent to the booking
// service once the wizard completes.
type BookingPayload struct {
	Room             string         `json:"room"`
	Category         string         `json:"category"`
	CheckInDate      string         `json:"checkInDate"`
	CheckOutDate     string         `json:"checkOutDate"`
	NumberOfAdults   int            `json:"numberOfAdults"`
	NumberOfChildren int            `json:"numberOfChildren"`
	TotalPrice       float64        `json:"totalPrice"`
	Billing          BillingDetails `json:"billing"`
}

// BookingConfirmation is returned after a successful submission.
type BookingConfirmation struct {
	BookingID    string    `json:"bookingId,omitempty"`
	CategoryName string    `json:"categoryName"`
	RoomNumber   string    `json:"roomNumber,omitempty"`
	TotalPrice   float64   `json:"totalPrice"`
	Message      string    `json:"message"`
	CreatedAt    time.Time `json:"createdAt"`
}
