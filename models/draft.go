package models

// StayDetails holds the requested date range and occupancy.
// Dates use the "YYYY-MM-DD" wire format.
type StayDetails struct {
	CheckInDate      string `json:"checkInDate"`
	CheckOutDate     string `json:"checkOutDate"`
	NumberOfAdults   int    `json:"numberOfAdults"`
	NumberOfChildren int    `json:"numberOfChildren"`
}

// GuestProfile captures the personal details form. Every field except
// Address2 must be non-empty at submission time.
type GuestProfile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// BillingDetails captures the payment form. Card handling is a stub;
// no gateway integration happens here.
type BillingDetails struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	CardNumber string `json:"cardNumber"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Zip        string `json:"zip"`
}

// BookingDraft aggregates everything collected across the wizard steps.
// It lives only inside the session until the final submit succeeds.
type BookingDraft struct {
	Room       *Room          `json:"room,omitempty"`
	Stay       StayDetails    `json:"stay"`
	Guest      GuestProfile   `json:"guest"`
	Billing    BillingDetails `json:"billing"`
	TotalPrice float64        `json:"totalPrice"`
}

// PriceQuote is the breakdown shown alongside the stay form.
type PriceQuote struct {
	NightlyRate float64 `json:"nightlyRate"`
	Nights      int     `json:"nights"`
	Total       float64 `json:"total"`
}
