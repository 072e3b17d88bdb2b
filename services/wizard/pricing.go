package wizard

import (
	"math"
	"time"

	"suncrest/models"
)

const dateLayout = "2006-01-02"

// parseDate parses a "YYYY-MM-DD" wire date. The zero time is returned
// for empty or malformed input.
func parseDate(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Nights returns the stay length as ceil((checkOut - checkIn) / 1 day).
// Equal dates yield zero nights; the gate rejects that case before it
// can become a final price.
func Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

// TotalPrice computes nights * nightly rate for the draft's room and
// stay. It returns 0 when no room is selected or either date is absent,
// and never mutates its inputs.
func TotalPrice(room *models.Room, stay models.StayDetails) float64 {
	if room == nil || stay.CheckInDate == "" || stay.CheckOutDate == "" {
		return 0
	}

	checkIn := parseDate(stay.CheckInDate)
	checkOut := parseDate(stay.CheckOutDate)
	if checkIn.IsZero() || checkOut.IsZero() {
		return 0
	}

	return float64(Nights(checkIn, checkOut)) * room.Category.Price
}

// Quote builds the price breakdown shown alongside the stay form.
func Quote(room *models.Room, stay models.StayDetails) models.PriceQuote {
	if room == nil || stay.CheckInDate == "" || stay.CheckOutDate == "" {
		return models.PriceQuote{}
	}

	checkIn := parseDate(stay.CheckInDate)
	checkOut := parseDate(stay.CheckOutDate)
	if checkIn.IsZero() || checkOut.IsZero() {
		return models.PriceQuote{}
	}

	nights := Nights(checkIn, checkOut)
	return models.PriceQuote{
		NightlyRate: room.Category.Price,
		Nights:      nights,
		Total:       float64(nights) * room.Category.Price,
	}
}
