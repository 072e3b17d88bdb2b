package wizard

import (
	"context"
	"time"

	"suncrest/models"

	"go.uber.org/zap"
)

// Gate failure reasons surfaced to the user.
const (
	reasonCheckInPast       = "Check-in date cannot be in the past"
	reasonCheckOutNotAfter  = "Check-out date must be after check-in date"
	reasonDatesUnavailable  = "Room is not available for the selected dates. Please choose different dates."
	reasonDatesMissing      = "Check-in and check-out dates are required"
	reasonDatesUnparseable  = "Dates must use the YYYY-MM-DD format"
	reasonAdultsOutOfRange  = "Number of adults must be between 1 and 4"
	reasonChildrenOutOfBand = "Number of children must be between 0 and 4"
)

// GateResult is the outcome of an availability check.
type GateResult struct {
	OK     bool
	Reason string
}

// AvailabilityGate validates stay parameters and queries the booking
// service for conflicts. It never mutates the draft.
type AvailabilityGate struct {
	Bookings BookingAPI
	Logger   *zap.Logger

	// Now is the clock used to anchor "today"; defaults to time.Now.
	Now func() time.Time
}

func (g *AvailabilityGate) today() time.Time {
	now := time.Now()
	if g.Now != nil {
		now = g.Now()
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// Check runs the ordered stay validations and then the remote conflict
// query. Validation short-circuits on the first failure. A failing
// remote call degrades to an optimistic pass: the booking service
// remains the final authority at submit time, and a transient network
// error must never block the user locally.
func (g *AvailabilityGate) Check(ctx context.Context, token string, room *models.Room, stay models.StayDetails) GateResult {
	if stay.CheckInDate == "" || stay.CheckOutDate == "" {
		return GateResult{Reason: reasonDatesMissing}
	}

	checkIn := parseDate(stay.CheckInDate)
	checkOut := parseDate(stay.CheckOutDate)
	if checkIn.IsZero() || checkOut.IsZero() {
		return GateResult{Reason: reasonDatesUnparseable}
	}

	if checkIn.Before(g.today()) {
		return GateResult{Reason: reasonCheckInPast}
	}
	if !checkOut.After(checkIn) {
		return GateResult{Reason: reasonCheckOutNotAfter}
	}

	if stay.NumberOfAdults < 1 || stay.NumberOfAdults > 4 {
		return GateResult{Reason: reasonAdultsOutOfRange}
	}
	if stay.NumberOfChildren < 0 || stay.NumberOfChildren > 4 {
		return GateResult{Reason: reasonChildrenOutOfBand}
	}

	available, err := g.Bookings.CheckAvailability(ctx, token, room.ID, stay.CheckInDate, stay.CheckOutDate)
	if err != nil {
		g.Logger.Warn("availability check failed, passing through optimistically",
			zap.String("roomID", room.ID), zap.Error(err))
		return GateResult{OK: true}
	}
	if !available {
		return GateResult{Reason: reasonDatesUnavailable}
	}

	return GateResult{OK: true}
}
