// Package queue defines the booking event payload and the background
// consumer that records delivered events.
package queue

import (
	"time"

	"github.com/pbkm/badminton-split/internal/model"
)

// BookingQueueName is the durable queue booking events are routed to.
const BookingQueueName = "booking.recorded"

// BookingRecordedEvent is published after a booking has been appended to
// the log. It carries enough for consumers to log or notify without
// querying the database.
type BookingRecordedEvent struct {
	BookingID        uint64  `json:"bookingId"`
	PlayDate         string  `json:"date"`
	CourtName        string  `json:"courtName"`
	ShuttlecockName  string  `json:"shuttlecockName"`
	DurationHours    int     `json:"duration"`
	ShuttlecockCount int     `json:"shuttlecockCount"`
	PlayerCount      int     `json:"playerCount"`
	TotalCost        int64   `json:"totalCost"`
	CostPerPerson    float64 `json:"costPerPerson"`
	ShareMessage     string  `json:"shareMessage"`
	RecordedAt       string  `json:"recordedAt"`
}

// NewBookingRecordedEvent builds the event for a stored booking.
func NewBookingRecordedEvent(b model.Booking, shareMessage string) BookingRecordedEvent {
	return BookingRecordedEvent{
		BookingID:        b.ID,
		PlayDate:         b.PlayDate,
		CourtName:        b.CourtName,
		ShuttlecockName:  b.ShuttlecockName,
		DurationHours:    b.DurationHours,
		ShuttlecockCount: b.ShuttlecockCount,
		PlayerCount:      b.PlayerCount,
		TotalCost:        b.TotalCost,
		CostPerPerson:    b.CostPerPerson,
		ShareMessage:     shareMessage,
		RecordedAt:       b.CreatedAt.UTC().Format(time.RFC3339),
	}
}
