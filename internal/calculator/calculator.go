// Package calculator splits the cost of a badminton session between its
// players. Everything here is pure: no I/O, no clock reads, no globals.
package calculator

import (
	"errors"
	"fmt"
	"math"

	"github.com/pbkm/badminton-split/internal/model"
)

var (
	// ErrInvalidInput is returned when an input can never produce a
	// meaningful invoice (for example zero players or a negative price).
	ErrInvalidInput = errors.New("invalid input")

	// ErrIncomplete marks an invoice whose selection is not finished yet.
	// Calculate never returns it; callers that need a complete invoice do.
	ErrIncomplete = errors.New("selection incomplete")
)

// SessionInput is one calculation request. Court and Shuttlecock are nil
// until the user picks them. CourtPrice and ShuttlecockPrice are the
// effective prices, which start from the catalog price but may be edited.
type SessionInput struct {
	PlayDate         string
	DurationHours    int
	Court            *model.Court
	CourtPrice       int64
	Shuttlecock      *model.Shuttlecock
	ShuttlecockPrice int64
	ShuttlecockCount int
	PlayerCount      int
	BankAccounts     []model.BankAccount
}

// Invoice is the read-only result of Calculate. It carries a copy of the
// input so renderers never need anything else.
type Invoice struct {
	SessionInput
	Complete      bool
	TotalCost     int64
	CostPerPerson float64
}

// Calculate derives the invoice for in. An unfinished selection yields a
// zero invoice with Complete set to false; invalid numbers yield
// ErrInvalidInput.
func Calculate(in SessionInput) (Invoice, error) {
	if err := validate(in); err != nil {
		return Invoice{}, err
	}

	inv := Invoice{SessionInput: copyInput(in)}
	if !isComplete(in) {
		return inv, nil
	}

	inv.Complete = true
	inv.TotalCost = in.CourtPrice*int64(in.DurationHours) + in.ShuttlecockPrice*int64(in.ShuttlecockCount)
	inv.CostPerPerson = float64(inv.TotalCost) / float64(in.PlayerCount)
	return inv, nil
}

// RequireComplete is Calculate for callers that cannot work with a draft,
// such as persisting a booking.
func RequireComplete(in SessionInput) (Invoice, error) {
	inv, err := Calculate(in)
	if err != nil {
		return Invoice{}, err
	}
	if !inv.Complete {
		return Invoice{}, ErrIncomplete
	}
	return inv, nil
}

func validate(in SessionInput) error {
	switch {
	case in.PlayerCount <= 0:
		return fmt.Errorf("%w: player count must be at least 1, got %d", ErrInvalidInput, in.PlayerCount)
	case in.CourtPrice < 0:
		return fmt.Errorf("%w: court price must not be negative", ErrInvalidInput)
	case in.ShuttlecockPrice < 0:
		return fmt.Errorf("%w: shuttlecock price must not be negative", ErrInvalidInput)
	case in.DurationHours < 0:
		return fmt.Errorf("%w: duration must not be negative", ErrInvalidInput)
	case in.ShuttlecockCount < 0:
		return fmt.Errorf("%w: shuttlecock count must not be negative", ErrInvalidInput)
	case overflows(in):
		return fmt.Errorf("%w: total cost exceeds %d", ErrInvalidInput, int64(math.MaxInt64))
	}
	return nil
}

// overflows reports whether the total would not fit in an int64. Inputs
// are already known to be non-negative.
func overflows(in SessionInput) bool {
	if in.DurationHours > 0 && in.CourtPrice > math.MaxInt64/int64(in.DurationHours) {
		return true
	}
	if in.ShuttlecockCount > 0 && in.ShuttlecockPrice > math.MaxInt64/int64(in.ShuttlecockCount) {
		return true
	}
	court := in.CourtPrice * int64(in.DurationHours)
	shuttle := in.ShuttlecockPrice * int64(in.ShuttlecockCount)
	return court > math.MaxInt64-shuttle
}

// isComplete holds once both items are picked and every factor of the
// total is positive. Zero hours or zero shuttlecocks is still a draft.
func isComplete(in SessionInput) bool {
	return in.Court != nil && in.Shuttlecock != nil &&
		in.CourtPrice > 0 && in.ShuttlecockPrice > 0 &&
		in.DurationHours > 0 && in.ShuttlecockCount > 0
}

// copyInput detaches the invoice from slices and pointers owned by the caller.
func copyInput(in SessionInput) SessionInput {
	out := in
	if in.Court != nil {
		c := *in.Court
		out.Court = &c
	}
	if in.Shuttlecock != nil {
		s := *in.Shuttlecock
		out.Shuttlecock = &s
	}
	out.BankAccounts = append([]model.BankAccount(nil), in.BankAccounts...)
	return out
}

// CourtSubtotal is the court price multiplied by the rented hours.
func (inv Invoice) CourtSubtotal() int64 {
	return inv.CourtPrice * int64(inv.DurationHours)
}

// ShuttlecockSubtotal is the shuttlecock price multiplied by the count.
func (inv Invoice) ShuttlecockSubtotal() int64 {
	return inv.ShuttlecockPrice * int64(inv.ShuttlecockCount)
}

// RoundedCostPerPerson rounds the per-person share to the nearest rupiah.
// Only renderers should call it; stored values stay unrounded.
func (inv Invoice) RoundedCostPerPerson() int64 {
	return int64(math.Round(inv.CostPerPerson))
}

// CourtName returns the selected court name, or "" for a draft.
func (inv Invoice) CourtName() string {
	if inv.Court == nil {
		return ""
	}
	return inv.Court.Name
}

// CourtLocation returns the selected court location, or "" for a draft.
func (inv Invoice) CourtLocation() string {
	if inv.Court == nil {
		return ""
	}
	return inv.Court.Location
}

// ShuttlecockName returns the selected shuttlecock name, or "" for a draft.
func (inv Invoice) ShuttlecockName() string {
	if inv.Shuttlecock == nil {
		return ""
	}
	return inv.Shuttlecock.Name
}

// Booking converts a complete invoice into a row for the booking log.
// ID and CreatedAt are left for the store to assign.
func (inv Invoice) Booking() model.Booking {
	b := model.Booking{
		PlayDate:         inv.PlayDate,
		CourtName:        inv.CourtName(),
		CourtLocation:    inv.CourtLocation(),
		CourtPrice:       inv.CourtPrice,
		ShuttlecockName:  inv.ShuttlecockName(),
		ShuttlecockPrice: inv.ShuttlecockPrice,
		ShuttlecockCount: inv.ShuttlecockCount,
		DurationHours:    inv.DurationHours,
		PlayerCount:      inv.PlayerCount,
		TotalCost:        inv.TotalCost,
		CostPerPerson:    inv.CostPerPerson,
	}
	for i, a := range inv.BankAccounts {
		b.Accounts = append(b.Accounts, model.BookingAccount{
			Position:      i,
			BankName:      a.BankName,
			AccountNumber: a.AccountNumber,
			AccountName:   a.AccountName,
		})
	}
	return b
}

// FromBooking rebuilds the invoice of a stored booking so it can be
// rendered again.
func FromBooking(b model.Booking) Invoice {
	return Invoice{
		SessionInput: SessionInput{
			PlayDate:         b.PlayDate,
			DurationHours:    b.DurationHours,
			Court:            &model.Court{Name: b.CourtName, Location: b.CourtLocation, PricePerHour: b.CourtPrice},
			CourtPrice:       b.CourtPrice,
			Shuttlecock:      &model.Shuttlecock{Name: b.ShuttlecockName, PricePerPiece: b.ShuttlecockPrice},
			ShuttlecockPrice: b.ShuttlecockPrice,
			ShuttlecockCount: b.ShuttlecockCount,
			PlayerCount:      b.PlayerCount,
			BankAccounts:     b.BankAccounts(),
		},
		Complete:      true,
		TotalCost:     b.TotalCost,
		CostPerPerson: b.CostPerPerson,
	}
}
