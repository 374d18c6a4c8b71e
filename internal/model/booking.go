package model

import "time"

// Booking is a persisted invoice. Rows are append-only: the application
// never updates or deletes a single booking. Court and shuttlecock data are
// copied by value so later catalog edits do not rewrite history.
//
// Fields:
//
//	ID               – assigned by the store.
//	PlayDate         – calendar date of the session (YYYY-MM-DD, opaque).
//	CourtName        – court selected for the session.
//	CourtLocation    – location of that court.
//	CourtPrice       – effective court price per hour (after override).
//	ShuttlecockName  – shuttlecock brand used.
//	ShuttlecockPrice – effective price per shuttlecock (after override).
//	ShuttlecockCount – shuttlecocks consumed.
//	DurationHours    – rented hours.
//	PlayerCount      – players sharing the cost.
//	TotalCost        – court and shuttlecock subtotals combined.
//	CostPerPerson    – TotalCost / PlayerCount, stored unrounded.
//	Accounts         – payout accounts in the order they were added.
//	CreatedAt        – insert timestamp assigned by the store (UTC).
type Booking struct {
	ID               uint64           `gorm:"primaryKey" json:"id"`
	PlayDate         string           `gorm:"size:32;not null" json:"date"`
	CourtName        string           `gorm:"size:191;not null" json:"courtName"`
	CourtLocation    string           `gorm:"size:255;not null" json:"courtLocation"`
	CourtPrice       int64            `gorm:"not null" json:"courtPrice"`
	ShuttlecockName  string           `gorm:"size:191;not null" json:"shuttlecockName"`
	ShuttlecockPrice int64            `gorm:"not null" json:"shuttlecockPrice"`
	ShuttlecockCount int              `gorm:"not null" json:"shuttlecockCount"`
	DurationHours    int              `gorm:"not null" json:"duration"`
	PlayerCount      int              `gorm:"not null" json:"playerCount"`
	TotalCost        int64            `gorm:"not null" json:"totalCost"`
	CostPerPerson    float64          `gorm:"not null" json:"costPerPerson"`
	Accounts         []BookingAccount `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"bankAccounts"`
	CreatedAt        time.Time        `gorm:"not null;index" json:"createdAt"`
}

// BookingAccount stores one payout account of a booking. Position keeps
// the order in which the accounts were attached.
type BookingAccount struct {
	ID            uint64 `gorm:"primaryKey" json:"-"`
	BookingID     uint64 `gorm:"index;not null" json:"-"`
	Position      int    `gorm:"not null" json:"-"`
	BankName      string `gorm:"size:191" json:"bankName"`
	AccountNumber string `gorm:"size:64" json:"accountNumber"`
	AccountName   string `gorm:"size:191" json:"accountName"`
}

// BankAccounts returns the booking's accounts as plain BankAccount values.
func (b Booking) BankAccounts() []BankAccount {
	out := make([]BankAccount, 0, len(b.Accounts))
	for _, a := range b.Accounts {
		out = append(out, BankAccount{BankName: a.BankName, AccountNumber: a.AccountNumber, AccountName: a.AccountName})
	}
	return out
}
