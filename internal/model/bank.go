package model

// Bank is one entry of the admin-managed allow-list of bank names that are
// offered when a player adds a payout account. Only Name leaves the API.
type Bank struct {
	ID   uint64 `gorm:"primaryKey"`                    // banks.id
	Name string `gorm:"size:191;uniqueIndex;not null"` // banks.name
}

// BankAccount is a payout account attached to an invoice draft. BankName
// should match a catalog Bank but this is not enforced.
type BankAccount struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
}
