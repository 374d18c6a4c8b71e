package model

// Court is a rentable badminton court offered in the pricing catalog.
// Courts are keyed by Name; the catalog is always replaced wholesale so
// the surrogate ID is never exposed to clients.
//
// Fields:
//
//	ID           – primary key identifier (internal only).
//	Name         – unique court name.
//	Location     – free-form location text shown on receipts.
//	PricePerHour – rental price in whole rupiah.
type Court struct {
	ID           uint64 `gorm:"primaryKey" json:"-"`                       // courts.id
	Name         string `gorm:"size:191;uniqueIndex;not null" json:"name"` // courts.name
	Location     string `gorm:"size:255;not null" json:"location"`         // courts.location
	PricePerHour int64  `gorm:"not null" json:"pricePerHour"`              // courts.price_per_hour
}
