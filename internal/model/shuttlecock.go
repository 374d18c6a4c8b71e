package model

// Shuttlecock is a shuttlecock brand with its price per piece.
type Shuttlecock struct {
	ID            uint64 `gorm:"primaryKey" json:"-"`                       // shuttlecocks.id
	Name          string `gorm:"size:191;uniqueIndex;not null" json:"name"` // shuttlecocks.name
	PricePerPiece int64  `gorm:"not null" json:"pricePerPiece"`             // shuttlecocks.price_per_piece
}
