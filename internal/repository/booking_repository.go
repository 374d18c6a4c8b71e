package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pbkm/badminton-split/internal/model"
)

// BookingRepo is the append-only booking log. Bookings are never updated;
// the only removal is DeleteAll, reserved for the operator reset command.
type BookingRepo struct {
	db  *gorm.DB
	now func() time.Time
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *gorm.DB) *BookingRepo {
	return &BookingRepo{db: db, now: time.Now}
}

// Append stores b together with its bank accounts and returns the id the
// store assigned. ID and CreatedAt on b are overwritten.
func (r *BookingRepo) Append(ctx context.Context, b *model.Booking) (uint64, error) {
	b.ID = 0
	b.CreatedAt = r.now().UTC()
	for i := range b.Accounts {
		b.Accounts[i].ID = 0
		b.Accounts[i].BookingID = 0
	}
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return 0, err
	}
	return b.ID, nil
}

// ListAll returns every booking, newest first. Bookings created in the
// same instant are ordered by id, highest first.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
	out := []model.Booking{}
	err := r.db.WithContext(ctx).
		Preload("Accounts", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Order("created_at DESC").Order("id DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].Accounts == nil {
			out[i].Accounts = []model.BookingAccount{}
		}
	}
	return out, nil
}

// GetByID fetches one booking with its accounts.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	var b model.Booking
	err := r.db.WithContext(ctx).
		Preload("Accounts", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&b, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// DeleteAll wipes the booking log and reports how many bookings were
// removed. It is an operator maintenance action, not part of the API.
func (r *BookingRepo) DeleteAll(ctx context.Context) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM booking_accounts").Error; err != nil {
			return err
		}
		res := tx.Exec("DELETE FROM bookings")
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected
		return nil
	})
	return removed, err
}
