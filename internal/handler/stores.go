package handler

import (
	"context"

	"github.com/pbkm/badminton-split/internal/model"
	"github.com/pbkm/badminton-split/internal/queue"
)

// CatalogStore is the catalog persistence used by the handlers.
// *repository.CatalogRepo implements it.
type CatalogStore interface {
	ListCourts(ctx context.Context) ([]model.Court, error)
	FindCourt(ctx context.Context, name string) (*model.Court, error)
	ReplaceCourts(ctx context.Context, courts []model.Court) error
	ListShuttlecocks(ctx context.Context) ([]model.Shuttlecock, error)
	FindShuttlecock(ctx context.Context, name string) (*model.Shuttlecock, error)
	ReplaceShuttlecocks(ctx context.Context, shuttlecocks []model.Shuttlecock) error
	ListBanks(ctx context.Context) ([]string, error)
	ReplaceBanks(ctx context.Context, names []string) error
}

// BookingStore is the append-only booking log. *repository.BookingRepo
// implements it.
type BookingStore interface {
	Append(ctx context.Context, b *model.Booking) (uint64, error)
	ListAll(ctx context.Context) ([]model.Booking, error)
	GetByID(ctx context.Context, id uint64) (*model.Booking, error)
}

// EventPublisher announces stored bookings. *service.Publisher implements it.
type EventPublisher interface {
	PublishBookingRecorded(ctx context.Context, ev queue.BookingRecordedEvent) error
}

// CacheInvalidator drops cached GET responses for routes whose data changed.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, routes ...string) error
}
