// Package repository contains data access logic separated from HTTP
// handlers. Catalog tables are small and always written as a whole list;
// the booking log is append-only.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/pbkm/badminton-split/internal/model"
)

// CatalogRepo reads and replaces the three reference lists: courts,
// shuttlecocks and bank names.
type CatalogRepo struct {
	db *gorm.DB
}

// NewCatalogRepo constructs a CatalogRepo with the provided DB handle.
func NewCatalogRepo(db *gorm.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

// ListCourts returns every court in insertion order.
func (r *CatalogRepo) ListCourts(ctx context.Context) ([]model.Court, error) {
	out := []model.Court{}
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindCourt looks a court up by its unique name.
func (r *CatalogRepo) FindCourt(ctx context.Context, name string) (*model.Court, error) {
	var c model.Court
	if err := r.db.WithContext(ctx).Where("name = ?", strings.TrimSpace(name)).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ReplaceCourts swaps the whole court list for courts. The delete and the
// inserts share one transaction so readers see either the old list or the
// new one, never an empty or partial table.
func (r *CatalogRepo) ReplaceCourts(ctx context.Context, courts []model.Court) error {
	rows := make([]model.Court, 0, len(courts))
	seen := make(map[string]bool, len(courts))
	for _, c := range courts {
		name, err := checkName(c.Name, seen)
		if err != nil {
			return err
		}
		if c.PricePerHour < 0 {
			return fmt.Errorf("%w: court %q", ErrNegativePrice, name)
		}
		rows = append(rows, model.Court{Name: name, Location: strings.TrimSpace(c.Location), PricePerHour: c.PricePerHour})
	}
	return r.replace(ctx, "courts", &rows, len(rows))
}

// ListShuttlecocks returns every shuttlecock in insertion order.
func (r *CatalogRepo) ListShuttlecocks(ctx context.Context) ([]model.Shuttlecock, error) {
	out := []model.Shuttlecock{}
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindShuttlecock looks a shuttlecock up by its unique name.
func (r *CatalogRepo) FindShuttlecock(ctx context.Context, name string) (*model.Shuttlecock, error) {
	var s model.Shuttlecock
	if err := r.db.WithContext(ctx).Where("name = ?", strings.TrimSpace(name)).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShuttlecockNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ReplaceShuttlecocks swaps the whole shuttlecock list atomically.
func (r *CatalogRepo) ReplaceShuttlecocks(ctx context.Context, shuttlecocks []model.Shuttlecock) error {
	rows := make([]model.Shuttlecock, 0, len(shuttlecocks))
	seen := make(map[string]bool, len(shuttlecocks))
	for _, s := range shuttlecocks {
		name, err := checkName(s.Name, seen)
		if err != nil {
			return err
		}
		if s.PricePerPiece < 0 {
			return fmt.Errorf("%w: shuttlecock %q", ErrNegativePrice, name)
		}
		rows = append(rows, model.Shuttlecock{Name: name, PricePerPiece: s.PricePerPiece})
	}
	return r.replace(ctx, "shuttlecocks", &rows, len(rows))
}

// ListBanks returns the bank name allow-list in insertion order.
func (r *CatalogRepo) ListBanks(ctx context.Context) ([]string, error) {
	out := []string{}
	if err := r.db.WithContext(ctx).Model(&model.Bank{}).Order("id").Pluck("name", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ReplaceBanks swaps the bank name allow-list atomically.
func (r *CatalogRepo) ReplaceBanks(ctx context.Context, names []string) error {
	rows := make([]model.Bank, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		name, err := checkName(n, seen)
		if err != nil {
			return err
		}
		rows = append(rows, model.Bank{Name: name})
	}
	return r.replace(ctx, "banks", &rows, len(rows))
}

// replace runs "delete all, insert all" for one table inside a single
// transaction. rows must be a pointer to a slice of the table's model.
func (r *CatalogRepo) replace(ctx context.Context, table string, rows any, n int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
		if n == 0 {
			return nil
		}
		if err := tx.Create(rows).Error; err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
		return nil
	})
}

// checkName trims name and rejects empty or repeated values.
func checkName(raw string, seen map[string]bool) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrEmptyName
	}
	if seen[name] {
		return "", fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	seen[name] = true
	return name, nil
}
