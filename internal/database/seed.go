package database

import (
	"gorm.io/gorm"

	"github.com/pbkm/badminton-split/internal/model"
)

// Default catalog inserted into empty tables on first start.
var (
	DefaultCourts = []model.Court{
		{Name: "Gor H.Wahyu", Location: "Gempol / Kunciran Induk", PricePerHour: 45000},
		{Name: "Gor Pusdik Lantas Smash", Location: "Paku Jaya", PricePerHour: 75000},
		{Name: "Gor Family club Graha Raya (Sport Hall)", Location: "Graha Raya", PricePerHour: 90000},
	}
	DefaultShuttlecocks = []model.Shuttlecock{
		{Name: "Gong 2000", PricePerPiece: 10000},
		{Name: "JP Gold", PricePerPiece: 12000},
		{Name: "Alpha", PricePerPiece: 16000},
	}
	DefaultBanks = []string{"BCA", "Mandiri", "BRI", "BNI", "Bank Jago", "Aladin", "Blu By BCA", "Danamon", "Permata"}
)

// Seed fills each catalog table with the defaults if, and only if, it is
// empty. Tables that already hold rows are left untouched.
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if empty, err := isEmpty(tx, &model.Court{}); err != nil {
			return err
		} else if empty {
			courts := append([]model.Court(nil), DefaultCourts...)
			if err := tx.Create(&courts).Error; err != nil {
				return err
			}
		}
		if empty, err := isEmpty(tx, &model.Shuttlecock{}); err != nil {
			return err
		} else if empty {
			shuttles := append([]model.Shuttlecock(nil), DefaultShuttlecocks...)
			if err := tx.Create(&shuttles).Error; err != nil {
				return err
			}
		}
		if empty, err := isEmpty(tx, &model.Bank{}); err != nil {
			return err
		} else if empty {
			banks := make([]model.Bank, 0, len(DefaultBanks))
			for _, name := range DefaultBanks {
				banks = append(banks, model.Bank{Name: name})
			}
			if err := tx.Create(&banks).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func isEmpty(tx *gorm.DB, table any) (bool, error) {
	var n int64
	if err := tx.Model(table).Count(&n).Error; err != nil {
		return false, err
	}
	return n == 0, nil
}
