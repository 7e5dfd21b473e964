package db

import (
	"fmt"

	"github.com/zulandar/flightdesk/internal/models"
	"gorm.io/gorm"
)

// AllModels returns every table managed by flightdesk, in creation order.
func AllModels() []interface{} {
	return []interface{}{
		&models.Plane{},
		&models.Pilot{},
		&models.Technician{},
		&models.Customer{},
		&models.Flight{},
		&models.FlightInfo{},
		&models.Schedule{},
		&models.Reservation{},
		&models.Repair{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// DropAll drops every managed table. Missing tables are ignored.
func DropAll(db *gorm.DB) error {
	all := AllModels()
	// Reverse order so link tables go first.
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(all[i]); err != nil {
			return fmt.Errorf("db: drop %T: %w", all[i], err)
		}
	}
	return nil
}
