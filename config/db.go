package config

import (
	"fmt"
	"strings"

	"restaurant-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB connects, migrates and installs the reservation slot index.
func OpenDB(cfg DBConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "", "sqlite":
		dialector = sqlite.Open(sqliteDSN(cfg.Source))
	case "postgres":
		dialector = postgres.Open(cfg.Source)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// InitDB opens the database into the package-level DB handle.
func InitDB(cfg DBConfig) error {
	db, err := OpenDB(cfg)
	if err != nil {
		return err
	}
	DB = db
	return nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderLine{},
		&models.OrderStatusHistory{},
		&models.Reservation{},
		&models.Review{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// At most one confirmed or seated reservation per (date, time, table).
	holding := make([]string, len(models.HoldingReservationStatuses))
	for i, s := range models.HoldingReservationStatuses {
		holding[i] = "'" + string(s) + "'"
	}
	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_reservation_active_slot
		ON reservations (reservation_date, reservation_time, table_number)
		WHERE status IN (` + strings.Join(holding, ", ") + `)`).Error
	if err != nil {
		return fmt.Errorf("failed to create reservation slot index: %w", err)
	}
	return nil
}

func sqliteDSN(source string) string {
	if strings.Contains(source, "_pragma=") {
		return source
	}
	sep := "?"
	if strings.Contains(source, "?") {
		sep = "&"
	}
	return source + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
