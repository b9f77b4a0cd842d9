package db

import (
	"os"
	"path/filepath"

	"lulukitchen/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to the sqlite database at dbPath, creating the file and its
// directory if needed, and migrates the schema.
func Open(dbPath string) (*gorm.DB, error) {
	dir := filepath.Dir(dbPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		file, err := os.Create(dbPath)
		if err != nil {
			return nil, err
		}
		file.Close()
	}

	database, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(database); err != nil {
		return nil, err
	}
	return database, nil
}

// Migrate applies the schema. Split out so tests can run it against an
// in-memory database.
func Migrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&models.MenuItem{}, &models.AddOn{}, &models.Order{}, &models.Coupon{},
		&models.VacationSetting{}, &models.Recommendation{},
		&models.City{}, &models.Street{}, &models.Admin{}, &models.ContactMessage{},
	)
}
