package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Member{},
		&Product{},
		&Sale{},
		&SaleItem{},
		&Payment{},
		&Vehicle{},
		&VehicleInventoryItem{},
		&MaintenanceRecord{},
	)
}
