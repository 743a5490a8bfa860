package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrVehiclePlateExists = errors.New("vehicle with this plate already exists")
	ErrVehicleNotFound    = errors.New("vehicle not found")
)

type Vehicle struct {
	ID uint `gorm:"primaryKey"`

	Plate      string `gorm:"unique;not null"`
	Brand      string `gorm:"not null"`
	Model      string `gorm:"not null"`
	Type       string `gorm:"not null"`
	Status     string `gorm:"not null"` // "Operational", "Out of Service" or "In Emergency"
	Nomination string
	PhotoPath  string

	Inventory    []VehicleInventoryItem `gorm:"foreignKey:VehicleID"`
	Maintenances []MaintenanceRecord    `gorm:"foreignKey:VehicleID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type VehicleInventoryItem struct {
	ID uint `gorm:"primaryKey"`

	VehicleID uint    `gorm:"not null;uniqueIndex:idx_vehicle_product"`
	ProductID uint    `gorm:"not null;uniqueIndex:idx_vehicle_product"`
	Product   Product `gorm:"foreignKey:ProductID"`
	Quantity  int     `gorm:"not null"`
}

type MaintenanceRecord struct {
	ID uint `gorm:"primaryKey"`

	VehicleID      uint      `gorm:"not null;index"`
	Date           time.Time `gorm:"not null"`
	Description    string    `gorm:"not null"`
	AttachmentPath string

	CreatedAt time.Time `gorm:"not null"`
}

type VehicleDAO struct {
	db *gorm.DB
}

func NewVehicleDAO(db *gorm.DB) *VehicleDAO {
	return &VehicleDAO{
		db: db,
	}
}

func (d *VehicleDAO) Insert(ctx context.Context, vehicle Vehicle) (Vehicle, error) {
	result := d.db.WithContext(ctx).Create(&vehicle)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Vehicle{}, ErrVehiclePlateExists
		}

		return Vehicle{}, result.Error
	}

	return vehicle, nil
}

func (d *VehicleDAO) Update(ctx context.Context, vehicle Vehicle) (Vehicle, error) {
	result := d.db.WithContext(ctx).Save(&vehicle)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Vehicle{}, ErrVehiclePlateExists
		}

		return Vehicle{}, result.Error
	}

	return vehicle, nil
}

func (d *VehicleDAO) FindByID(ctx context.Context, id uint) (Vehicle, error) {
	var vehicle Vehicle

	result := d.db.WithContext(ctx).First(&vehicle, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Vehicle{}, ErrVehicleNotFound
		}

		return Vehicle{}, result.Error
	}

	return vehicle, nil
}

func (d *VehicleDAO) FindAll(ctx context.Context) ([]Vehicle, error) {
	var vehicles []Vehicle

	result := d.db.WithContext(ctx).Order("plate").Find(&vehicles)
	if result.Error != nil {
		return nil, result.Error
	}

	return vehicles, nil
}

func (d *VehicleDAO) InsertMaintenance(ctx context.Context, record MaintenanceRecord) (MaintenanceRecord, error) {
	result := d.db.WithContext(ctx).Create(&record)
	if result.Error != nil {
		return MaintenanceRecord{}, result.Error
	}

	return record, nil
}

func (d *VehicleDAO) FindMaintenances(ctx context.Context, vehicleID uint) ([]MaintenanceRecord, error) {
	var records []MaintenanceRecord

	result := d.db.WithContext(ctx).Where("vehicle_id = ?", vehicleID).Order("date DESC").Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}

// UpsertInventoryItem sets the assigned quantity for a vehicle/product pair.
// Quantity zero removes the assignment.
func (d *VehicleDAO) UpsertInventoryItem(ctx context.Context, item VehicleInventoryItem) (VehicleInventoryItem, error) {
	if item.Quantity <= 0 {
		err := d.db.WithContext(ctx).
			Where("vehicle_id = ? AND product_id = ?", item.VehicleID, item.ProductID).
			Delete(&VehicleInventoryItem{}).Error
		return VehicleInventoryItem{}, err
	}

	var existing VehicleInventoryItem
	err := d.db.WithContext(ctx).
		Where("vehicle_id = ? AND product_id = ?", item.VehicleID, item.ProductID).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := d.db.WithContext(ctx).Create(&item).Error; err != nil {
				return VehicleInventoryItem{}, err
			}
			return item, nil
		}
		return VehicleInventoryItem{}, err
	}

	existing.Quantity = item.Quantity
	if err := d.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return VehicleInventoryItem{}, err
	}

	return existing, nil
}

func (d *VehicleDAO) FindInventory(ctx context.Context, vehicleID uint) ([]VehicleInventoryItem, error) {
	var items []VehicleInventoryItem

	result := d.db.WithContext(ctx).Preload("Product").Where("vehicle_id = ?", vehicleID).Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}

	return items, nil
}
