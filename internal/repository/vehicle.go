package repository

import (
	"context"
	"fmt"

	"github.com/homies-gc/homies-api/internal/domain"
	"github.com/homies-gc/homies-api/internal/repository/dao"
)

var (
	ErrVehiclePlateExists = dao.ErrVehiclePlateExists
	ErrVehicleNotFound    = dao.ErrVehicleNotFound
)

type VehicleDAO interface {
	Insert(ctx context.Context, vehicle dao.Vehicle) (dao.Vehicle, error)
	Update(ctx context.Context, vehicle dao.Vehicle) (dao.Vehicle, error)
	FindByID(ctx context.Context, id uint) (dao.Vehicle, error)
	FindAll(ctx context.Context) ([]dao.Vehicle, error)
	InsertMaintenance(ctx context.Context, record dao.MaintenanceRecord) (dao.MaintenanceRecord, error)
	FindMaintenances(ctx context.Context, vehicleID uint) ([]dao.MaintenanceRecord, error)
	UpsertInventoryItem(ctx context.Context, item dao.VehicleInventoryItem) (dao.VehicleInventoryItem, error)
	FindInventory(ctx context.Context, vehicleID uint) ([]dao.VehicleInventoryItem, error)
}

type VehicleRepository struct {
	dao VehicleDAO
}

func NewVehicleRepository(dao VehicleDAO) *VehicleRepository {
	return &VehicleRepository{
		dao: dao,
	}
}

func (r *VehicleRepository) Create(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(vehicle))
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *VehicleRepository) Update(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(vehicle))
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *VehicleRepository) FindByID(ctx context.Context, id uint) (domain.Vehicle, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *VehicleRepository) FindAll(ctx context.Context) ([]domain.Vehicle, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	vehicles := make([]domain.Vehicle, 0, len(found))
	for _, v := range found {
		vehicles = append(vehicles, r.daoToDomain(v))
	}

	return vehicles, nil
}

func (r *VehicleRepository) AddMaintenance(ctx context.Context, record domain.MaintenanceRecord) (domain.MaintenanceRecord, error) {
	created, err := r.dao.InsertMaintenance(ctx, dao.MaintenanceRecord{
		VehicleID:      record.VehicleID,
		Date:           record.Date,
		Description:    record.Description,
		AttachmentPath: record.AttachmentPath,
	})
	if err != nil {
		return domain.MaintenanceRecord{}, fmt.Errorf("r.dao.InsertMaintenance -> %w", err)
	}

	return r.maintenanceDAOToDomain(created), nil
}

func (r *VehicleRepository) FindMaintenances(ctx context.Context, vehicleID uint) ([]domain.MaintenanceRecord, error) {
	found, err := r.dao.FindMaintenances(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindMaintenances -> %w", err)
	}

	records := make([]domain.MaintenanceRecord, 0, len(found))
	for _, m := range found {
		records = append(records, r.maintenanceDAOToDomain(m))
	}

	return records, nil
}

func (r *VehicleRepository) AssignInventory(ctx context.Context, item domain.VehicleInventoryItem) (domain.VehicleInventoryItem, error) {
	saved, err := r.dao.UpsertInventoryItem(ctx, dao.VehicleInventoryItem{
		VehicleID: item.VehicleID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
	})
	if err != nil {
		return domain.VehicleInventoryItem{}, fmt.Errorf("r.dao.UpsertInventoryItem -> %w", err)
	}

	return r.inventoryDAOToDomain(saved), nil
}

func (r *VehicleRepository) FindInventory(ctx context.Context, vehicleID uint) ([]domain.VehicleInventoryItem, error) {
	found, err := r.dao.FindInventory(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindInventory -> %w", err)
	}

	items := make([]domain.VehicleInventoryItem, 0, len(found))
	for _, i := range found {
		items = append(items, r.inventoryDAOToDomain(i))
	}

	return items, nil
}

func (r *VehicleRepository) domainToDAO(v domain.Vehicle) dao.Vehicle {
	return dao.Vehicle{
		ID:         v.ID,
		Plate:      v.Plate,
		Brand:      v.Brand,
		Model:      v.Model,
		Type:       v.Type,
		Status:     string(v.Status),
		Nomination: v.Nomination,
		PhotoPath:  v.PhotoPath,
	}
}

func (r *VehicleRepository) daoToDomain(v dao.Vehicle) domain.Vehicle {
	return domain.Vehicle{
		ID:         v.ID,
		Plate:      v.Plate,
		Brand:      v.Brand,
		Model:      v.Model,
		Type:       v.Type,
		Status:     domain.VehicleStatus(v.Status),
		Nomination: v.Nomination,
		PhotoPath:  v.PhotoPath,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

func (r *VehicleRepository) maintenanceDAOToDomain(m dao.MaintenanceRecord) domain.MaintenanceRecord {
	return domain.MaintenanceRecord{
		ID:             m.ID,
		VehicleID:      m.VehicleID,
		Date:           m.Date,
		Description:    m.Description,
		AttachmentPath: m.AttachmentPath,
		CreatedAt:      m.CreatedAt,
	}
}

func (r *VehicleRepository) inventoryDAOToDomain(i dao.VehicleInventoryItem) domain.VehicleInventoryItem {
	return domain.VehicleInventoryItem{
		ID:          i.ID,
		VehicleID:   i.VehicleID,
		ProductID:   i.ProductID,
		ProductName: i.Product.Name,
		Quantity:    i.Quantity,
	}
}
