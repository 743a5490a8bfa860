package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/homies-gc/homies-api/internal/domain"
	"github.com/homies-gc/homies-api/internal/repository"
)

var (
	ErrVehiclePlateExists   = repository.ErrVehiclePlateExists
	ErrVehicleNotFound      = repository.ErrVehicleNotFound
	ErrInvalidVehicleStatus = errors.New("invalid vehicle status")
)

type VehicleRepository interface {
	Create(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error)
	Update(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error)
	FindByID(ctx context.Context, id uint) (domain.Vehicle, error)
	FindAll(ctx context.Context) ([]domain.Vehicle, error)
	AddMaintenance(ctx context.Context, record domain.MaintenanceRecord) (domain.MaintenanceRecord, error)
	FindMaintenances(ctx context.Context, vehicleID uint) ([]domain.MaintenanceRecord, error)
	AssignInventory(ctx context.Context, item domain.VehicleInventoryItem) (domain.VehicleInventoryItem, error)
	FindInventory(ctx context.Context, vehicleID uint) ([]domain.VehicleInventoryItem, error)
}

type VehicleProductRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Product, error)
}

type VehicleService struct {
	repo        VehicleRepository
	productRepo VehicleProductRepository
}

func NewVehicleService(repo VehicleRepository, productRepo VehicleProductRepository) *VehicleService {
	return &VehicleService{
		repo:        repo,
		productRepo: productRepo,
	}
}

func (s *VehicleService) CreateVehicle(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error) {
	if !vehicle.Status.IsValid() {
		return domain.Vehicle{}, ErrInvalidVehicleStatus
	}

	created, err := s.repo.Create(ctx, vehicle)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *VehicleService) UpdateVehicle(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error) {
	if !vehicle.Status.IsValid() {
		return domain.Vehicle{}, ErrInvalidVehicleStatus
	}

	existing, err := s.repo.FindByID(ctx, vehicle.ID)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if vehicle.PhotoPath == "" {
		vehicle.PhotoPath = existing.PhotoPath
	}

	updated, err := s.repo.Update(ctx, vehicle)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *VehicleService) GetVehicle(ctx context.Context, id uint) (domain.Vehicle, error) {
	vehicle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return vehicle, nil
}

// ListVehicles filters the fleet with the case-insensitive multi-field match
// of domain.Vehicle.MatchesSearch.
func (s *VehicleService) ListVehicles(ctx context.Context, search string) ([]domain.Vehicle, error) {
	vehicles, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	filtered := make([]domain.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if v.MatchesSearch(search) {
			filtered = append(filtered, v)
		}
	}

	return filtered, nil
}

func (s *VehicleService) AddMaintenance(ctx context.Context, record domain.MaintenanceRecord) (domain.MaintenanceRecord, error) {
	if _, err := s.repo.FindByID(ctx, record.VehicleID); err != nil {
		return domain.MaintenanceRecord{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	created, err := s.repo.AddMaintenance(ctx, record)
	if err != nil {
		return domain.MaintenanceRecord{}, fmt.Errorf("s.repo.AddMaintenance -> %w", err)
	}

	return created, nil
}

func (s *VehicleService) ListMaintenances(ctx context.Context, vehicleID uint) ([]domain.MaintenanceRecord, error) {
	if _, err := s.repo.FindByID(ctx, vehicleID); err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	records, err := s.repo.FindMaintenances(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindMaintenances -> %w", err)
	}

	return records, nil
}

// AssignInventory sets the quantity of a product carried by a vehicle.
// Quantity zero removes the assignment.
func (s *VehicleService) AssignInventory(ctx context.Context, item domain.VehicleInventoryItem) (domain.VehicleInventoryItem, error) {
	if _, err := s.repo.FindByID(ctx, item.VehicleID); err != nil {
		return domain.VehicleInventoryItem{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if _, err := s.productRepo.FindByID(ctx, item.ProductID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domain.VehicleInventoryItem{}, ErrProductNotFound
		}
		return domain.VehicleInventoryItem{}, fmt.Errorf("s.productRepo.FindByID -> %w", err)
	}

	saved, err := s.repo.AssignInventory(ctx, item)
	if err != nil {
		return domain.VehicleInventoryItem{}, fmt.Errorf("s.repo.AssignInventory -> %w", err)
	}

	return saved, nil
}

func (s *VehicleService) ListInventory(ctx context.Context, vehicleID uint) ([]domain.VehicleInventoryItem, error) {
	if _, err := s.repo.FindByID(ctx, vehicleID); err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	items, err := s.repo.FindInventory(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindInventory -> %w", err)
	}

	return items, nil
}
