package repository

import (
	"context"
	"fmt"

	"github.com/homies-gc/homies-api/internal/repository/dao"
)

// RawCountRow mirrors the dao aggregate row; counts stay raw strings until
// the report service coerces them.
type RawCountRow struct {
	Label string
	Count string
}

type ReportDAO interface {
	CountMembersByStatus(ctx context.Context) ([]dao.RawCountRow, error)
	SumSalesByProductType(ctx context.Context) ([]dao.RawCountRow, error)
	CountPaymentsByMethod(ctx context.Context) ([]dao.RawCountRow, error)
	CountVehiclesByStatus(ctx context.Context) ([]dao.RawCountRow, error)
	VehicleSummary(ctx context.Context, vehicleID uint) (dao.VehicleSummaryRow, error)
}

type ReportRepository struct {
	dao ReportDAO
}

func NewReportRepository(dao ReportDAO) *ReportRepository {
	return &ReportRepository{
		dao: dao,
	}
}

func (r *ReportRepository) MembersByStatus(ctx context.Context) ([]RawCountRow, error) {
	rows, err := r.dao.CountMembersByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountMembersByStatus -> %w", err)
	}

	return r.daoRowsToDomain(rows), nil
}

func (r *ReportRepository) SalesByProductType(ctx context.Context) ([]RawCountRow, error) {
	rows, err := r.dao.SumSalesByProductType(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.SumSalesByProductType -> %w", err)
	}

	return r.daoRowsToDomain(rows), nil
}

func (r *ReportRepository) PaymentsByMethod(ctx context.Context) ([]RawCountRow, error) {
	rows, err := r.dao.CountPaymentsByMethod(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountPaymentsByMethod -> %w", err)
	}

	return r.daoRowsToDomain(rows), nil
}

func (r *ReportRepository) VehiclesByStatus(ctx context.Context) ([]RawCountRow, error) {
	rows, err := r.dao.CountVehiclesByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountVehiclesByStatus -> %w", err)
	}

	return r.daoRowsToDomain(rows), nil
}

// VehicleSummaryRow carries the per-vehicle aggregates, counts still raw.
type VehicleSummaryRow struct {
	VehicleID        uint
	Plate            string
	MaintenanceCount string
	InventoryUnits   string
	LastMaintenance  string
}

func (r *ReportRepository) VehicleSummary(ctx context.Context, vehicleID uint) (VehicleSummaryRow, error) {
	row, err := r.dao.VehicleSummary(ctx, vehicleID)
	if err != nil {
		return VehicleSummaryRow{}, fmt.Errorf("r.dao.VehicleSummary -> %w", err)
	}

	return VehicleSummaryRow(row), nil
}

func (r *ReportRepository) daoRowsToDomain(rows []dao.RawCountRow) []RawCountRow {
	out := make([]RawCountRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, RawCountRow(row))
	}
	return out
}
