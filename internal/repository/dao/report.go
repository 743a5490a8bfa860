package dao

import (
	"context"

	"gorm.io/gorm"
)

// RawCountRow is a grouped aggregate as it comes back from the database.
// Counts are scanned as text and coerced by the report service so a null
// or malformed aggregate never poisons a whole report.
type RawCountRow struct {
	Label string
	Count string
}

type ReportDAO struct {
	db *gorm.DB
}

func NewReportDAO(db *gorm.DB) *ReportDAO {
	return &ReportDAO{
		db: db,
	}
}

func (d *ReportDAO) CountMembersByStatus(ctx context.Context) ([]RawCountRow, error) {
	var rows []RawCountRow

	err := d.db.WithContext(ctx).Raw(
		`SELECT CASE WHEN active THEN 'active' ELSE 'inactive' END AS label,
		        COUNT(*)::text AS count
		 FROM members GROUP BY active`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (d *ReportDAO) SumSalesByProductType(ctx context.Context) ([]RawCountRow, error) {
	var rows []RawCountRow

	err := d.db.WithContext(ctx).Raw(
		`SELECT p.type AS label, COALESCE(SUM(si.quantity), 0)::text AS count
		 FROM sale_items si
		 JOIN products p ON p.id = si.product_id
		 JOIN sales s ON s.id = si.sale_id
		 WHERE s.status <> 'VOID'
		 GROUP BY p.type`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (d *ReportDAO) CountPaymentsByMethod(ctx context.Context) ([]RawCountRow, error) {
	var rows []RawCountRow

	err := d.db.WithContext(ctx).Raw(
		`SELECT method AS label, COUNT(*)::text AS count
		 FROM payments WHERE status = 'APPROVED' GROUP BY method`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (d *ReportDAO) CountVehiclesByStatus(ctx context.Context) ([]RawCountRow, error) {
	var rows []RawCountRow

	err := d.db.WithContext(ctx).Raw(
		`SELECT status AS label, COUNT(*)::text AS count
		 FROM vehicles GROUP BY status`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// VehicleSummaryRow backs the per-vehicle report sub-resource.
type VehicleSummaryRow struct {
	VehicleID        uint
	Plate            string
	MaintenanceCount string
	InventoryUnits   string
	LastMaintenance  string
}

func (d *ReportDAO) VehicleSummary(ctx context.Context, vehicleID uint) (VehicleSummaryRow, error) {
	var row VehicleSummaryRow

	err := d.db.WithContext(ctx).Raw(
		`SELECT v.id AS vehicle_id,
		        v.plate,
		        (SELECT COUNT(*) FROM maintenance_records m WHERE m.vehicle_id = v.id)::text AS maintenance_count,
		        (SELECT COALESCE(SUM(quantity), 0) FROM vehicle_inventory_items i WHERE i.vehicle_id = v.id)::text AS inventory_units,
		        COALESCE((SELECT TO_CHAR(MAX(m.date), 'YYYY-MM-DD') FROM maintenance_records m WHERE m.vehicle_id = v.id), '') AS last_maintenance
		 FROM vehicles v WHERE v.id = ?`, vehicleID,
	).Scan(&row).Error
	if err != nil {
		return VehicleSummaryRow{}, err
	}
	if row.VehicleID == 0 {
		return VehicleSummaryRow{}, ErrVehicleNotFound
	}

	return row, nil
}
