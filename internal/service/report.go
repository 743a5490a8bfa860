package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/homies-gc/homies-api/internal/domain"
	"github.com/homies-gc/homies-api/internal/repository"
)

// ReportRow is a count annotated with its share of the report total.
type ReportRow struct {
	Label   string  `json:"label"`
	Count   int64   `json:"count"`
	Percent float64 `json:"percent"`
}

// Dashboard bundles the four breakdowns fetched concurrently; a failure in
// any of them fails the whole dashboard.
type Dashboard struct {
	Members  []ReportRow `json:"members"`
	Sales    []ReportRow `json:"sales"`
	Payments []ReportRow `json:"payments"`
	Vehicles []ReportRow `json:"vehicles"`
}

type ReportRepository interface {
	MembersByStatus(ctx context.Context) ([]repository.RawCountRow, error)
	SalesByProductType(ctx context.Context) ([]repository.RawCountRow, error)
	PaymentsByMethod(ctx context.Context) ([]repository.RawCountRow, error)
	VehiclesByStatus(ctx context.Context) ([]repository.RawCountRow, error)
	VehicleSummary(ctx context.Context, vehicleID uint) (repository.VehicleSummaryRow, error)
}

type ReportService struct {
	repo ReportRepository
}

func NewReportService(repo ReportRepository) *ReportService {
	return &ReportService{
		repo: repo,
	}
}

// SafeCount coerces a raw aggregate value to a count, defaulting to 0 on
// anything non-numeric.
func SafeCount(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}

	// Sums over numeric columns can come back with a decimal point.
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int64(f)
	}

	return 0
}

// PercentRows annotates each row with its share of the total. A zero total
// yields 0% everywhere rather than NaN or Inf.
func PercentRows(rows []repository.RawCountRow) []ReportRow {
	out := make([]ReportRow, 0, len(rows))

	var total int64
	for _, row := range rows {
		total += SafeCount(row.Count)
	}

	for _, row := range rows {
		count := SafeCount(row.Count)
		percent := 0.0
		if total > 0 {
			percent = math.Round(float64(count)/float64(total)*10000) / 100
		}
		out = append(out, ReportRow{
			Label:   row.Label,
			Count:   count,
			Percent: percent,
		})
	}

	return out
}

func (s *ReportService) MembersReport(ctx context.Context) ([]ReportRow, error) {
	rows, err := s.repo.MembersByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.MembersByStatus -> %w", err)
	}

	return PercentRows(rows), nil
}

func (s *ReportService) SalesReport(ctx context.Context) ([]ReportRow, error) {
	rows, err := s.repo.SalesByProductType(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.SalesByProductType -> %w", err)
	}

	return PercentRows(rows), nil
}

func (s *ReportService) PaymentsReport(ctx context.Context) ([]ReportRow, error) {
	rows, err := s.repo.PaymentsByMethod(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.PaymentsByMethod -> %w", err)
	}

	return PercentRows(rows), nil
}

func (s *ReportService) VehiclesReport(ctx context.Context) ([]ReportRow, error) {
	rows, err := s.repo.VehiclesByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.VehiclesByStatus -> %w", err)
	}

	return PercentRows(rows), nil
}

// DashboardReport runs the four breakdowns concurrently and treats any
// failure as a failure of the whole view.
func (s *ReportService) DashboardReport(ctx context.Context) (Dashboard, error) {
	var dashboard Dashboard

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.MembersReport(ctx)
		if err != nil {
			return err
		}
		dashboard.Members = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.SalesReport(ctx)
		if err != nil {
			return err
		}
		dashboard.Sales = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.PaymentsReport(ctx)
		if err != nil {
			return err
		}
		dashboard.Payments = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.VehiclesReport(ctx)
		if err != nil {
			return err
		}
		dashboard.Vehicles = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return Dashboard{}, fmt.Errorf("report dashboard -> %w", err)
	}

	return dashboard, nil
}

// VehicleReport maps the per-vehicle aggregate row, coercing raw counts.
func (s *ReportService) VehicleReport(ctx context.Context, vehicleID uint) (domain.VehicleReport, error) {
	row, err := s.repo.VehicleSummary(ctx, vehicleID)
	if err != nil {
		return domain.VehicleReport{}, fmt.Errorf("s.repo.VehicleSummary -> %w", err)
	}

	return domain.VehicleReport{
		VehicleID:        row.VehicleID,
		Plate:            row.Plate,
		MaintenanceCount: SafeCount(row.MaintenanceCount),
		InventoryUnits:   SafeCount(row.InventoryUnits),
		LastMaintenance:  row.LastMaintenance,
	}, nil
}
