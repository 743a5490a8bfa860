package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homies-gc/homies-api/internal/repository"
	"github.com/homies-gc/homies-api/internal/service"
)

type fakeReportRepo struct {
	members  []repository.RawCountRow
	sales    []repository.RawCountRow
	payments []repository.RawCountRow
	vehicles []repository.RawCountRow

	summary repository.VehicleSummaryRow

	failPayments error
}

func (r *fakeReportRepo) MembersByStatus(_ context.Context) ([]repository.RawCountRow, error) {
	return r.members, nil
}

func (r *fakeReportRepo) SalesByProductType(_ context.Context) ([]repository.RawCountRow, error) {
	return r.sales, nil
}

func (r *fakeReportRepo) PaymentsByMethod(_ context.Context) ([]repository.RawCountRow, error) {
	if r.failPayments != nil {
		return nil, r.failPayments
	}
	return r.payments, nil
}

func (r *fakeReportRepo) VehiclesByStatus(_ context.Context) ([]repository.RawCountRow, error) {
	return r.vehicles, nil
}

func (r *fakeReportRepo) VehicleSummary(_ context.Context, _ uint) (repository.VehicleSummaryRow, error) {
	return r.summary, nil
}

func TestSafeCount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"42", 42},
		{" 42 ", 42},
		{"42.0", 42},
		{"", 0},
		{"abc", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"-3", -3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, service.SafeCount(tt.in), tt.in)
	}
}

func TestPercentRows(t *testing.T) {
	t.Run("percentages sum from counts", func(t *testing.T) {
		rows := service.PercentRows([]repository.RawCountRow{
			{Label: "ACTIVO", Count: "3"},
			{Label: "INACTIVO", Count: "1"},
		})

		require.Len(t, rows, 2)
		assert.Equal(t, 75.0, rows[0].Percent)
		assert.Equal(t, 25.0, rows[1].Percent)
	})

	t.Run("zero denominator yields zero percent, never NaN", func(t *testing.T) {
		rows := service.PercentRows([]repository.RawCountRow{
			{Label: "ACTIVO", Count: "0"},
			{Label: "INACTIVO", Count: "0"},
		})

		for _, row := range rows {
			assert.Equal(t, 0.0, row.Percent)
		}
	})

	t.Run("non-numeric counts coerce to zero", func(t *testing.T) {
		rows := service.PercentRows([]repository.RawCountRow{
			{Label: "A", Count: "garbage"},
			{Label: "B", Count: "4"},
		})

		assert.Equal(t, int64(0), rows[0].Count)
		assert.Equal(t, 0.0, rows[0].Percent)
		assert.Equal(t, 100.0, rows[1].Percent)
	})
}

func TestReportService_DashboardReport(t *testing.T) {
	ctx := context.Background()

	t.Run("bundles the four breakdowns", func(t *testing.T) {
		repo := &fakeReportRepo{
			members:  []repository.RawCountRow{{Label: "ACTIVO", Count: "8"}},
			sales:    []repository.RawCountRow{{Label: "bracelet", Count: "12"}},
			payments: []repository.RawCountRow{{Label: "cash", Count: "5"}},
			vehicles: []repository.RawCountRow{{Label: "Operational", Count: "2"}},
		}
		svc := service.NewReportService(repo)

		dashboard, err := svc.DashboardReport(ctx)

		require.NoError(t, err)
		assert.Len(t, dashboard.Members, 1)
		assert.Len(t, dashboard.Sales, 1)
		assert.Len(t, dashboard.Payments, 1)
		assert.Len(t, dashboard.Vehicles, 1)
	})

	t.Run("one failing breakdown fails the whole view", func(t *testing.T) {
		repo := &fakeReportRepo{failPayments: errors.New("connection reset")}
		svc := service.NewReportService(repo)

		_, err := svc.DashboardReport(ctx)
		assert.Error(t, err)
	})
}

func TestReportService_VehicleReport(t *testing.T) {
	repo := &fakeReportRepo{
		summary: repository.VehicleSummaryRow{
			VehicleID:        3,
			Plate:            "ABC-123",
			MaintenanceCount: "7",
			InventoryUnits:   "15",
			LastMaintenance:  "2026-08-01",
		},
	}
	svc := service.NewReportService(repo)

	report, err := svc.VehicleReport(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, int64(7), report.MaintenanceCount)
	assert.Equal(t, int64(15), report.InventoryUnits)
	assert.Equal(t, "ABC-123", report.Plate)
}
