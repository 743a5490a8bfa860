package v1_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/homies-gc/homies-api/internal/api/handler/v1"
	"github.com/homies-gc/homies-api/internal/api/middleware"
	"github.com/homies-gc/homies-api/internal/config"
	"github.com/homies-gc/homies-api/internal/domain"
	"github.com/homies-gc/homies-api/internal/service"
	"github.com/homies-gc/homies-api/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeUserService resolves every authenticated request to a single user
// carrying a fixed role.
type fakeUserService struct {
	role string
}

func (s *fakeUserService) GetUser(_ context.Context, id uint) (domain.User, error) {
	return domain.User{ID: id, Role: s.role}, nil
}

// newRouter wires routes behind a stand-in for the JWT middleware.
func newRouter(register func(r *gin.RouterGroup)) *gin.Engine {
	router := gin.New()
	group := router.Group("/api/v1", func(ctx *gin.Context) {
		ctx.Set(middleware.ContextKeyUserID, uint(1))
	})
	register(group)

	return router
}

func perform(router *gin.Engine, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

type stubSaleService struct {
	createErr error
}

func (s *stubSaleService) CreateSale(context.Context, uint, uint, []domain.SaleItemInput) (domain.Sale, error) {
	return domain.Sale{}, s.createErr
}

func (s *stubSaleService) ListSales(context.Context) ([]domain.Sale, error) { return nil, nil }

func (s *stubSaleService) GetSaleReconciliation(context.Context, uint) (domain.Sale, domain.Reconciliation, error) {
	return domain.Sale{}, domain.Reconciliation{}, nil
}

func (s *stubSaleService) DeliverSale(context.Context, uint) error { return nil }
func (s *stubSaleService) CancelSale(context.Context, uint) error  { return nil }

type stubPaymentService struct {
	registerErr error
}

func (s *stubPaymentService) RegisterPayment(context.Context, uint, int64, domain.PaymentMethod, string) (domain.Payment, error) {
	return domain.Payment{}, s.registerErr
}

func (s *stubPaymentService) ListPayments(context.Context) ([]domain.Payment, error) {
	return nil, nil
}

func (s *stubPaymentService) ListSalePayments(context.Context, uint) ([]domain.Payment, error) {
	return nil, nil
}

func (s *stubPaymentService) ApprovePayment(context.Context, uint, uint) error { return nil }
func (s *stubPaymentService) RejectPayment(context.Context, uint, uint) error  { return nil }

type stubMemberService struct{}

func (s *stubMemberService) CreateMember(context.Context, domain.Member) (domain.Member, error) {
	return domain.Member{}, nil
}

func (s *stubMemberService) UpdateMember(context.Context, domain.Member) (domain.Member, error) {
	return domain.Member{}, nil
}

func (s *stubMemberService) GetMember(context.Context, uint) (domain.Member, error) {
	return domain.Member{}, nil
}

func (s *stubMemberService) ListMembers(context.Context, string, *bool) ([]domain.Member, error) {
	return nil, nil
}

func (s *stubMemberService) DeactivateMember(context.Context, uint) error { return nil }
func (s *stubMemberService) ReactivateMember(context.Context, uint) error { return nil }

type stubProductService struct{}

func (s *stubProductService) CreateProduct(context.Context, domain.Product) (domain.Product, error) {
	return domain.Product{}, nil
}

func (s *stubProductService) UpdateProduct(context.Context, domain.Product) (domain.Product, error) {
	return domain.Product{}, nil
}

func (s *stubProductService) ListProducts(context.Context) ([]domain.Product, error) {
	return nil, nil
}

func (s *stubProductService) EnableProduct(context.Context, uint) error  { return nil }
func (s *stubProductService) DisableProduct(context.Context, uint) error { return nil }

type stubVehicleService struct{}

func (s *stubVehicleService) CreateVehicle(context.Context, domain.Vehicle) (domain.Vehicle, error) {
	return domain.Vehicle{}, nil
}

func (s *stubVehicleService) UpdateVehicle(context.Context, domain.Vehicle) (domain.Vehicle, error) {
	return domain.Vehicle{}, nil
}

func (s *stubVehicleService) GetVehicle(context.Context, uint) (domain.Vehicle, error) {
	return domain.Vehicle{}, nil
}

func (s *stubVehicleService) ListVehicles(context.Context, string) ([]domain.Vehicle, error) {
	return nil, nil
}

func (s *stubVehicleService) AddMaintenance(context.Context, domain.MaintenanceRecord) (domain.MaintenanceRecord, error) {
	return domain.MaintenanceRecord{}, nil
}

func (s *stubVehicleService) ListMaintenances(context.Context, uint) ([]domain.MaintenanceRecord, error) {
	return nil, nil
}

func (s *stubVehicleService) AssignInventory(context.Context, domain.VehicleInventoryItem) (domain.VehicleInventoryItem, error) {
	return domain.VehicleInventoryItem{}, nil
}

func (s *stubVehicleService) ListInventory(context.Context, uint) ([]domain.VehicleInventoryItem, error) {
	return nil, nil
}

type stubReportService struct{}

func (s *stubReportService) MembersReport(context.Context) ([]service.ReportRow, error) {
	return nil, nil
}

func (s *stubReportService) SalesReport(context.Context) ([]service.ReportRow, error) {
	return nil, nil
}

func (s *stubReportService) PaymentsReport(context.Context) ([]service.ReportRow, error) {
	return nil, nil
}

func (s *stubReportService) VehiclesReport(context.Context) ([]service.ReportRow, error) {
	return nil, nil
}

func (s *stubReportService) DashboardReport(context.Context) (service.Dashboard, error) {
	return service.Dashboard{}, nil
}

func (s *stubReportService) VehicleReport(context.Context, uint) (domain.VehicleReport, error) {
	return domain.VehicleReport{}, nil
}

func TestSaleHandler_HandleCreateSale(t *testing.T) {
	t.Run("stock conflict names the product and its stock", func(t *testing.T) {
		svc := &stubSaleService{
			createErr: fmt.Errorf("%w: %q has %d units left", service.ErrInsufficientStock, "Pulsera", 3),
		}
		handler := v1.NewSaleHandler(svc, &fakeUserService{role: domain.RoleVendedor})
		router := newRouter(func(r *gin.RouterGroup) {
			r.POST("/ventas", handler.HandleCreateSale)
		})

		body := `{"buyer_id":10,"items":[{"product_id":1,"quantity":4}]}`
		rec := perform(router, http.MethodPost, "/api/v1/ventas", strings.NewReader(body), "application/json")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Pulsera")
		assert.Contains(t, rec.Body.String(), "3 units left")
	})
}

func TestPaymentHandler_HandleRegisterPayment(t *testing.T) {
	registerBody := func(t *testing.T) (*bytes.Buffer, string) {
		t.Helper()

		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		require.NoError(t, w.WriteField("sale_id", "1"))
		require.NoError(t, w.WriteField("amount", "40.50"))
		require.NoError(t, w.WriteField("method", "cash"))
		part, err := w.CreateFormFile("receipt", "receipt.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte("not-really-a-jpeg"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		return &buf, w.FormDataContentType()
	}

	t.Run("amount above the remaining balance reports the exact amount", func(t *testing.T) {
		svc := &stubPaymentService{
			registerErr: service.ErrAmountExceedsRemaining{RemainingCents: 1000},
		}
		handler := v1.NewPaymentHandler(svc, &fakeUserService{role: domain.RoleVendedor}, storage.NewLocalStore(t.TempDir()))
		router := newRouter(func(r *gin.RouterGroup) {
			r.POST("/pagos", handler.HandleRegisterPayment)
		})

		body, contentType := registerBody(t)
		rec := perform(router, http.MethodPost, "/api/v1/pagos", body, contentType)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "remaining balance of 10.00")
	})

	t.Run("missing receipt file", func(t *testing.T) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		require.NoError(t, w.WriteField("sale_id", "1"))
		require.NoError(t, w.WriteField("amount", "40.50"))
		require.NoError(t, w.WriteField("method", "cash"))
		require.NoError(t, w.Close())

		handler := v1.NewPaymentHandler(&stubPaymentService{}, &fakeUserService{role: domain.RoleVendedor}, storage.NewLocalStore(t.TempDir()))
		router := newRouter(func(r *gin.RouterGroup) {
			r.POST("/pagos", handler.HandleRegisterPayment)
		})

		rec := perform(router, http.MethodPost, "/api/v1/pagos", &buf, w.FormDataContentType())

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "receipt")
	})
}

// newPolicyRouter mounts every policy-gated route over stub services so the
// role checks can be exercised in isolation.
func newPolicyRouter(t *testing.T, role string) *gin.Engine {
	t.Helper()

	uSvc := &fakeUserService{role: role}
	store := storage.NewLocalStore(t.TempDir())
	conf := &config.APIConfig{}

	memberHandler := v1.NewMemberHandler(conf, &stubMemberService{}, uSvc, store)
	productHandler := v1.NewProductHandler(&stubProductService{}, uSvc, store)
	saleHandler := v1.NewSaleHandler(&stubSaleService{}, uSvc)
	paymentHandler := v1.NewPaymentHandler(&stubPaymentService{}, uSvc, store)
	vehicleHandler := v1.NewVehicleHandler(&stubVehicleService{}, uSvc, store)
	reportHandler := v1.NewReportHandler(&stubReportService{}, uSvc)

	return newRouter(func(r *gin.RouterGroup) {
		r.POST("/miembros", memberHandler.HandleCreateMember)
		r.POST("/productos", productHandler.HandleCreateProduct)
		r.POST("/ventas", saleHandler.HandleCreateSale)
		r.POST("/pagos", paymentHandler.HandleRegisterPayment)
		r.PATCH("/pagos/:paymentID/aprobar", paymentHandler.HandleApprovePayment)
		r.POST("/vehiculos", vehicleHandler.HandleCreateVehicle)
		r.GET("/reportes/dashboard", reportHandler.HandleDashboardReport)
	})
}

func TestPolicyGates(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		method string
		target string
	}{
		{"vendedor cannot create members", domain.RoleVendedor, http.MethodPost, "/api/v1/miembros"},
		{"rpp cannot create products", domain.RoleRPP, http.MethodPost, "/api/v1/productos"},
		{"directiva cannot sell", domain.RoleDirectiva, http.MethodPost, "/api/v1/ventas"},
		{"rpp cannot register payments", domain.RoleRPP, http.MethodPost, "/api/v1/pagos"},
		{"vendedor cannot approve payments", domain.RoleVendedor, http.MethodPatch, "/api/v1/pagos/1/aprobar"},
		{"vendedor cannot manage vehicles", domain.RoleVendedor, http.MethodPost, "/api/v1/vehiculos"},
		{"vendedor cannot view reports", domain.RoleVendedor, http.MethodGet, "/api/v1/reportes/dashboard"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := perform(newPolicyRouter(t, tc.role), tc.method, tc.target, nil, "")

			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.Contains(t, rec.Body.String(), "cannot")
		})
	}

	t.Run("reviewer role passes the gate", func(t *testing.T) {
		rec := perform(newPolicyRouter(t, domain.RoleDirectiva), http.MethodPatch, "/api/v1/pagos/1/aprobar", nil, "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
