package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homies-gc/homies-api/internal/api/handler/v1/response"
	"github.com/homies-gc/homies-api/internal/domain"
	"github.com/homies-gc/homies-api/internal/service"
)

type ReportService interface {
	MembersReport(ctx context.Context) ([]service.ReportRow, error)
	SalesReport(ctx context.Context) ([]service.ReportRow, error)
	PaymentsReport(ctx context.Context) ([]service.ReportRow, error)
	VehiclesReport(ctx context.Context) ([]service.ReportRow, error)
	DashboardReport(ctx context.Context) (service.Dashboard, error)
	VehicleReport(ctx context.Context, vehicleID uint) (domain.VehicleReport, error)
}

type ReportHandler struct {
	svc  ReportService
	uSvc UserService
}

func NewReportHandler(svc ReportService, uSvc UserService) *ReportHandler {
	return &ReportHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

func (h *ReportHandler) requireView(ctx *gin.Context) bool {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return false
	}

	if !service.EvaluatePolicy(user.Role).CanViewReports {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v cannot view reports", user.ID)))
		return false
	}

	return true
}

// HandleMembersReport godoc
// @Summary      Member status breakdown with percentages
// @Tags         reportes
// @Produce      json
// @Success      200  {array}   service.ReportRow
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /reportes/miembros [get]
// @Security BearerAuth
func (h *ReportHandler) HandleMembersReport(ctx *gin.Context) {
	h.breakdown(ctx, h.svc.MembersReport)
}

// HandleSalesReport godoc
// @Summary      Sales by product type with percentages
// @Tags         reportes
// @Produce      json
// @Success      200  {array}   service.ReportRow
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /reportes/ventas [get]
// @Security BearerAuth
func (h *ReportHandler) HandleSalesReport(ctx *gin.Context) {
	h.breakdown(ctx, h.svc.SalesReport)
}

// HandlePaymentsReport godoc
// @Summary      Approved payments by method with percentages
// @Tags         reportes
// @Produce      json
// @Success      200  {array}   service.ReportRow
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /reportes/pagos [get]
// @Security BearerAuth
func (h *ReportHandler) HandlePaymentsReport(ctx *gin.Context) {
	h.breakdown(ctx, h.svc.PaymentsReport)
}

// HandleVehiclesReport godoc
// @Summary      Vehicle status breakdown with percentages
// @Tags         reportes
// @Produce      json
// @Success      200  {array}   service.ReportRow
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /reportes/vehiculos [get]
// @Security BearerAuth
func (h *ReportHandler) HandleVehiclesReport(ctx *gin.Context) {
	h.breakdown(ctx, h.svc.VehiclesReport)
}

func (h *ReportHandler) breakdown(ctx *gin.Context, op func(context.Context) ([]service.ReportRow, error)) {
	if !h.requireView(ctx) {
		return
	}

	rows, err := op(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.ReportHandler.breakdown -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, rows)
}

// HandleDashboardReport godoc
// @Summary      All four breakdowns in one response
// @Description  The breakdowns are fetched concurrently; any failure fails the whole view.
// @Tags         reportes
// @Produce      json
// @Success      200  {object}  service.Dashboard
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /reportes/dashboard [get]
// @Security BearerAuth
func (h *ReportHandler) HandleDashboardReport(ctx *gin.Context) {
	if !h.requireView(ctx) {
		return
	}

	dashboard, err := h.svc.DashboardReport(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleDashboardReport -> h.svc.DashboardReport -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, dashboard)
}

// HandleVehicleReport godoc
// @Summary      Per-vehicle maintenance and inventory summary
// @Tags         vehiculos
// @Produce      json
// @Param        vehicleID  path      int  true  "vehicle ID"
// @Success      200        {object}  domain.VehicleReport
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /vehiculos/{vehicleID}/reportes [get]
// @Security BearerAuth
func (h *ReportHandler) HandleVehicleReport(ctx *gin.Context) {
	if !h.requireView(ctx) {
		return
	}

	id, respErr := parseIDParam(ctx, "vehicleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	report, err := h.svc.VehicleReport(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("vehicle", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleVehicleReport -> h.svc.VehicleReport -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, report)
}
