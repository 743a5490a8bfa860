package v1

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homies-gc/homies-api/internal/api/handler/v1/request"
	"github.com/homies-gc/homies-api/internal/api/handler/v1/response"
	"github.com/homies-gc/homies-api/internal/domain"
	"github.com/homies-gc/homies-api/internal/pkg/pdfkit"
	"github.com/homies-gc/homies-api/internal/service"
)

type SaleService interface {
	CreateSale(ctx context.Context, buyerID, sellerID uint, items []domain.SaleItemInput) (domain.Sale, error)
	ListSales(ctx context.Context) ([]domain.Sale, error)
	GetSaleReconciliation(ctx context.Context, id uint) (domain.Sale, domain.Reconciliation, error)
	DeliverSale(ctx context.Context, id uint) error
	CancelSale(ctx context.Context, id uint) error
}

type SaleHandler struct {
	svc  SaleService
	uSvc UserService
}

func NewSaleHandler(svc SaleService, uSvc UserService) *SaleHandler {
	return &SaleHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

func (h *SaleHandler) requireSell(ctx *gin.Context) (domain.User, bool) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return domain.User{}, false
	}

	if !service.EvaluatePolicy(user.Role).CanSell {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v cannot sell", user.ID)))
		return domain.User{}, false
	}

	return user, true
}

// HandleListSales godoc
// @Summary      List sales
// @Tags         ventas
// @Produce      json
// @Success      200  {array}   domain.Sale
// @Failure      500  {object}  response.Err
// @Router       /ventas [get]
// @Security BearerAuth
func (h *SaleHandler) HandleListSales(ctx *gin.Context) {
	sales, err := h.svc.ListSales(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListSales -> h.svc.ListSales -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, sales)
}

// HandleGetSale godoc
// @Summary      Get a sale with its reconciliation
// @Tags         ventas
// @Produce      json
// @Param        saleID  path      int  true  "sale ID"
// @Success      200     {object}  response.SaleResponse
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /ventas/{saleID} [get]
// @Security BearerAuth
func (h *SaleHandler) HandleGetSale(ctx *gin.Context) {
	id, respErr := parseIDParam(ctx, "saleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	sale, rec, err := h.svc.GetSaleReconciliation(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSaleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("sale", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetSale -> h.svc.GetSaleReconciliation -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSaleResponse(sale, rec))
}

// HandleCreateSale godoc
// @Summary      Create a sale
// @Description  Quantities are re-validated against stock inside the insert transaction.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateSaleRequest  true  "request body"
// @Success      201      {object}  domain.Sale
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /ventas [post]
// @Security BearerAuth
func (h *SaleHandler) HandleCreateSale(ctx *gin.Context) {
	user, ok := h.requireSell(ctx)
	if !ok {
		return
	}

	var req request.CreateSaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	sale, err := h.svc.CreateSale(ctx.Request.Context(), req.BuyerID, user.ID, req.DomainItems())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInsufficientStock):
			// The stock message is kept distinct so the client can react to it.
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrMemberNotFound):
			response.RenderErr(ctx, response.ErrNotFound("member", "ID", req.BuyerID))
		case errors.Is(err, service.ErrNoBuyer),
			errors.Is(err, service.ErrEmptyCart),
			errors.Is(err, service.ErrProductNotFound),
			errors.Is(err, service.ErrProductNotSellable):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleCreateSale -> h.svc.CreateSale -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, sale)
}

// HandleDeliverSale godoc
// @Summary      Mark a fully paid sale as delivered
// @Tags         ventas
// @Param        saleID  path  int  true  "sale ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /ventas/{saleID}/entregar [patch]
// @Security BearerAuth
func (h *SaleHandler) HandleDeliverSale(ctx *gin.Context) {
	if _, ok := h.requireSell(ctx); !ok {
		return
	}

	id, respErr := parseIDParam(ctx, "saleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeliverSale(ctx.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrSaleNotFound):
			response.RenderErr(ctx, response.ErrNotFound("sale", "ID", id))
		case errors.Is(err, service.ErrSaleNotPaid):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleDeliverSale -> h.svc.DeliverSale -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleCancelSale godoc
// @Summary      Void a sale
// @Description  Restores stock and auto-rejects in-review payments. Refused when any payment was approved.
// @Tags         ventas
// @Param        saleID  path  int  true  "sale ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /ventas/{saleID}/cancelar [patch]
// @Security BearerAuth
func (h *SaleHandler) HandleCancelSale(ctx *gin.Context) {
	if _, ok := h.requireSell(ctx); !ok {
		return
	}

	id, respErr := parseIDParam(ctx, "saleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.CancelSale(ctx.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrSaleNotFound):
			response.RenderErr(ctx, response.ErrNotFound("sale", "ID", id))
		case errors.Is(err, service.ErrSaleAlreadyResolved), errors.Is(err, service.ErrSaleHasPayments):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleCancelSale -> h.svc.CancelSale -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleSaleVoucher godoc
// @Summary      Download the sale voucher PDF
// @Description  Titled as a reservation receipt while a balance remains, a delivery note once settled.
// @Tags         ventas
// @Produce      application/pdf
// @Param        saleID  path  int  true  "sale ID"
// @Success      200  {file}    file
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /ventas/{saleID}/recibo [get]
// @Security BearerAuth
func (h *SaleHandler) HandleSaleVoucher(ctx *gin.Context) {
	id, respErr := parseIDParam(ctx, "saleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	sale, rec, err := h.svc.GetSaleReconciliation(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSaleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("sale", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleSaleVoucher -> h.svc.GetSaleReconciliation -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	lines := make([]pdfkit.VoucherLine, 0, len(sale.Items))
	for _, item := range sale.Items {
		lines = append(lines, pdfkit.VoucherLine{
			Name:           item.ProductName,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			SubtotalCents:  item.SubtotalCents,
		})
	}

	data := pdfkit.VoucherData{
		SaleID:         sale.ID,
		Reference:      fmt.Sprintf("venta:%d", sale.ID),
		BuyerName:      sale.BuyerName,
		Seller:         sale.SellerName,
		IssuedAt:       sale.CreatedAt.Format("2006-01-02"),
		Lines:          lines,
		TotalCents:     rec.TotalCents,
		PaidCents:      rec.PaidCents,
		InReviewCents:  rec.InReviewCents,
		RemainingCents: rec.RemainingCents(),
	}

	var buf bytes.Buffer
	if err := pdfkit.RenderVoucher(data, &buf); err != nil {
		err = fmt.Errorf("v1.HandleSaleVoucher -> pdfkit.RenderVoucher -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="venta-%d.pdf"`, sale.ID))
	ctx.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
