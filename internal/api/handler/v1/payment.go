package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/homies-gc/homies-api/internal/api/handler/v1/request"
	"github.com/homies-gc/homies-api/internal/api/handler/v1/response"
	"github.com/homies-gc/homies-api/internal/domain"
	"github.com/homies-gc/homies-api/internal/service"
	"github.com/homies-gc/homies-api/internal/storage"
)

type PaymentService interface {
	RegisterPayment(ctx context.Context, saleID uint, amountCents int64, method domain.PaymentMethod, receiptPath string) (domain.Payment, error)
	ListPayments(ctx context.Context) ([]domain.Payment, error)
	ListSalePayments(ctx context.Context, saleID uint) ([]domain.Payment, error)
	ApprovePayment(ctx context.Context, paymentID, reviewerID uint) error
	RejectPayment(ctx context.Context, paymentID, reviewerID uint) error
}

type PaymentHandler struct {
	svc   PaymentService
	uSvc  UserService
	store *storage.LocalStore
}

func NewPaymentHandler(svc PaymentService, uSvc UserService, store *storage.LocalStore) *PaymentHandler {
	return &PaymentHandler{
		svc:   svc,
		uSvc:  uSvc,
		store: store,
	}
}

// HandleListPayments godoc
// @Summary      List payments
// @Tags         pagos
// @Produce      json
// @Param        venta  query  int  false  "restrict to one sale"
// @Success      200  {array}   domain.Payment
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /pagos [get]
// @Security BearerAuth
func (h *PaymentHandler) HandleListPayments(ctx *gin.Context) {
	var (
		payments []domain.Payment
		err      error
	)
	if raw := ctx.Query("venta"); raw != "" {
		saleID, parseErr := strconv.ParseUint(raw, 10, 32)
		if parseErr != nil {
			response.RenderErr(ctx, response.ErrBadRequest(parseErr))
			return
		}
		payments, err = h.svc.ListSalePayments(ctx.Request.Context(), uint(saleID))
	} else {
		payments, err = h.svc.ListPayments(ctx.Request.Context())
	}
	if err != nil {
		err = fmt.Errorf("v1.HandleListPayments -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, payments)
}

// HandleRegisterPayment godoc
// @Summary      Register a payment for review
// @Description  Multipart form with a mandatory receipt file. Amount is a 2-decimal string
// @Description  and must not exceed the outstanding balance (total minus approved minus in review).
// @Tags         pagos
// @Accept       mpfd
// @Produce      json
// @Success      201  {object}  domain.Payment
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /pagos [post]
// @Security BearerAuth
func (h *PaymentHandler) HandleRegisterPayment(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	caps := service.EvaluatePolicy(user.Role)
	if !caps.CanSell && !caps.CanReviewPayments {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v cannot register payments", user.ID)))
		return
	}

	var req request.RegisterPaymentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	receiptFile, err := ctx.FormFile("receipt")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrReceiptRequired))
		return
	}

	receiptPath, err := h.store.Save(receiptFile, "receipts")
	if err != nil {
		err = fmt.Errorf("v1.HandleRegisterPayment -> h.store.Save -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	payment, err := h.svc.RegisterPayment(ctx.Request.Context(), req.SaleID, req.AmountCents(), domain.PaymentMethod(req.Method), receiptPath)
	if err != nil {
		var exceeds service.ErrAmountExceedsRemaining
		switch {
		case errors.Is(err, service.ErrSaleNotFound):
			response.RenderErr(ctx, response.ErrNotFound("sale", "ID", req.SaleID))
		case errors.As(err, &exceeds),
			errors.Is(err, service.ErrSaleSettled),
			errors.Is(err, service.ErrSaleNotPayable),
			errors.Is(err, service.ErrReceiptRequired),
			errors.Is(err, service.ErrInvalidPaymentMethod),
			errors.Is(err, domain.ErrInvalidAmount):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleRegisterPayment -> h.svc.RegisterPayment -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, payment)
}

// HandleApprovePayment godoc
// @Summary      Approve an in-review payment
// @Tags         pagos
// @Param        paymentID  path  int  true  "payment ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /pagos/{paymentID}/aprobar [patch]
// @Security BearerAuth
func (h *PaymentHandler) HandleApprovePayment(ctx *gin.Context) {
	h.review(ctx, h.svc.ApprovePayment)
}

// HandleRejectPayment godoc
// @Summary      Reject an in-review payment
// @Tags         pagos
// @Param        paymentID  path  int  true  "payment ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /pagos/{paymentID}/rechazar [patch]
// @Security BearerAuth
func (h *PaymentHandler) HandleRejectPayment(ctx *gin.Context) {
	h.review(ctx, h.svc.RejectPayment)
}

func (h *PaymentHandler) review(ctx *gin.Context, op func(ctx context.Context, paymentID, reviewerID uint) error) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !service.EvaluatePolicy(user.Role).CanReviewPayments {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v cannot review payments", user.ID)))
		return
	}

	id, respErr := parseIDParam(ctx, "paymentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := op(ctx.Request.Context(), id, user.ID); err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			response.RenderErr(ctx, response.ErrNotFound("payment", "ID", id))
		case errors.Is(err, service.ErrPaymentNotInReview):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.PaymentHandler.review -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}
