package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homies-gc/homies-api/internal/api/handler/v1/request"
	"github.com/homies-gc/homies-api/internal/api/handler/v1/response"
	"github.com/homies-gc/homies-api/internal/domain"
	"github.com/homies-gc/homies-api/internal/service"
	"github.com/homies-gc/homies-api/internal/storage"
)

type ProductService interface {
	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	EnableProduct(ctx context.Context, id uint) error
	DisableProduct(ctx context.Context, id uint) error
}

type ProductHandler struct {
	svc   ProductService
	uSvc  UserService
	store *storage.LocalStore
}

func NewProductHandler(svc ProductService, uSvc UserService, store *storage.LocalStore) *ProductHandler {
	return &ProductHandler{
		svc:   svc,
		uSvc:  uSvc,
		store: store,
	}
}

func (h *ProductHandler) requireManage(ctx *gin.Context) bool {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return false
	}

	if !service.EvaluatePolicy(user.Role).CanManageProducts {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v cannot manage products", user.ID)))
		return false
	}

	return true
}

// HandleListProducts godoc
// @Summary      List products
// @Tags         productos
// @Produce      json
// @Success      200  {array}   domain.Product
// @Failure      500  {object}  response.Err
// @Router       /productos [get]
// @Security BearerAuth
func (h *ProductHandler) HandleListProducts(ctx *gin.Context) {
	products, err := h.svc.ListProducts(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListProducts -> h.svc.ListProducts -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, products)
}

// HandleCreateProduct godoc
// @Summary      Create a product
// @Description  Multipart form; the photo file is optional. Price is a 2-decimal string.
// @Tags         productos
// @Accept       mpfd
// @Produce      json
// @Success      201  {object}  domain.Product
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /productos [post]
// @Security BearerAuth
func (h *ProductHandler) HandleCreateProduct(ctx *gin.Context) {
	if !h.requireManage(ctx) {
		return
	}

	var req request.ProductRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	photoPath, respErr := h.savePhoto(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	product, err := h.svc.CreateProduct(ctx.Request.Context(), domain.Product{
		Name:       req.Name,
		Type:       domain.ProductType(req.Type),
		PriceCents: req.PriceCents(),
		Stock:      req.Stock,
		Sellable:   true,
		PhotoPath:  photoPath,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateProduct -> h.svc.CreateProduct -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, product)
}

// HandleUpdateProduct godoc
// @Summary      Update a product
// @Description  Stock and the sellable flag are not editable here; stock only moves with sales.
// @Tags         productos
// @Accept       mpfd
// @Produce      json
// @Param        productID  path      int  true  "product ID"
// @Success      200        {object}  domain.Product
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /productos/{productID} [put]
// @Security BearerAuth
func (h *ProductHandler) HandleUpdateProduct(ctx *gin.Context) {
	if !h.requireManage(ctx) {
		return
	}

	id, respErr := parseIDParam(ctx, "productID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ProductRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	photoPath, respErr := h.savePhoto(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	product, err := h.svc.UpdateProduct(ctx.Request.Context(), domain.Product{
		ID:         id,
		Name:       req.Name,
		Type:       domain.ProductType(req.Type),
		PriceCents: req.PriceCents(),
		PhotoPath:  photoPath,
	})
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("product", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateProduct -> h.svc.UpdateProduct -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// HandleEnableProduct godoc
// @Summary      Mark a product as sellable
// @Tags         productos
// @Param        productID  path  int  true  "product ID"
// @Success      204
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /productos/{productID}/habilitar [patch]
// @Security BearerAuth
func (h *ProductHandler) HandleEnableProduct(ctx *gin.Context) {
	h.setSellable(ctx, h.svc.EnableProduct)
}

// HandleDisableProduct godoc
// @Summary      Mark a product as not sellable
// @Tags         productos
// @Param        productID  path  int  true  "product ID"
// @Success      204
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /productos/{productID}/deshabilitar [patch]
// @Security BearerAuth
func (h *ProductHandler) HandleDisableProduct(ctx *gin.Context) {
	h.setSellable(ctx, h.svc.DisableProduct)
}

func (h *ProductHandler) setSellable(ctx *gin.Context, op func(context.Context, uint) error) {
	if !h.requireManage(ctx) {
		return
	}

	id, respErr := parseIDParam(ctx, "productID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := op(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("product", "ID", id))
			return
		}

		err = fmt.Errorf("v1.ProductHandler.setSellable -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *ProductHandler) savePhoto(ctx *gin.Context) (string, *response.Err) {
	file, err := ctx.FormFile("photo")
	if err != nil {
		return "", nil
	}

	path, err := h.store.Save(file, "products")
	if err != nil {
		return "", response.ErrInternalServerError(fmt.Errorf("v1.ProductHandler.savePhoto -> %w", err))
	}

	return path, nil
}
