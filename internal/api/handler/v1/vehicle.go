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

type VehicleService interface {
	CreateVehicle(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error)
	GetVehicle(ctx context.Context, id uint) (domain.Vehicle, error)
	ListVehicles(ctx context.Context, search string) ([]domain.Vehicle, error)
	AddMaintenance(ctx context.Context, record domain.MaintenanceRecord) (domain.MaintenanceRecord, error)
	ListMaintenances(ctx context.Context, vehicleID uint) ([]domain.MaintenanceRecord, error)
	AssignInventory(ctx context.Context, item domain.VehicleInventoryItem) (domain.VehicleInventoryItem, error)
	ListInventory(ctx context.Context, vehicleID uint) ([]domain.VehicleInventoryItem, error)
}

type VehicleHandler struct {
	svc   VehicleService
	uSvc  UserService
	store *storage.LocalStore
}

func NewVehicleHandler(svc VehicleService, uSvc UserService, store *storage.LocalStore) *VehicleHandler {
	return &VehicleHandler{
		svc:   svc,
		uSvc:  uSvc,
		store: store,
	}
}

func (h *VehicleHandler) requireManage(ctx *gin.Context) bool {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return false
	}

	if !service.EvaluatePolicy(user.Role).CanManageVehicles {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v cannot manage vehicles", user.ID)))
		return false
	}

	return true
}

// HandleListVehicles godoc
// @Summary      List vehicles
// @Description  The search matches case-insensitively on plate, brand+model, type and nomination.
// @Tags         vehiculos
// @Produce      json
// @Param        buscar  query     string  false  "free text search"
// @Success      200     {array}   domain.Vehicle
// @Failure      500     {object}  response.Err
// @Router       /vehiculos [get]
// @Security BearerAuth
func (h *VehicleHandler) HandleListVehicles(ctx *gin.Context) {
	vehicles, err := h.svc.ListVehicles(ctx.Request.Context(), ctx.Query("buscar"))
	if err != nil {
		err = fmt.Errorf("v1.HandleListVehicles -> h.svc.ListVehicles -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, vehicles)
}

// HandleGetVehicle godoc
// @Summary      Get a vehicle
// @Tags         vehiculos
// @Produce      json
// @Param        vehicleID  path      int  true  "vehicle ID"
// @Success      200        {object}  domain.Vehicle
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /vehiculos/{vehicleID} [get]
// @Security BearerAuth
func (h *VehicleHandler) HandleGetVehicle(ctx *gin.Context) {
	id, respErr := parseIDParam(ctx, "vehicleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	vehicle, err := h.svc.GetVehicle(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("vehicle", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetVehicle -> h.svc.GetVehicle -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, vehicle)
}

// HandleCreateVehicle godoc
// @Summary      Register a vehicle
// @Tags         vehiculos
// @Accept       mpfd
// @Produce      json
// @Success      201  {object}  domain.Vehicle
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /vehiculos [post]
// @Security BearerAuth
func (h *VehicleHandler) HandleCreateVehicle(ctx *gin.Context) {
	if !h.requireManage(ctx) {
		return
	}

	var req request.VehicleRequest
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

	vehicle, err := h.svc.CreateVehicle(ctx.Request.Context(), domain.Vehicle{
		Plate:      req.Plate,
		Brand:      req.Brand,
		Model:      req.Model,
		Type:       req.Type,
		Status:     domain.VehicleStatus(req.Status),
		Nomination: req.Nomination,
		PhotoPath:  photoPath,
	})
	if err != nil {
		if errors.Is(err, service.ErrVehiclePlateExists) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrVehiclePlateExists))
			return
		}

		err = fmt.Errorf("v1.HandleCreateVehicle -> h.svc.CreateVehicle -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, vehicle)
}

// HandleUpdateVehicle godoc
// @Summary      Update a vehicle
// @Tags         vehiculos
// @Accept       mpfd
// @Produce      json
// @Param        vehicleID  path      int  true  "vehicle ID"
// @Success      200        {object}  domain.Vehicle
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /vehiculos/{vehicleID} [put]
// @Security BearerAuth
func (h *VehicleHandler) HandleUpdateVehicle(ctx *gin.Context) {
	if !h.requireManage(ctx) {
		return
	}

	id, respErr := parseIDParam(ctx, "vehicleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.VehicleRequest
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

	vehicle, err := h.svc.UpdateVehicle(ctx.Request.Context(), domain.Vehicle{
		ID:         id,
		Plate:      req.Plate,
		Brand:      req.Brand,
		Model:      req.Model,
		Type:       req.Type,
		Status:     domain.VehicleStatus(req.Status),
		Nomination: req.Nomination,
		PhotoPath:  photoPath,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVehicleNotFound):
			response.RenderErr(ctx, response.ErrNotFound("vehicle", "ID", id))
		case errors.Is(err, service.ErrVehiclePlateExists):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrVehiclePlateExists))
		default:
			err = fmt.Errorf("v1.HandleUpdateVehicle -> h.svc.UpdateVehicle -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, vehicle)
}

// HandleAddMaintenance godoc
// @Summary      Record a maintenance intervention
// @Description  Multipart form; the PDF attachment is optional.
// @Tags         vehiculos
// @Accept       mpfd
// @Produce      json
// @Param        vehicleID  path      int  true  "vehicle ID"
// @Success      201        {object}  domain.MaintenanceRecord
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /vehiculos/{vehicleID}/mantenimientos [post]
// @Security BearerAuth
func (h *VehicleHandler) HandleAddMaintenance(ctx *gin.Context) {
	if !h.requireManage(ctx) {
		return
	}

	id, respErr := parseIDParam(ctx, "vehicleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.MaintenanceRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	attachmentPath := ""
	if file, err := ctx.FormFile("attachment"); err == nil {
		attachmentPath, err = h.store.Save(file, "maintenances")
		if err != nil {
			err = fmt.Errorf("v1.HandleAddMaintenance -> h.store.Save -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}
	}

	record, err := h.svc.AddMaintenance(ctx.Request.Context(), domain.MaintenanceRecord{
		VehicleID:      id,
		Date:           req.ParsedDate(),
		Description:    req.Description,
		AttachmentPath: attachmentPath,
	})
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("vehicle", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleAddMaintenance -> h.svc.AddMaintenance -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, record)
}

// HandleListMaintenances godoc
// @Summary      List maintenance records, newest first
// @Tags         vehiculos
// @Produce      json
// @Param        vehicleID  path      int  true  "vehicle ID"
// @Success      200        {array}   domain.MaintenanceRecord
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /vehiculos/{vehicleID}/mantenimientos [get]
// @Security BearerAuth
func (h *VehicleHandler) HandleListMaintenances(ctx *gin.Context) {
	id, respErr := parseIDParam(ctx, "vehicleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	records, err := h.svc.ListMaintenances(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("vehicle", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleListMaintenances -> h.svc.ListMaintenances -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, records)
}

// HandleAssignInventory godoc
// @Summary      Assign a product quantity to a vehicle
// @Description  Quantity zero removes the assignment.
// @Tags         vehiculos
// @Accept       json
// @Produce      json
// @Param        vehicleID  path      int                             true  "vehicle ID"
// @Param        request    body      request.AssignInventoryRequest  true  "request body"
// @Success      200        {object}  domain.VehicleInventoryItem
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /vehiculos/{vehicleID}/inventario [post]
// @Security BearerAuth
func (h *VehicleHandler) HandleAssignInventory(ctx *gin.Context) {
	if !h.requireManage(ctx) {
		return
	}

	id, respErr := parseIDParam(ctx, "vehicleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.AssignInventoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	item, err := h.svc.AssignInventory(ctx.Request.Context(), domain.VehicleInventoryItem{
		VehicleID: id,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVehicleNotFound):
			response.RenderErr(ctx, response.ErrNotFound("vehicle", "ID", id))
		case errors.Is(err, service.ErrProductNotFound):
			response.RenderErr(ctx, response.ErrNotFound("product", "ID", req.ProductID))
		default:
			err = fmt.Errorf("v1.HandleAssignInventory -> h.svc.AssignInventory -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, item)
}

// HandleListInventory godoc
// @Summary      List the products assigned to a vehicle
// @Tags         vehiculos
// @Produce      json
// @Param        vehicleID  path      int  true  "vehicle ID"
// @Success      200        {array}   domain.VehicleInventoryItem
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /vehiculos/{vehicleID}/inventario [get]
// @Security BearerAuth
func (h *VehicleHandler) HandleListInventory(ctx *gin.Context) {
	id, respErr := parseIDParam(ctx, "vehicleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	items, err := h.svc.ListInventory(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("vehicle", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleListInventory -> h.svc.ListInventory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, items)
}

func (h *VehicleHandler) savePhoto(ctx *gin.Context) (string, *response.Err) {
	file, err := ctx.FormFile("photo")
	if err != nil {
		return "", nil
	}

	path, err := h.store.Save(file, "vehicles")
	if err != nil {
		return "", response.ErrInternalServerError(fmt.Errorf("v1.VehicleHandler.savePhoto -> %w", err))
	}

	return path, nil
}
