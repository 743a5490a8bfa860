package v1

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/homies-gc/homies-api/internal/api/handler/v1/response"
	"github.com/homies-gc/homies-api/internal/api/middleware"
	"github.com/homies-gc/homies-api/internal/domain"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

// getUserFromContext resolves the authenticated user set by the JWT
// middleware.
func getUserFromContext(ctx *gin.Context, uSvc UserService) (domain.User, *response.Err) {
	val, exists := ctx.Get(middleware.ContextKeyUserID)
	if !exists {
		return domain.User{}, response.ErrPermissionDenied(errors.New("missing authentication"))
	}

	userID, ok := val.(uint)
	if !ok {
		return domain.User{}, response.ErrPermissionDenied(errors.New("invalid authentication"))
	}

	user, err := uSvc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		return domain.User{}, response.ErrInternalServerError(fmt.Errorf("uSvc.GetUser -> %w", err))
	}

	return user, nil
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(ctx *gin.Context, name string) (uint, *response.Err) {
	raw := ctx.Param(name)

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %v (%v)", name, raw))
	}

	return uint(id), nil
}
