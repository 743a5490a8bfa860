package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homies-gc/homies-api/internal/api/handler/v1/response"
	"github.com/homies-gc/homies-api/internal/config"
	"github.com/homies-gc/homies-api/internal/domain"
	"github.com/homies-gc/homies-api/internal/pkg/imageurl"
	"github.com/homies-gc/homies-api/internal/service"
)

type CredentialVerifier interface {
	VerifyCredential(ctx context.Context, credentialUUID string) (domain.PublicCredential, error)
}

// VerifyHandler serves the unauthenticated credential check behind the QR
// on printed credentials.
type VerifyHandler struct {
	conf *config.APIConfig
	svc  CredentialVerifier
}

func NewVerifyHandler(conf *config.APIConfig, svc CredentialVerifier) *VerifyHandler {
	return &VerifyHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleVerifyCredential godoc
// @Summary      Verify a member credential
// @Description  Public endpoint resolved from the QR code on the printed credential.
// @Tags         verificar
// @Produce      json
// @Param        uuid  path      string  true  "credential UUID"
// @Success      200   {object}  domain.PublicCredential
// @Failure      404   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /verificar/{uuid} [get]
func (h *VerifyHandler) HandleVerifyCredential(ctx *gin.Context) {
	credentialUUID := ctx.Param("uuid")

	credential, err := h.svc.VerifyCredential(ctx.Request.Context(), credentialUUID)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("credential", "UUID", credentialUUID))
			return
		}

		err = fmt.Errorf("v1.HandleVerifyCredential -> h.svc.VerifyCredential -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	credential.PhotoPath = imageurl.Normalize(credential.PhotoPath, h.conf.ProductionImageHost)

	ctx.JSON(http.StatusOK, credential)
}
