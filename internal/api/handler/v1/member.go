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
	"github.com/homies-gc/homies-api/internal/config"
	"github.com/homies-gc/homies-api/internal/domain"
	"github.com/homies-gc/homies-api/internal/pkg/pdfkit"
	"github.com/homies-gc/homies-api/internal/service"
	"github.com/homies-gc/homies-api/internal/storage"
)

type MemberService interface {
	CreateMember(ctx context.Context, member domain.Member) (domain.Member, error)
	UpdateMember(ctx context.Context, member domain.Member) (domain.Member, error)
	GetMember(ctx context.Context, id uint) (domain.Member, error)
	ListMembers(ctx context.Context, search string, active *bool) ([]domain.Member, error)
	DeactivateMember(ctx context.Context, id uint) error
	ReactivateMember(ctx context.Context, id uint) error
}

type MemberHandler struct {
	conf  *config.APIConfig
	svc   MemberService
	uSvc  UserService
	store *storage.LocalStore
}

func NewMemberHandler(conf *config.APIConfig, svc MemberService, uSvc UserService, store *storage.LocalStore) *MemberHandler {
	return &MemberHandler{
		conf:  conf,
		svc:   svc,
		uSvc:  uSvc,
		store: store,
	}
}

func (h *MemberHandler) requireManage(ctx *gin.Context) (domain.User, bool) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return domain.User{}, false
	}

	if !service.EvaluatePolicy(user.Role).CanManageMembers {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v cannot manage members", user.ID)))
		return domain.User{}, false
	}

	return user, true
}

// HandleListMembers godoc
// @Summary      List members
// @Tags         miembros
// @Produce      json
// @Param        buscar  query     string  false  "free text over names and CI"
// @Param        activo  query     bool    false  "filter by active state"
// @Success      200     {array}   domain.Member
// @Failure      500     {object}  response.Err
// @Router       /miembros [get]
// @Security BearerAuth
func (h *MemberHandler) HandleListMembers(ctx *gin.Context) {
	var active *bool
	if raw, ok := ctx.GetQuery("activo"); ok {
		val := raw == "true" || raw == "1"
		active = &val
	}

	members, err := h.svc.ListMembers(ctx.Request.Context(), ctx.Query("buscar"), active)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMembers -> h.svc.ListMembers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, members)
}

// HandleGetMember godoc
// @Summary      Get a member
// @Tags         miembros
// @Produce      json
// @Param        memberID  path      int  true  "member ID"
// @Success      200       {object}  domain.Member
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /miembros/{memberID} [get]
// @Security BearerAuth
func (h *MemberHandler) HandleGetMember(ctx *gin.Context) {
	id, respErr := parseIDParam(ctx, "memberID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	member, err := h.svc.GetMember(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("member", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetMember -> h.svc.GetMember -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, member)
}

// HandleCreateMember godoc
// @Summary      Create a member
// @Description  Multipart form; the photo file is optional.
// @Tags         miembros
// @Accept       mpfd
// @Produce      json
// @Success      201  {object}  domain.Member
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /miembros [post]
// @Security BearerAuth
func (h *MemberHandler) HandleCreateMember(ctx *gin.Context) {
	if _, ok := h.requireManage(ctx); !ok {
		return
	}

	var req request.MemberRequest
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

	member, err := h.svc.CreateMember(ctx.Request.Context(), domain.Member{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		CI:           req.CI,
		CIExpedition: req.CIExpedition,
		BirthDate:    req.ParsedBirthDate(),
		Phone:        req.Phone,
		PhotoPath:    photoPath,
	})
	if err != nil {
		if errors.Is(err, service.ErrMemberCIExists) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrMemberCIExists))
			return
		}

		err = fmt.Errorf("v1.HandleCreateMember -> h.svc.CreateMember -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, member)
}

// HandleUpdateMember godoc
// @Summary      Update a member
// @Tags         miembros
// @Accept       mpfd
// @Produce      json
// @Param        memberID  path      int  true  "member ID"
// @Success      200       {object}  domain.Member
// @Failure      400       {object}  response.Err
// @Failure      403       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /miembros/{memberID} [put]
// @Security BearerAuth
func (h *MemberHandler) HandleUpdateMember(ctx *gin.Context) {
	if _, ok := h.requireManage(ctx); !ok {
		return
	}

	id, respErr := parseIDParam(ctx, "memberID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.MemberRequest
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

	member, err := h.svc.UpdateMember(ctx.Request.Context(), domain.Member{
		ID:           id,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		CI:           req.CI,
		CIExpedition: req.CIExpedition,
		BirthDate:    req.ParsedBirthDate(),
		Phone:        req.Phone,
		PhotoPath:    photoPath,
	})
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("member", "ID", id))
			return
		}
		if errors.Is(err, service.ErrMemberCIExists) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrMemberCIExists))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateMember -> h.svc.UpdateMember -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, member)
}

// HandleDeactivateMember godoc
// @Summary      Deactivate a member
// @Tags         miembros
// @Produce      json
// @Param        memberID  path  int  true  "member ID"
// @Success      204
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /miembros/{memberID}/baja [patch]
// @Security BearerAuth
func (h *MemberHandler) HandleDeactivateMember(ctx *gin.Context) {
	h.setActive(ctx, h.svc.DeactivateMember)
}

// HandleReactivateMember godoc
// @Summary      Reactivate a member
// @Tags         miembros
// @Produce      json
// @Param        memberID  path  int  true  "member ID"
// @Success      204
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /miembros/{memberID}/reactivar [patch]
// @Security BearerAuth
func (h *MemberHandler) HandleReactivateMember(ctx *gin.Context) {
	h.setActive(ctx, h.svc.ReactivateMember)
}

func (h *MemberHandler) setActive(ctx *gin.Context, op func(context.Context, uint) error) {
	if _, ok := h.requireManage(ctx); !ok {
		return
	}

	id, respErr := parseIDParam(ctx, "memberID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := op(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("member", "ID", id))
			return
		}

		err = fmt.Errorf("v1.MemberHandler.setActive -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleMemberCredential godoc
// @Summary      Download the member credential PDF
// @Tags         miembros
// @Produce      application/pdf
// @Param        memberID  path  int  true  "member ID"
// @Success      200  {file}    file
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /miembros/{memberID}/credencial [get]
// @Security BearerAuth
func (h *MemberHandler) HandleMemberCredential(ctx *gin.Context) {
	id, respErr := parseIDParam(ctx, "memberID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	member, err := h.svc.GetMember(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("member", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleMemberCredential -> h.svc.GetMember -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	data := pdfkit.CredentialData{
		FullName:  member.FullName(),
		CI:        fmt.Sprintf("%s %s", member.CI, member.CIExpedition),
		Initials:  member.Initials(),
		PhotoPath: h.store.Abs(member.PhotoPath),
		VerifyURL: fmt.Sprintf("%s/verificar/%s", h.conf.PublicBaseURL, member.CredentialUUID),
		Active:    member.Active,
	}

	var buf bytes.Buffer
	if err := pdfkit.RenderCredential(data, &buf); err != nil {
		err = fmt.Errorf("v1.HandleMemberCredential -> pdfkit.RenderCredential -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="credencial-%d.pdf"`, member.ID))
	ctx.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (h *MemberHandler) savePhoto(ctx *gin.Context) (string, *response.Err) {
	file, err := ctx.FormFile("photo")
	if err != nil {
		// The photo is optional.
		return "", nil
	}

	path, err := h.store.Save(file, "members")
	if err != nil {
		return "", response.ErrInternalServerError(fmt.Errorf("v1.MemberHandler.savePhoto -> %w", err))
	}

	return path, nil
}
