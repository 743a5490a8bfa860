package response

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the JSON error envelope. The HTTP status travels out of band.
type Err struct {
	statusCode int
	cause      error

	Msg string `json:"msg"`
}

func (e *Err) Error() string {
	return e.Msg
}

func NewErr(statusCode int, msg string) *Err {
	return &Err{
		statusCode: statusCode,
		Msg:        msg,
	}
}

// RenderErr writes the envelope. Server-side failures are logged with the
// request ID for correlation; the client only sees the generic message.
func RenderErr(ctx *gin.Context, err *Err) {
	if err.statusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("path", ctx.FullPath()),
			zap.Error(err.cause),
		)
	}

	ctx.AbortWithStatusJSON(err.statusCode, err)
}

func ErrBadRequest(err error) *Err {
	return NewErr(http.StatusBadRequest, err.Error())
}

func ErrWrongCredentials(err error) *Err {
	e := NewErr(http.StatusUnauthorized, "wrong credentials")
	e.cause = err

	return e
}

func ErrPermissionDenied(err error) *Err {
	return NewErr(http.StatusForbidden, err.Error())
}

func ErrNotFound(resource, key string, value any) *Err {
	return NewErr(http.StatusNotFound, fmt.Sprintf("%v not found by %v (%v)", resource, key, value))
}

func ErrInternalServerError(err error) *Err {
	e := NewErr(http.StatusInternalServerError, "internal server error")
	e.cause = err

	return e
}
