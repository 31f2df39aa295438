package resp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Usserslalo/delixmi-backend-sub003/pkg/apperr"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": gin.H{"code": "BAD_REQUEST", "message": msg}})
}
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": gin.H{"code": "UNAUTHORIZED", "message": msg}})
}
func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": gin.H{"code": "FORBIDDEN", "message": msg}})
}

// Err translates a service error to a transport status. Internal causes are
// never serialized; the service already logged them with full context.
func Err(c *gin.Context, err error) {
	ae := apperr.From(err)
	body := gin.H{"code": ae.Code, "message": ae.Message}
	if len(ae.Details) > 0 {
		body["details"] = ae.Details
	}
	c.JSON(statusOf(ae.Kind), gin.H{"ok": false, "error": body})
}

func statusOf(k apperr.Kind) int {
	switch k {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindPreconditionFailed:
		return http.StatusConflict
	case apperr.KindValidationFailed:
		return http.StatusUnprocessableEntity
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
