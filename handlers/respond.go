package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"restaurant-api/apperr"
	"restaurant-api/logger"
	"restaurant-api/middleware"

	"github.com/gin-gonic/gin"
)

var statusByKind = map[apperr.Kind]int{
	apperr.KindForbidden:    http.StatusForbidden,
	apperr.KindNotFound:     http.StatusNotFound,
	apperr.KindValidation:   http.StatusBadRequest,
	apperr.KindConflict:     http.StatusConflict,
	apperr.KindBadRequest:   http.StatusBadRequest,
	apperr.KindUnauthorized: http.StatusUnauthorized,
	apperr.KindInternal:     http.StatusInternalServerError,
}

// respondError is the only place service errors become HTTP responses.
// Internal failures are logged and answered with a generic message.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		logger.L().Error("request_failed", "internal error", middleware.GetRequestID(c), map[string]any{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": kind.String()})
		return
	}

	body := gin.H{}
	var e *apperr.Error
	if errors.As(err, &e) {
		for k, v := range e.Details {
			body[k] = v
		}
		body["error"] = e.Message
	} else {
		body["error"] = err.Error()
	}
	body["code"] = kind.String()
	c.JSON(statusByKind[kind], body)
}

// bindError answers malformed request bodies.
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": apperr.KindBadRequest.String()})
}

// pathID parses a positive numeric path parameter, answering 400 otherwise.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name, "code": apperr.KindBadRequest.String()})
		return 0, false
	}
	return uint(id), true
}
