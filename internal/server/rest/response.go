package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/taskboard/internal/common"
)

type errorResponse struct {
	Message string `json:"message"`
}

// resolveStatus maps the core error taxonomy to HTTP status codes. The core
// itself never sees transport codes; this is the only place the mapping
// lives.
func resolveStatus(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrInvalidCredentials), errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrForbidden), errors.Is(err, common.ErrAccountInactive):
		return http.StatusForbidden
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrDuplicateEmail), errors.Is(err, common.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func handleError(c *gin.Context, err error) {
	status := resolveStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// do not leak wrapped storage errors to clients
		msg = common.ErrInternal.Error()
	}
	c.AbortWithStatusJSON(status, errorResponse{Message: msg})
}
