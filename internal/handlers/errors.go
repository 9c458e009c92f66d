// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/craftconnect/backend/internal/services"
	"github.com/craftconnect/backend/internal/utils"
)

// respondServiceError maps service sentinels onto HTTP statuses. Forbidden
// collapses into 404 so a private product is indistinguishable from a
// missing one.
func respondServiceError(c *gin.Context, resource string, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrForbidden):
		utils.NotFoundResponse(c, resource)
	case errors.Is(err, services.ErrValidation):
		utils.BadRequestResponse(c, err.Error(), nil)
	case errors.Is(err, services.ErrEmailTaken):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, err.Error())
	case errors.Is(err, services.ErrDependencyUnavailable):
		utils.ServiceUnavailableResponse(c, "")
	default:
		utils.InternalErrorResponse(c, "")
	}
}
