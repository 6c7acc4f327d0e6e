package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nippo-inc/nippo/internal/shared/errors"
)

// ParseIDParam parses a numeric ID from a URL path parameter.
// paramName is the Gin route parameter name (e.g., "id").
// entityName is used in error messages (e.g., "report").
func ParseIDParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " ID is required")
	}

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid " + entityName + " ID")
	}

	return uint(id), nil
}
