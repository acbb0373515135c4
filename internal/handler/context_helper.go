package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yuehan-qin/classpoints-api/internal/middleware"
	"github.com/yuehan-qin/classpoints-api/internal/models"
	appErrors "github.com/yuehan-qin/classpoints-api/pkg/errors"
	"github.com/yuehan-qin/classpoints-api/pkg/response"
)

func claimsFromContext(c *gin.Context) *models.TenantClaims {
	value, exists := c.Get(middleware.ContextTenantKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.TenantClaims)
	if !ok {
		return nil
	}
	return claims
}

// tenantID extracts the authenticated tenant or writes a 401 and reports
// failure.
func tenantID(c *gin.Context) (string, bool) {
	claims := claimsFromContext(c)
	if claims == nil || claims.TenantID == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return "", false
	}
	return claims.TenantID, true
}
