package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"goldenticket-service/internal/services"
	"goldenticket-service/pkg/utils"
)

type Middleware struct {
	adminService *services.AdminService
}

func NewMiddleware(adminService *services.AdminService) *Middleware {
	return &Middleware{adminService: adminService}
}

// RequireAdmin guards the back-office routes. The bearer token must carry a
// valid signature and a live Redis session.
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				utils.CreateErrorResponse("MISSING_TOKEN", "authorization header required"))
			return
		}

		tokenString := authHeader
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = authHeader[7:]
		}

		claims, err := m.adminService.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			log.Printf("Token validation failed: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				utils.CreateErrorResponse("INVALID_TOKEN", "token validation failed"))
			return
		}

		c.Set("admin_id", claims.AdminID)
		c.Set("admin_email", claims.Email)
		c.Header("X-Admin-ID", claims.AdminID)
		c.Next()
	}
}
