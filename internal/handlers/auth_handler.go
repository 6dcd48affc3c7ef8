package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"goldenticket-service/internal/models"
	"goldenticket-service/internal/services"
	"goldenticket-service/pkg/utils"
)

type AuthHandler struct {
	adminService *services.AdminService
}

func NewAuthHandler(adminService *services.AdminService) *AuthHandler {
	return &AuthHandler{adminService: adminService}
}

func (a *AuthHandler) RegisterRoutes(router *gin.Engine, m *Middleware) {
	authGr := router.Group("/auth")
	authGr.POST("/login", a.Login)

	protectedGr := authGr.Group("", m.RequireAdmin())
	protectedGr.POST("/logout", a.Logout)
	protectedGr.GET("/me", a.Me)
}

// Login authenticates a back-office admin and returns the bearer token.
func (a *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid login request format: %v", err)
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("VALIDATION_ERROR", "email and password are required"))
		return
	}

	deviceInfo := c.GetHeader("User-Agent")
	ipAddress := c.ClientIP()

	admin, token, err := a.adminService.Login(c.Request.Context(), req.Email, req.Password, &deviceInfo, &ipAddress)
	if err != nil {
		log.Printf("Login failed for %s: %v", req.Email, err)
		c.JSON(http.StatusUnauthorized,
			utils.CreateErrorResponse("LOGIN_FAILED", "Login failed"))
		return
	}

	log.Printf("Successful login for admin %s", admin.Email)
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(map[string]any{
		"admin": map[string]any{
			"id":         admin.ID,
			"email":      admin.Email,
			"last_login": admin.LastLogin,
		},
		"access_token": token,
	}))
}

// Logout drops the session behind the presented token.
func (a *AuthHandler) Logout(c *gin.Context) {
	tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if err := a.adminService.Logout(c.Request.Context(), tokenString); err != nil {
		log.Printf("Logout failed: %v", err)
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("LOGOUT_FAILED", "logout failed"))
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(nil))
}

// Me returns the authenticated admin identity from the validated claims.
func (a *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(map[string]any{
		"admin_id": c.GetString("admin_id"),
		"email":    c.GetString("admin_email"),
	}))
}
