package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"goldenticket-service/internal/models"
	"goldenticket-service/internal/services"
	"goldenticket-service/pkg/utils"
)

// CatalogHandler exposes the admin CRUD for periods, prizes and restaurants.
type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.Engine, m *Middleware) {
	adminGr := router.Group("/admin", m.RequireAdmin())

	periodGr := adminGr.Group("/periods")
	periodGr.POST("", h.CreatePeriod)
	periodGr.GET("", h.GetPeriods)
	periodGr.PUT("/:id", h.UpdatePeriod)
	periodGr.DELETE("/:id", h.DeletePeriod)

	prizeGr := adminGr.Group("/prizes")
	prizeGr.POST("", h.CreatePrizeType)
	prizeGr.GET("", h.GetPrizeTypes)
	prizeGr.PUT("/:id", h.UpdatePrizeType)
	prizeGr.DELETE("/:id", h.DeletePrizeType)

	restaurantGr := adminGr.Group("/restaurants")
	restaurantGr.POST("", h.CreateRestaurant)
	restaurantGr.GET("", h.GetRestaurants)
	restaurantGr.PUT("/:id", h.UpdateRestaurant)
	restaurantGr.DELETE("/:id", h.DeleteRestaurant)
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_ID", "invalid id parameter"))
		return uuid.Nil, false
	}
	return id, true
}

const defaultPageSize = 50

// pageWindow reads the ?page= and ?limit= parameters of the admin list
// endpoints. On a malformed value the 400 is already written.
func pageWindow(c *gin.Context) (page, limit int, ok bool) {
	page, err := utils.GetQueryParamAsInt(c, "page", 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("VALIDATION_ERROR", err.Error()))
		return 0, 0, false
	}

	limit, err = utils.GetQueryParamAsInt(c, "limit", defaultPageSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("VALIDATION_ERROR", err.Error()))
		return 0, 0, false
	}

	return page, limit, true
}

// writeServiceError maps service errors onto the HTTP status by message
// convention: validation wording becomes 400, "not found" becomes 404.
func writeServiceError(c *gin.Context, err error) {
	log.Printf("request failed: %v", err)

	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		c.JSON(http.StatusNotFound, utils.CreateErrorResponse("NOT_FOUND", msg))
	case strings.Contains(msg, "required") ||
		strings.Contains(msg, "invalid") ||
		strings.Contains(msg, "must"):
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("VALIDATION_ERROR", msg))
	default:
		c.JSON(http.StatusInternalServerError,
			utils.CreateErrorResponse("INTERNAL_ERROR", "internal server error"))
	}
}

func (h *CatalogHandler) CreatePeriod(c *gin.Context) {
	var req models.GamePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	period, err := h.catalogService.CreatePeriod(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(period))
}

func (h *CatalogHandler) GetPeriods(c *gin.Context) {
	periods, err := h.catalogService.GetPeriods(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(periods))
}

func (h *CatalogHandler) UpdatePeriod(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req models.GamePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	period, err := h.catalogService.UpdatePeriod(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(period))
}

func (h *CatalogHandler) DeletePeriod(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeletePeriod(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(nil))
}

func (h *CatalogHandler) CreatePrizeType(c *gin.Context) {
	var req models.PrizeTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	prize, err := h.catalogService.CreatePrizeType(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(prize))
}

func (h *CatalogHandler) GetPrizeTypes(c *gin.Context) {
	prizes, err := h.catalogService.GetPrizeTypes(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(prizes))
}

func (h *CatalogHandler) UpdatePrizeType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req models.PrizeTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	prize, err := h.catalogService.UpdatePrizeType(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(prize))
}

func (h *CatalogHandler) DeletePrizeType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeletePrizeType(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(nil))
}

func (h *CatalogHandler) CreateRestaurant(c *gin.Context) {
	var req models.RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	restaurant, err := h.catalogService.CreateRestaurant(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(restaurant))
}

func (h *CatalogHandler) GetRestaurants(c *gin.Context) {
	restaurants, err := h.catalogService.GetRestaurants(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(restaurants))
}

func (h *CatalogHandler) UpdateRestaurant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req models.RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	restaurant, err := h.catalogService.UpdateRestaurant(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(restaurant))
}

func (h *CatalogHandler) DeleteRestaurant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteRestaurant(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(nil))
}
