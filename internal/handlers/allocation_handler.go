package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"goldenticket-service/internal/services"
	"goldenticket-service/pkg/utils"
)

// AllocationHandler drives the daily prize distribution for a period.
type AllocationHandler struct {
	allocationService *services.AllocationService
	catalogService    *services.CatalogService
}

func NewAllocationHandler(allocationService *services.AllocationService, catalogService *services.CatalogService) *AllocationHandler {
	return &AllocationHandler{
		allocationService: allocationService,
		catalogService:    catalogService,
	}
}

func (h *AllocationHandler) RegisterRoutes(router *gin.Engine, m *Middleware) {
	adminGr := router.Group("/admin", m.RequireAdmin())
	adminGr.POST("/periods/:id/allocate", h.Allocate)
	adminGr.GET("/periods/:id/distributions", h.GetDistributions)
}

// Allocate runs the distribution for a period. The body is an open map of
// prize title to quantity; lots missing from the map use their default
// quantity. Re-running for a period that already has allocations is rejected
// unless force=true, because the run itself appends rather than replaces.
func (h *AllocationHandler) Allocate(c *gin.Context) {
	periodID, ok := parseIDParam(c)
	if !ok {
		return
	}

	quantities := map[string]int{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&quantities); err != nil {
			c.JSON(http.StatusBadRequest,
				utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "body must be a map of prize title to quantity"))
			return
		}
	}

	force := c.Query("force") == "true"
	if !force {
		exists, err := h.allocationService.HasAllocations(c.Request.Context(), periodID)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		if exists {
			c.JSON(http.StatusConflict,
				utils.CreateErrorResponse("ALLOCATION_EXISTS", "period already has allocations, re-run with force=true to append"))
			return
		}
	}

	catalog, err := h.catalogService.GetPrizeTypes(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	requests := services.ResolveRequests(catalog, normalizeQuantityKeys(quantities))

	if err := h.allocationService.AllocatePrizes(c.Request.Context(), periodID, requests); err != nil {
		writeServiceError(c, err)
		return
	}

	log.Printf("allocation run completed for period %s", periodID)
	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(map[string]any{
		"game_period_id": periodID,
		"lots_requested": len(requests),
	}))
}

func (h *AllocationHandler) GetDistributions(c *gin.Context) {
	periodID, ok := parseIDParam(c)
	if !ok {
		return
	}

	distributions, err := h.allocationService.GetDistributions(c.Request.Context(), periodID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(distributions))
}

func normalizeQuantityKeys(raw map[string]int) map[string]int {
	normalized := make(map[string]int, len(raw))
	for title, quantity := range raw {
		normalized[utils.NormalizeTitle(title)] = quantity
	}
	return normalized
}
