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

type RaffleHandler struct {
	raffleService *services.RaffleService
}

func NewRaffleHandler(raffleService *services.RaffleService) *RaffleHandler {
	return &RaffleHandler{raffleService: raffleService}
}

func (h *RaffleHandler) RegisterRoutes(router *gin.Engine, m *Middleware) {
	adminGr := router.Group("/admin", m.RequireAdmin())
	adminGr.POST("/raffle", h.RunRaffle)
}

func (h *RaffleHandler) RunRaffle(c *gin.Context) {
	var req models.RaffleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	result, err := h.raffleService.RunRaffle(c.Request.Context(), req)
	if err != nil {
		log.Printf("raffle failed for period %s: %v", req.GamePeriodID, err)
		if strings.Contains(err.Error(), "no eligible participants") {
			c.JSON(http.StatusUnprocessableEntity,
				utils.CreateErrorResponse("EMPTY_POOL", err.Error()))
			return
		}
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(result))
}
