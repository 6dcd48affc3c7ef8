package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"goldenticket-service/internal/models"
	"goldenticket-service/internal/services"
	"goldenticket-service/pkg/utils"
)

type ParticipantHandler struct {
	participantService *services.ParticipantService
}

func NewParticipantHandler(participantService *services.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{participantService: participantService}
}

func (h *ParticipantHandler) RegisterRoutes(router *gin.Engine, m *Middleware) {
	router.POST("/participants", h.Register)

	adminGr := router.Group("/admin", m.RequireAdmin())
	adminGr.GET("/participants", h.GetAll)
}

// Register enrolls a player. Submitting an email that already exists returns
// the existing participant with 200 instead of 201.
func (h *ParticipantHandler) Register(c *gin.Context) {
	var req models.RegisterParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	participant, created, err := h.participantService.Register(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		log.Printf("registered participant %s", participant.Email)
	}

	c.JSON(status, utils.CreateSuccessResponse(participant))
}

// GetAll lists participants, newest first, paged by ?page= and ?limit=.
func (h *ParticipantHandler) GetAll(c *gin.Context) {
	page, limit, ok := pageWindow(c)
	if !ok {
		return
	}

	participants, err := h.participantService.GetAll(c.Request.Context(), limit, (page-1)*limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreatePagedResponse(participants, page, limit))
}
