package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"goldenticket-service/internal/services"
	"goldenticket-service/pkg/utils"
)

type PlayHandler struct {
	playService *services.PlayService
}

func NewPlayHandler(playService *services.PlayService) *PlayHandler {
	return &PlayHandler{playService: playService}
}

func (h *PlayHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/play", h.Play)
}

type playRequest struct {
	ParticipantID uuid.UUID `json:"participant_id"`
	ReceiptID     uuid.UUID `json:"receipt_id"`
}

// Play runs one scratch draw against today's distribution. A losing draw is
// a 200 with won=false; only rule violations are errors.
func (h *PlayHandler) Play(c *gin.Context) {
	var req playRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}
	if req.ParticipantID == uuid.Nil || req.ReceiptID == uuid.Nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("VALIDATION_ERROR", "participant_id and receipt_id are required"))
		return
	}

	result, err := h.playService.Play(c.Request.Context(), req.ParticipantID, req.ReceiptID)
	if err != nil {
		log.Printf("play refused for participant %s: %v", req.ParticipantID, err)
		msg := err.Error()
		switch {
		case strings.Contains(msg, "already played"):
			c.JSON(http.StatusConflict, utils.CreateErrorResponse("ALREADY_PLAYED", msg))
		case strings.Contains(msg, "already used"):
			c.JSON(http.StatusConflict, utils.CreateErrorResponse("RECEIPT_CONSUMED", msg))
		case strings.Contains(msg, "not validated") ||
			strings.Contains(msg, "does not belong") ||
			strings.Contains(msg, "no active game period"):
			c.JSON(http.StatusUnprocessableEntity, utils.CreateErrorResponse("PLAY_NOT_ALLOWED", msg))
		case strings.Contains(msg, "not found"):
			c.JSON(http.StatusNotFound, utils.CreateErrorResponse("NOT_FOUND", msg))
		default:
			c.JSON(http.StatusInternalServerError,
				utils.CreateErrorResponse("INTERNAL_ERROR", "internal server error"))
		}
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(result))
}
