package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goldenticket-service/internal/services"
	"goldenticket-service/pkg/utils"
)

// StatsHandler serves the dashboard aggregate and the winners exports.
type StatsHandler struct {
	statsService  *services.StatsService
	exportService *services.ExportService
}

func NewStatsHandler(statsService *services.StatsService, exportService *services.ExportService) *StatsHandler {
	return &StatsHandler{
		statsService:  statsService,
		exportService: exportService,
	}
}

func (h *StatsHandler) RegisterRoutes(router *gin.Engine, m *Middleware) {
	adminGr := router.Group("/admin", m.RequireAdmin())
	adminGr.GET("/periods/:id/stats", h.GetStats)
	adminGr.GET("/periods/:id/winners", h.ListWinners)
	adminGr.GET("/periods/:id/winners/export/csv", h.ExportWinnersCSV)
	adminGr.GET("/periods/:id/winners/export/pdf", h.ExportWinnersPDF)
}

func (h *StatsHandler) GetStats(c *gin.Context) {
	periodID, ok := parseIDParam(c)
	if !ok {
		return
	}

	stats, err := h.statsService.GetGameStats(c.Request.Context(), periodID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(stats))
}

func (h *StatsHandler) ListWinners(c *gin.Context) {
	periodID, ok := parseIDParam(c)
	if !ok {
		return
	}

	winners, err := h.statsService.ListWinners(c.Request.Context(), periodID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(winners))
}

func (h *StatsHandler) ExportWinnersCSV(c *gin.Context) {
	periodID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.exportService.ExportWinnersCSV(c.Request.Context(), periodID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(result))
}

func (h *StatsHandler) ExportWinnersPDF(c *gin.Context) {
	periodID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.exportService.ExportWinnersPDF(c.Request.Context(), periodID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(result))
}
