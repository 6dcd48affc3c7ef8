package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"goldenticket-service/internal/models"
	"goldenticket-service/internal/services"
	"goldenticket-service/pkg/utils"
)

const maxReceiptPhotoMB = 10

type ReceiptHandler struct {
	receiptService *services.ReceiptService
}

func NewReceiptHandler(receiptService *services.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

func (h *ReceiptHandler) RegisterRoutes(router *gin.Engine, m *Middleware) {
	router.POST("/receipts", h.Submit)

	adminGr := router.Group("/admin/receipts", m.RequireAdmin())
	adminGr.GET("", h.GetAll)
	adminGr.GET("/:id/photo", h.GetPhotoURL)
	adminGr.POST("/:id/validate", h.Validate)
	adminGr.POST("/:id/reject", h.Reject)
}

// Submit takes a multipart form with participant_id and a photo file, runs
// the OCR pipeline and returns the stored receipt with its decided status.
func (h *ReceiptHandler) Submit(c *gin.Context) {
	participantID, err := uuid.Parse(c.PostForm("participant_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "participant_id is required"))
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "photo file is required"))
		return
	}
	if fileHeader.Size > maxReceiptPhotoMB*1024*1024 {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("FILE_TOO_LARGE", "photo exceeds the size limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "failed to read photo"))
		return
	}
	defer file.Close()

	photo, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "failed to read photo"))
		return
	}

	receipt, err := h.receiptService.Submit(c.Request.Context(), participantID, photo, fileHeader.Filename)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	log.Printf("receipt %s submitted by %s, status %s", receipt.ID, participantID, receipt.Status)
	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(receipt))
}

// GetAll lists receipts, optionally filtered by ?status=, paged by ?page=
// and ?limit=.
func (h *ReceiptHandler) GetAll(c *gin.Context) {
	var status *models.ReceiptStatus
	if raw := c.Query("status"); raw != "" {
		s := models.ReceiptStatus(raw)
		switch s {
		case models.ReceiptStatusPending, models.ReceiptStatusValidated, models.ReceiptStatusRejected:
			status = &s
		default:
			c.JSON(http.StatusBadRequest,
				utils.CreateErrorResponse("VALIDATION_ERROR", "invalid status filter"))
			return
		}
	}

	page, limit, ok := pageWindow(c)
	if !ok {
		return
	}

	receipts, err := h.receiptService.GetAll(c.Request.Context(), status, limit, (page-1)*limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreatePagedResponse(receipts, page, limit))
}

func (h *ReceiptHandler) GetPhotoURL(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	url, err := h.receiptService.GetPhotoURL(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(map[string]string{"url": url}))
}

func (h *ReceiptHandler) Validate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.receiptService.Validate(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(nil))
}

func (h *ReceiptHandler) Reject(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req models.RejectReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	if err := h.receiptService.Reject(c.Request.Context(), id, req.Reason); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(nil))
}
