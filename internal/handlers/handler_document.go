package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gastosapp/gastos_backend/internal/core/domain"
	portssvc "github.com/gastosapp/gastos_backend/internal/core/ports/services"
	"github.com/gastosapp/gastos_backend/internal/dto"
	"github.com/gastosapp/gastos_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// registerDocumentCaptureRoutes registers the OCR capture endpoint.
func registerDocumentCaptureRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade) {
	h := &documentCaptureHandler{documentService: documentService}

	capture := rg.Group("/capture")
	{
		capture.POST("/extract", h.extractFields)
	}
}

type documentCaptureHandler struct {
	documentService portssvc.DocumentSvcFacade
}

// attachDocument godoc
// @Summary Attach an evidence document to an expense
// @Description Uploads a supporting document (multipart field "file") with its document type.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param expense_id path string true "Expense ID"
// @Param file formData file true "Evidence file"
// @Param documentType formData string true "Document type"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{expense_id}/documents [post]
func (h *expenseHandler) attachDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing file field"})
		return
	}
	docType := c.PostForm("documentType")
	if docType == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing documentType field"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unreadable upload"})
		return
	}
	defer file.Close()

	req := dto.AttachDocumentRequest{
		DocumentType: domain.DocumentType(docType),
		FileName:     fileHeader.Filename,
		ContentType:  fileHeader.Header.Get("Content-Type"),
		SizeBytes:    fileHeader.Size,
		Content:      file,
	}

	doc, err := h.documentService.AttachDocument(c.Request.Context(), c.Param("expense_id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

// listDocuments godoc
// @Summary List the evidence documents of an expense
// @Tags documents
// @Produce json
// @Param expense_id path string true "Expense ID"
// @Success 200 {array} dto.DocumentResponse
// @Security BearerAuth
// @Router /expenses/{expense_id}/documents [get]
func (h *expenseHandler) listDocuments(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	docs, err := h.documentService.ListDocuments(c.Request.Context(), c.Param("expense_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponses(docs))
}

// extractFields godoc
// @Summary Extract fields from a scanned receipt
// @Description Runs OCR on an uploaded image or PDF and returns best-effort structured fields. Nothing is persisted.
// @Tags capture
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Receipt scan"
// @Success 200 {object} domain.OCRExtraction
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /capture/extract [post]
func (h *documentCaptureHandler) extractFields(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing file field"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unreadable upload"})
		return
	}
	defer file.Close()

	extraction, err := h.documentService.ExtractFields(c.Request.Context(), dto.OCRExtractRequest{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     file,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, extraction)
}
