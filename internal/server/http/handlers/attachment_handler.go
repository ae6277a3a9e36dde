package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kairos-ev/ordertrack/internal/server/http/dto"
)

// AttachmentHandler manages documents, receipts, and message threads.
type AttachmentHandler struct {
	facade AttachmentFacade
}

// NewAttachmentHandler constructs AttachmentHandler.
func NewAttachmentHandler(facade AttachmentFacade) *AttachmentHandler {
	return &AttachmentHandler{facade: facade}
}

// ListDocuments handles GET /api/user/orders/:id/documents.
func (h *AttachmentHandler) ListDocuments(c *gin.Context) {
	docs, err := h.facade.Documents(c.Request.Context(), c.Param("id"), CurrentActor(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response := make([]dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		response = append(response, dto.ToDocumentResponse(d))
	}
	c.JSON(http.StatusOK, response)
}

// AddDocument handles POST /api/user/orders/:id/documents.
func (h *AttachmentHandler) AddDocument(c *gin.Context) {
	var req dto.AddDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	doc, err := h.facade.AddDocument(c.Request.Context(), c.Param("id"), req.Name, req.ContentType, req.URL, CurrentActor(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(*doc))
}

// ListReceipts handles GET /api/user/orders/:id/receipts.
func (h *AttachmentHandler) ListReceipts(c *gin.Context) {
	receipts, err := h.facade.Receipts(c.Request.Context(), c.Param("id"), CurrentActor(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response := make([]dto.ReceiptResponse, 0, len(receipts))
	for _, r := range receipts {
		response = append(response, dto.ToReceiptResponse(r))
	}
	c.JSON(http.StatusOK, response)
}

// AddReceipt handles POST /api/user/orders/:id/receipts.
func (h *AttachmentHandler) AddReceipt(c *gin.Context) {
	var req dto.AddReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	receipt, err := h.facade.AddReceipt(c.Request.Context(), c.Param("id"), req.FileName, req.URL, req.Amount, CurrentActor(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToReceiptResponse(*receipt))
}

// VerifyReceipt handles POST /api/admin/orders/:id/receipts/:receiptID/verify.
func (h *AttachmentHandler) VerifyReceipt(c *gin.Context) {
	receipt, err := h.facade.VerifyReceipt(c.Request.Context(), c.Param("id"), c.Param("receiptID"), CurrentActor(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReceiptResponse(*receipt))
}

// ListMessages handles GET /api/user/orders/:id/messages.
func (h *AttachmentHandler) ListMessages(c *gin.Context) {
	messages, err := h.facade.Messages(c.Request.Context(), c.Param("id"), CurrentActor(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		response = append(response, dto.ToMessageResponse(m))
	}
	c.JSON(http.StatusOK, response)
}

// PostMessage handles POST /api/user/orders/:id/messages.
func (h *AttachmentHandler) PostMessage(c *gin.Context) {
	var req dto.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	msg, err := h.facade.PostMessage(c.Request.Context(), c.Param("id"), req.Content, CurrentActor(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToMessageResponse(*msg))
}
