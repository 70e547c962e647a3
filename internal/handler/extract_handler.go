package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"billscan/internal/domain"
	"billscan/internal/service"
)

// ExtractHandler exposes the extraction engine over HTTP.
type ExtractHandler struct {
	svc *service.ScanService
}

// NewExtractHandler creates an ExtractHandler.
func NewExtractHandler(svc *service.ScanService) *ExtractHandler {
	return &ExtractHandler{svc: svc}
}

// ExtractEmail runs the strategy cascade over a posted email context.
// A failed extraction is a domain outcome, not a transport error: the
// result envelope carries success=false with the failure reason.
func (h *ExtractHandler) ExtractEmail(c *gin.Context) {
	var email domain.EmailContext
	if err := c.ShouldBindJSON(&email); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid email context payload")
		return
	}
	res, err := h.svc.ExtractEmail(c.Request.Context(), email)
	if err != nil && res == nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, res)
}

// ExtractDocument runs the strategy cascade over posted attachment text.
func (h *ExtractHandler) ExtractDocument(c *gin.Context) {
	var doc domain.DocumentContext
	if err := c.ShouldBindJSON(&doc); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid document context payload")
		return
	}
	res, err := h.svc.ExtractDocument(c.Request.Context(), doc)
	if err != nil && res == nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, res)
}

// Dedupe runs the batch merge step over a posted candidate set.
func (h *ExtractHandler) Dedupe(c *gin.Context) {
	var req struct {
		Bills []domain.CandidateBill `json:"candidate_bills"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid candidate bill payload")
		return
	}
	RespondOK(c, gin.H{"bills": h.svc.Deduplicate(req.Bills)})
}

// Scan runs the full pipeline over a batch of inputs.
func (h *ExtractHandler) Scan(c *gin.Context) {
	var req service.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid scan request payload")
		return
	}
	res, err := h.svc.Scan(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, res)
}
