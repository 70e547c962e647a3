package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"billscan/internal/export/csvexport"
	"billscan/internal/export/excel"
	"billscan/internal/service"
)

const maxPageSize = 100

// BillHandler exposes stored bills: listing, lookup, and export.
type BillHandler struct {
	svc *service.ScanService
}

// NewBillHandler creates a BillHandler.
func NewBillHandler(svc *service.ScanService) *BillHandler {
	return &BillHandler{svc: svc}
}

// List returns a page of stored bills.
func (h *BillHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit < 1 || limit > maxPageSize {
		limit = 20
	}

	bills, total, err := h.svc.ListBills(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, bills, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID returns one stored bill.
func (h *BillHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill id")
		return
	}
	bill, err := h.svc.GetBill(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, bill)
}

// Export streams every stored bill as CSV or XLSX.
func (h *BillHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
		return
	}

	bills, _, err := h.svc.ListBills(c.Request.Context(), 0, maxPageSize)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("bills-%s.%s", time.Now().Format("20060102-150405"), format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))

	if format == "xlsx" {
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := excel.Write(c.Writer, bills); err != nil {
			HandleError(c, err)
		}
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		return
	}
	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteBills(bills); err != nil {
		return
	}
	w.Flush()
}
