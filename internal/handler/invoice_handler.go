package handler

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"invoiceflow/internal/domain"
	"invoiceflow/internal/service"
	"invoiceflow/internal/xlsxexport"
)

// InvoiceHandler handles invoice endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create handles POST /api/v1/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	var input service.InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	inv, err := h.invoiceService.Create(c.Request.Context(), &input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, inv)
}

// List handles GET /api/v1/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	invoices, total, err := h.invoiceService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/invoices/:id
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	inv, err := h.invoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// UpdateStatus handles PATCH /api/v1/invoices/:id/status
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		Status domain.InvoiceStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "status is required")
		return
	}

	inv, err := h.invoiceService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// Preview handles POST /api/v1/invoices/preview
func (h *InvoiceHandler) Preview(c *gin.Context) {
	var input service.InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	RespondOK(c, h.invoiceService.Preview(&input))
}

// DownloadPDF handles GET /api/v1/invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	out, filename, err := h.invoiceService.RenderPDF(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	servePDF(c, out, filename)
}

// RenderPDF handles POST /api/v1/invoices/pdf
func (h *InvoiceHandler) RenderPDF(c *gin.Context) {
	var input service.InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	out, filename, err := h.invoiceService.RenderPDFFromInput(&input)
	if err != nil {
		HandleError(c, err)
		return
	}

	servePDF(c, out, filename)
}

// ExportXLSX handles GET /api/v1/invoices/export/xlsx
func (h *InvoiceHandler) ExportXLSX(c *gin.Context) {
	invoices, err := h.invoiceService.ListAll(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	f, err := xlsxexport.BuildWorkbook(invoices)
	if err != nil {
		HandleError(c, fmt.Errorf("%w: %v", domain.ErrRenderFailed, err))
		return
	}
	defer func() { _ = f.Close() }()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", xlsxexport.BuildFilename()))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		requestID, _ := c.Get("request_id")
		log.Printf("[%v] writing xlsx export: %v", requestID, err)
	}
}

func servePDF(c *gin.Context, out []byte, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", out)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice id")
		return uuid.Nil, false
	}
	return id, true
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
