// Package api exposes the finance REST endpoints consumed by the
// voucher administration screen.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/travesia/voucher-admin/internal/export"
	"github.com/travesia/voucher-admin/internal/service"
	"go.uber.org/zap"
)

// Handlers contains the HTTP request handlers of the finance API
type Handlers struct {
	service *service.VoucherService
	reports *export.ReportWriter
	logger  *zap.Logger
}

// NewHandlers creates a Handlers instance
func NewHandlers(svc *service.VoucherService, reports *export.ReportWriter, logger *zap.Logger) *Handlers {
	return &Handlers{
		service: svc,
		reports: reports,
		logger:  logger,
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "voucher-admin",
		"time":    time.Now().Format(time.RFC3339),
	})
}

// ListVouchers handles GET /finance/vouchers
func (h *Handlers) ListVouchers(c *gin.Context) {
	vouchers, err := h.service.ListVouchers(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to list vouchers")
		return
	}
	c.JSON(http.StatusOK, vouchers)
}

// CreateVoucher handles POST /finance/vouchers with the nested-object payload
func (h *Handlers) CreateVoucher(c *gin.Context) {
	var input service.CreateVoucherInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, err)
		return
	}

	voucher, err := h.service.CreateVoucher(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err, "Failed to create voucher")
		return
	}
	c.JSON(http.StatusCreated, voucher)
}

// UpdateVoucher handles PUT /finance/vouchers/:id with the flat
// resolved-ids payload
func (h *Handlers) UpdateVoucher(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var input service.UpdateVoucherInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, err)
		return
	}

	voucher, err := h.service.UpdateVoucher(c.Request.Context(), id, input)
	if err != nil {
		h.fail(c, err, "Failed to update voucher")
		return
	}
	c.JSON(http.StatusOK, voucher)
}

// DeleteVoucher handles DELETE /finance/vouchers/:id
func (h *Handlers) DeleteVoucher(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteVoucher(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Failed to delete voucher")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListBanks handles GET /finance/banks
func (h *Handlers) ListBanks(c *gin.Context) {
	banks, err := h.service.ListBanks(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to list banks")
		return
	}
	c.JSON(http.StatusOK, banks)
}

// CreateBank handles POST /finance/banks
func (h *Handlers) CreateBank(c *gin.Context) {
	var input service.BankInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, err)
		return
	}

	bank, err := h.service.CreateBank(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err, "Failed to create bank")
		return
	}
	c.JSON(http.StatusCreated, bank)
}

// ListAffiliates handles GET /finance/affiliates
func (h *Handlers) ListAffiliates(c *gin.Context) {
	affiliates, err := h.service.ListAffiliates(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to list affiliates")
		return
	}
	c.JSON(http.StatusOK, affiliates)
}

// CreateAffiliate handles POST /finance/affiliates
func (h *Handlers) CreateAffiliate(c *gin.Context) {
	var input service.AffiliateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, err)
		return
	}

	affiliate, err := h.service.CreateAffiliate(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err, "Failed to create affiliate")
		return
	}
	c.JSON(http.StatusCreated, affiliate)
}

// ExportVouchers handles GET /finance/reports/vouchers, streaming the
// voucher list as an .xlsx workbook
func (h *Handlers) ExportVouchers(c *gin.Context) {
	vouchers, err := h.service.ListVouchers(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to export vouchers")
		return
	}

	filename := fmt.Sprintf("vouchers-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := h.reports.Write(vouchers, c.Writer); err != nil {
		h.logger.Error("Failed to stream voucher report", zap.Error(err))
	}
}

func (h *Handlers) pathID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid voucher id"})
		return 0, false
	}
	return id, true
}

func (h *Handlers) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
}

// fail maps service errors to status codes: validation 400, missing
// records 404, anything else 500
func (h *Handlers) fail(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
