package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/autoorder/internal/domain"
	"github.com/andresuchdata/autoorder/internal/service"
)

const (
	csvContentType  = "text/csv; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ReplenishmentHandler struct {
	service *service.ReplenishmentService
}

func NewReplenishmentHandler(service *service.ReplenishmentService) *ReplenishmentHandler {
	return &ReplenishmentHandler{service: service}
}

type autoOrderRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// parseFilter reads category, supplier and search (or q). Values are kept
// verbatim: category and supplier match exactly, search as a substring.
func (h *ReplenishmentHandler) parseFilter(c *gin.Context) domain.FilterCriteria {
	filter := domain.FilterCriteria{
		Category:   c.Query("category"),
		Supplier:   c.Query("supplier"),
		SearchText: c.Query("search"),
	}
	if filter.SearchText == "" {
		filter.SearchText = c.Query("q")
	}
	return filter.Normalize()
}

func (h *ReplenishmentHandler) GetReport(c *gin.Context) {
	report, err := h.service.GetReport(c.Request.Context(), h.parseFilter(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to evaluate catalog", err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReplenishmentHandler) GetProducts(c *gin.Context) {
	var status *domain.StockStatus
	if raw := strings.TrimSpace(c.Query("status")); raw != "" && raw != domain.AllFilterValue {
		parsed, ok := domain.ParseStockStatus(raw)
		if !ok {
			respondError(c, http.StatusBadRequest, "invalid status", errors.New("unknown status "+raw))
			return
		}
		status = &parsed
	}

	products, err := h.service.GetProducts(c.Request.Context(), h.parseFilter(c), status)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch products", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": products,
		"total": len(products),
	})
}

func (h *ReplenishmentHandler) GetProduct(c *gin.Context) {
	product, err := h.service.GetProduct(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, product)
	case errors.Is(err, domain.ErrProductNotFound):
		respondError(c, http.StatusNotFound, "product not found", err)
	default:
		respondError(c, http.StatusInternalServerError, "failed to fetch product", err)
	}
}

func (h *ReplenishmentHandler) GetCandidates(c *gin.Context) {
	candidates, err := h.service.GetCandidates(c.Request.Context(), h.parseFilter(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch order candidates", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": candidates,
		"total": len(candidates),
	})
}

func (h *ReplenishmentHandler) ExportCandidates(c *gin.Context) {
	format := strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", "csv")))

	var (
		buf         bytes.Buffer
		err         error
		contentType string
	)
	switch format {
	case "csv":
		_, err = h.service.ExportCandidatesCSV(c.Request.Context(), h.parseFilter(c), &buf)
		contentType = csvContentType
	case "xlsx":
		_, err = h.service.ExportCandidatesXLSX(c.Request.Context(), h.parseFilter(c), &buf)
		contentType = xlsxContentType
	default:
		respondError(c, http.StatusBadRequest, "invalid format", errors.New("format must be csv or xlsx"))
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to export order candidates", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="pending_orders.`+format+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *ReplenishmentHandler) GetCategorySummary(c *gin.Context) {
	summaries, err := h.service.GetCategorySummary(c.Request.Context(), h.parseFilter(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch category summary", err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

func (h *ReplenishmentHandler) GetSupplierSummary(c *gin.Context) {
	summaries, err := h.service.GetSupplierSummary(c.Request.Context(), h.parseFilter(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch supplier summary", err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

func (h *ReplenishmentHandler) GetFilterOptions(c *gin.Context) {
	opts, err := h.service.GetFilterOptions(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch filter options", err)
		return
	}

	c.JSON(http.StatusOK, opts)
}

func (h *ReplenishmentHandler) SetAutoOrder(c *gin.Context) {
	productID := strings.TrimSpace(c.Param("id"))

	var req autoOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	err := h.service.SetAutoOrder(c.Request.Context(), productID, *req.Enabled)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"id": productID, "auto_order_enabled": *req.Enabled})
	case errors.Is(err, domain.ErrProductNotFound):
		respondError(c, http.StatusNotFound, "product not found", err)
	case errors.Is(err, service.ErrReadOnlyCatalog):
		respondError(c, http.StatusConflict, "catalog is read-only", err)
	default:
		respondError(c, http.StatusInternalServerError, "failed to update auto order", err)
	}
}

func respondError(c *gin.Context, statusCode int, message string, err error) {
	event := log.Warn()
	if statusCode >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Str("path", c.Request.URL.Path).Msg(message)

	c.JSON(statusCode, gin.H{"error": message, "details": err.Error()})
}
