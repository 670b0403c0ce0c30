package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/simaogato/partsdash-backend/internal/domain"
	"github.com/simaogato/partsdash-backend/internal/usecase/dashboard"
	"github.com/simaogato/partsdash-backend/internal/usecase/rollup"
	"github.com/simaogato/partsdash-backend/internal/usecase/table"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// PanelRowsResponse is the body of a panel query
type PanelRowsResponse struct {
	Panel string `json:"panel"`
	Rows  any    `json:"rows"`
}

// TrendResponse is the body of a sales trend query
type TrendResponse struct {
	Period domain.Period       `json:"period"`
	Points []domain.TrendPoint `json:"points"`
}

// SummaryResponse is the body of a finance summary query
type SummaryResponse struct {
	Cards []domain.SummaryCard `json:"cards"`
}

// Handler serves the dashboard over HTTP
type Handler struct {
	DashboardService *dashboard.DashboardService

	defaultMinDays int
	logger         *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(dashboardService *dashboard.DashboardService, defaultMinDays int, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		DashboardService: dashboardService,
		defaultMinDays:   defaultMinDays,
		logger:           logger,
	}
}

// Health reports liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListPanels returns the panel catalog, optionally filtered by ?category=
func (h *Handler) ListPanels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"panels": h.DashboardService.Panels(c.Query("category"))})
}

// QueryPanel returns the rows of one panel after sort and search are applied
func (h *Handler) QueryPanel(c *gin.Context) {
	panelID := c.Param("panel")

	req, ok := h.panelRequest(c)
	if !ok {
		return
	}

	rows, err := h.DashboardService.Query(c.Request.Context(), panelID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, PanelRowsResponse{Panel: panelID, Rows: rows})
}

// ExportPanel downloads a panel as a CSV attachment
func (h *Handler) ExportPanel(c *gin.Context) {
	panelID := c.Param("panel")

	req, ok := h.panelRequest(c)
	if !ok {
		return
	}

	doc, err := h.DashboardService.Export(c.Request.Context(), panelID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", doc.ContentDisposition())
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}

// GetSalesTrend returns daily revenue rolled up by ?period=daily|weekly|monthly
func (h *Handler) GetSalesTrend(c *gin.Context) {
	req, ok := h.panelRequest(c)
	if !ok {
		return
	}

	points, err := h.DashboardService.SalesTrend(c.Request.Context(), req.Range, req.Period)
	if err != nil {
		h.handleError(c, err)
		return
	}

	period := req.Period
	if period == "" {
		period = domain.PeriodDaily
	}
	c.JSON(http.StatusOK, TrendResponse{Period: period, Points: points})
}

// GetFinanceSummary returns the headline finance cards for ?from=&to=
func (h *Handler) GetFinanceSummary(c *gin.Context) {
	req, ok := h.panelRequest(c)
	if !ok {
		return
	}

	cards, err := h.DashboardService.FinanceSummary(c.Request.Context(), req.Range)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{Cards: cards})
}

// panelRequest parses the query string; on failure it writes a 400 and returns false
func (h *Handler) panelRequest(c *gin.Context) (dashboard.PanelRequest, bool) {
	params := dashboard.QueryParams{
		From:   c.Query("from"),
		To:     c.Query("to"),
		Sort:   c.Query("sort"),
		Dir:    c.Query("dir"),
		Query:  c.Query("q"),
		Fields: c.QueryArray("fields"),
		Period: c.Query("period"),
	}

	if raw := strings.TrimSpace(c.Query("min_days")); raw != "" {
		minDays, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "min_days must be a whole number"})
			return dashboard.PanelRequest{}, false
		}
		params.MinDays = &minDays
	}

	req, err := params.Request(h.defaultMinDays)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return dashboard.PanelRequest{}, false
	}
	return req, true
}

// handleError maps a service error to an HTTP status and writes it
func (h *Handler) handleError(c *gin.Context, err error) {
	code := statusForError(err)
	if code >= http.StatusInternalServerError {
		_ = c.Error(err)
		h.logger.Error("dashboard request failed",
			zap.String("correlation_id", GetCorrelationID(c)),
			zap.Error(err),
		)
		c.JSON(code, ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// statusForError converts domain errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrUnknownPanel), errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, table.ErrUnknownColumn), errors.Is(err, rollup.ErrUnknownPeriod):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}

	msg := err.Error()
	if strings.Contains(msg, "must") ||
		strings.Contains(msg, "cannot be empty") ||
		strings.Contains(msg, "invalid") ||
		strings.Contains(msg, "needs") ||
		strings.Contains(msg, "does not support") {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
