package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/srrview/backend/internal/auth"
	"github.com/srrview/backend/internal/http/middleware"
	"github.com/srrview/backend/internal/models"
	"github.com/srrview/backend/internal/service"
	"github.com/srrview/backend/internal/store"
)

// AllSentinel is the reserved dropdown value meaning "no restriction". It is
// mapped onto the Selection tag at the boundary and never compared against
// category values inside the core.
const AllSentinel = "All"

type Handler struct {
	Store     *store.Store
	Dashboard *service.DashboardService
	Sessions  *auth.Manager
	Validator *validator.Validate
	Logger    zerolog.Logger
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "SHEET_UNAVAILABLE", "Data source unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// @Summary Log in
// @Description Exchange a username and password for a session token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]any
// @Router /api/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	session, err := h.Sessions.Login(req.Username, req.Password)
	if err != nil {
		writeError(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not known or password incorrect", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": session.Token, "username": session.Username})
}

func (h *Handler) Logout(c *gin.Context) {
	h.Sessions.Logout(middleware.SessionToken(c))
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// @Summary Dashboard render pass
// @Description Summary metrics, aggregates, pivot, and sub-tables for one filter state
// @Tags dashboard
// @Produce json
// @Param service query []string false "Service filter (repeatable; omit or 'All' for no restriction)"
// @Param month query string false "Month filter"
// @Param weekend query string false "Weekend? filter (Yes/No)"
// @Param working_hours query string false "Working Hours? filter (Yes/No)"
// @Param sme query []string false "SME filter (repeatable)"
// @Param delta query string false "Delta mode: previous_week or previous_month"
// @Success 200 {object} service.Dashboard
// @Router /api/dashboard [get]
func (h *Handler) DashboardView(c *gin.Context) {
	state := filterStateFromQuery(c)
	mode, err := deltaMode(c.Query("delta"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	d, err := h.Dashboard.Render(c.Request.Context(), state, mode)
	if err != nil {
		h.Logger.Error().Err(err).Msg("render pass failed")
		writeError(c, http.StatusServiceUnavailable, "NO_DATA", "Data source unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, d)
}

// @Summary Filtered case rows
// @Tags cases
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/cases [get]
func (h *Handler) CasesList(c *gin.Context) {
	snap, err := h.Store.Snapshot(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusServiceUnavailable, "NO_DATA", "Data source unavailable", err.Error())
		return
	}

	filtered := service.ApplyFilters(snap.Records, filterStateFromQuery(c))

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	items := pageRecords(filtered.Records, limit, offset)

	c.JSON(http.StatusOK, gin.H{
		"items":     items,
		"total":     len(filtered.Records),
		"limit":     limit,
		"offset":    offset,
		"fallbacks": filtered.Fallbacks,
	})
}

// ExportTables are the aggregate tables available through the CSV surface.
var exportTables = map[string]bool{
	"months":   true,
	"services": true,
	"smes":     true,
	"pivot":    true,
	"reasons":  true,
}

// @Summary Export an aggregate table as CSV
// @Tags export
// @Produce text/csv
// @Param table path string true "months | services | smes | pivot | reasons"
// @Router /api/export/{table} [get]
func (h *Handler) Export(c *gin.Context) {
	table := c.Param("table")
	if !exportTables[table] {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown export table", table)
		return
	}

	snap, err := h.Store.Snapshot(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusServiceUnavailable, "NO_DATA", "Data source unavailable", err.Error())
		return
	}
	filtered := service.ApplyFilters(snap.Records, filterStateFromQuery(c))

	var buf bytes.Buffer
	switch table {
	case "months":
		err = service.WriteMonthsCSV(&buf, service.MonthTable(service.GroupByMonth(filtered.Records)))
	case "services":
		err = service.WriteServicesCSV(&buf, service.ServiceTable(service.GroupByService(filtered.Records)))
	case "smes":
		err = service.WriteSMEsCSV(&buf, service.SMETable(service.GroupBySME(filtered.Records)))
	case "pivot":
		err = service.WritePivotCSV(&buf, service.Pivot(filtered.Records))
	case "reasons":
		err = service.WriteReasonsCSV(&buf, service.CaseReasonDistribution(filtered.Records))
	}
	if err != nil {
		writeError(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to build export", err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", table))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// @Summary Force a data refresh
// @Tags refresh
// @Produce json
// @Router /api/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	h.Store.Invalidate()
	snap, err := h.Store.Snapshot(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusServiceUnavailable, "NO_DATA", "Data source unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "refreshed", "records": len(snap.Records), "fetched_at": snap.FetchedAt})
}

func deltaMode(raw string) (service.DeltaMode, error) {
	switch raw {
	case "":
		return "", nil
	case string(service.DeltaPreviousWeek):
		return service.DeltaPreviousWeek, nil
	case string(service.DeltaPreviousMonth):
		return service.DeltaPreviousMonth, nil
	default:
		return "", errors.New("delta must be previous_week or previous_month")
	}
}

// filterStateFromQuery resolves query parameters into a FilterState. An
// omitted parameter, or one carrying the All sentinel, selects everything.
func filterStateFromQuery(c *gin.Context) models.FilterState {
	return models.FilterState{
		Service:      selectionFromValues(c.QueryArray("service")),
		Month:        selectionFromValues(c.QueryArray("month")),
		Weekend:      selectionFromValues(c.QueryArray("weekend")),
		WorkingHours: selectionFromValues(c.QueryArray("working_hours")),
		SME:          selectionFromValues(c.QueryArray("sme")),
	}
}

func selectionFromValues(values []string) models.Selection {
	if len(values) == 0 {
		return models.SelectAll()
	}
	var out []string
	for _, v := range values {
		if v == AllSentinel {
			return models.SelectAll()
		}
		if v != "" {
			out = append(out, v)
		}
	}
	return models.SelectValues(out...)
}

func pageRecords(records []models.CaseRecord, limit, offset int) []models.CaseRecord {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(records) {
		return []models.CaseRecord{}
	}
	end := offset + limit
	if end > len(records) {
		end = len(records)
	}
	return records[offset:end]
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
