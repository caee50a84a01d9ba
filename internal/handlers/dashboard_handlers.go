package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/expertbi/expertbi-api/internal/auth"
	"github.com/expertbi/expertbi-api/internal/charts"
	"github.com/expertbi/expertbi-api/internal/db"
)

// DashboardHandler handles dashboard CRUD operations
type DashboardHandler struct {
	common *CommonServices
}

// NewDashboardHandler creates a new DashboardHandler instance
func NewDashboardHandler(common *CommonServices) *DashboardHandler {
	return &DashboardHandler{common: common}
}

// DashboardRequest represents the request body for creating or replacing a dashboard
type DashboardRequest struct {
	Name        string               `json:"name" binding:"required"`
	Description string               `json:"description"`
	Widgets     []charts.ChartWidget `json:"widgets"`
}

// DashboardResponse represents the standardized API response for a dashboard
type DashboardResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Widgets     []charts.ChartWidget `json:"widgets"`
	CreatedAt   *time.Time           `json:"created_at,omitempty"`
	UpdatedAt   *time.Time           `json:"updated_at,omitempty"`
}

// ListDashboardsResponse represents the paginated response for dashboard lists
type ListDashboardsResponse struct {
	Object  string              `json:"object"`
	Data    []DashboardResponse `json:"data"`
	HasMore bool                `json:"has_more"`
	Total   int64               `json:"total"`
}

func toDashboardResponse(dashboard db.Dashboard) (DashboardResponse, error) {
	widgets := []charts.ChartWidget{}
	if len(dashboard.Widgets) > 0 {
		if err := json.Unmarshal(dashboard.Widgets, &widgets); err != nil {
			return DashboardResponse{}, fmt.Errorf("failed to decode dashboard widgets: %w", err)
		}
	}
	return DashboardResponse{
		ID:          dashboard.ID.String(),
		Name:        dashboard.Name,
		Description: textOrEmpty(dashboard.Description),
		Widgets:     widgets,
		CreatedAt:   timeOrNil(dashboard.CreatedAt),
		UpdatedAt:   timeOrNil(dashboard.UpdatedAt),
	}, nil
}

// validateWidgets rejects widget lists with duplicate IDs or unknown kinds.
func validateWidgets(widgets []charts.ChartWidget) error {
	seen := make(map[string]bool, len(widgets))
	for _, widget := range widgets {
		if widget.ID == "" {
			return fmt.Errorf("widget %q is missing an id", widget.Title)
		}
		if seen[widget.ID] {
			return fmt.Errorf("duplicate widget id %s", widget.ID)
		}
		seen[widget.ID] = true
		if !widget.Type.IsSupported() {
			return fmt.Errorf("unsupported chart type %s", widget.Type)
		}
	}
	return nil
}

func marshalWidgets(widgets []charts.ChartWidget) ([]byte, error) {
	if widgets == nil {
		widgets = []charts.ChartWidget{}
	}
	return json.Marshal(widgets)
}

func dashboardIDFromPath(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("dashboard_id"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid dashboard ID format", err)
		return uuid.UUID{}, false
	}
	return id, true
}

// CreateDashboard godoc
// @Summary Create dashboard
// @Description Creates a dashboard with the given widget layout
// @Tags dashboards
// @Accept json
// @Produce json
// @Param request body DashboardRequest true "Dashboard details"
// @Success 201 {object} DashboardResponse
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /dashboards [post]
func (h *DashboardHandler) CreateDashboard(c *gin.Context) {
	var req DashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := validateWidgets(req.Widgets); err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	widgets, err := marshalWidgets(req.Widgets)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to encode widgets", err)
		return
	}

	description := pgtype.Text{}
	if req.Description != "" {
		description = pgtype.Text{String: req.Description, Valid: true}
	}

	var userID int64
	if id, ok := auth.CurrentUserID(c); ok {
		userID = id
	}

	dashboard, err := h.common.db.CreateDashboard(c.Request.Context(), db.CreateDashboardParams{
		UserID:      userID,
		Name:        req.Name,
		Description: description,
		Widgets:     widgets,
	})
	if err != nil {
		handleDBError(c, err, "Dashboard not found")
		return
	}

	resp, err := toDashboardResponse(dashboard)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to decode dashboard", err)
		return
	}
	sendSuccess(c, http.StatusCreated, resp)
}

// ListDashboards godoc
// @Summary List dashboards
// @Description Returns a paginated list of dashboards
// @Tags dashboards
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} ListDashboardsResponse
// @Security ApiKeyAuth
// @Router /dashboards [get]
func (h *DashboardHandler) ListDashboards(c *gin.Context) {
	page := parsePagination(c)

	dashboards, err := h.common.db.ListDashboards(c.Request.Context(), db.ListDashboardsParams{
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		handleDBError(c, err, "Dashboards not found")
		return
	}
	total, err := h.common.db.CountDashboards(c.Request.Context())
	if err != nil {
		handleDBError(c, err, "Dashboards not found")
		return
	}

	data := make([]DashboardResponse, 0, len(dashboards))
	for _, dashboard := range dashboards {
		resp, err := toDashboardResponse(dashboard)
		if err != nil {
			sendError(c, http.StatusInternalServerError, "Failed to decode dashboard", err)
			return
		}
		data = append(data, resp)
	}

	sendSuccess(c, http.StatusOK, ListDashboardsResponse{
		Object:  "list",
		Data:    data,
		HasMore: int64(page.Offset)+int64(len(dashboards)) < total,
		Total:   total,
	})
}

// GetDashboard godoc
// @Summary Get dashboard by ID
// @Description Returns a dashboard with its widget layout
// @Tags dashboards
// @Produce json
// @Param dashboard_id path string true "Dashboard ID"
// @Success 200 {object} DashboardResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /dashboards/{dashboard_id} [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	id, ok := dashboardIDFromPath(c)
	if !ok {
		return
	}

	dashboard, err := h.common.db.GetDashboard(c.Request.Context(), id)
	if err != nil {
		handleDBError(c, err, "Dashboard not found")
		return
	}

	resp, err := toDashboardResponse(dashboard)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to decode dashboard", err)
		return
	}
	sendSuccess(c, http.StatusOK, resp)
}

// UpdateDashboard godoc
// @Summary Replace dashboard
// @Description Replaces the dashboard name, description and widget layout
// @Tags dashboards
// @Accept json
// @Produce json
// @Param dashboard_id path string true "Dashboard ID"
// @Param request body DashboardRequest true "Dashboard details"
// @Success 200 {object} DashboardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /dashboards/{dashboard_id} [put]
func (h *DashboardHandler) UpdateDashboard(c *gin.Context) {
	id, ok := dashboardIDFromPath(c)
	if !ok {
		return
	}

	var req DashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := validateWidgets(req.Widgets); err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	widgets, err := marshalWidgets(req.Widgets)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to encode widgets", err)
		return
	}

	description := pgtype.Text{}
	if req.Description != "" {
		description = pgtype.Text{String: req.Description, Valid: true}
	}

	dashboard, err := h.common.db.UpdateDashboard(c.Request.Context(), db.UpdateDashboardParams{
		ID:          id,
		Name:        req.Name,
		Description: description,
		Widgets:     widgets,
	})
	if err != nil {
		handleDBError(c, err, "Dashboard not found")
		return
	}

	resp, err := toDashboardResponse(dashboard)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to decode dashboard", err)
		return
	}
	sendSuccess(c, http.StatusOK, resp)
}

// DeleteDashboard godoc
// @Summary Delete dashboard
// @Description Removes a dashboard
// @Tags dashboards
// @Produce json
// @Param dashboard_id path string true "Dashboard ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /dashboards/{dashboard_id} [delete]
func (h *DashboardHandler) DeleteDashboard(c *gin.Context) {
	id, ok := dashboardIDFromPath(c)
	if !ok {
		return
	}

	if err := h.common.db.DeleteDashboard(c.Request.Context(), id); err != nil {
		handleDBError(c, err, "Dashboard not found")
		return
	}

	sendSuccessMessage(c, http.StatusOK, "Dashboard deleted successfully")
}
