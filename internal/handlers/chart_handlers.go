package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expertbi/expertbi-api/internal/charts"
	"github.com/expertbi/expertbi-api/internal/tabular"
)

// ChartHandler computes chart data from dataset files on demand
type ChartHandler struct {
	common *CommonServices
}

// NewChartHandler creates a new ChartHandler instance
func NewChartHandler(common *CommonServices) *ChartHandler {
	return &ChartHandler{common: common}
}

// ChartDataRequest represents the request body for chart data generation
type ChartDataRequest struct {
	Type    charts.ChartKind   `json:"type" binding:"required"`
	Title   string             `json:"title"`
	Config  charts.ChartConfig `json:"config"`
	Filters []charts.Filter    `json:"filters"`
}

// ChartDataResponse carries the aggregated series and the render spec
type ChartDataResponse struct {
	ChartData  charts.ChartData  `json:"chart_data"`
	RenderSpec charts.RenderSpec `json:"render_spec"`
}

// GetChartData godoc
// @Summary Generate chart data
// @Description Aggregates the dataset per the widget configuration and renders it
// @Tags charts
// @Accept json
// @Produce json
// @Param dataset_id path int true "Dataset ID"
// @Param request body ChartDataRequest true "Widget configuration"
// @Success 200 {object} ChartDataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /datasets/{dataset_id}/chart-data [post]
func (h *ChartHandler) GetChartData(c *gin.Context) {
	datasetID, ok := parseDatasetID(c)
	if !ok {
		return
	}
	dataset, err := h.common.db.GetDataset(c.Request.Context(), datasetID)
	if err != nil {
		handleDBError(c, err, "Dataset not found")
		return
	}

	var req ChartDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if !req.Type.IsSupported() {
		sendError(c, http.StatusBadRequest,
			fmt.Sprintf("Unsupported chart type: %s", req.Type), nil)
		return
	}

	table, err := tabular.ParseFile(dataset.FilePath, dataset.FileType)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to read dataset file", err)
		return
	}

	widget := charts.ChartWidget{
		Type:      req.Type,
		Title:     req.Title,
		DatasetID: dataset.ID,
		Config:    req.Config,
		Filters:   req.Filters,
	}

	data := charts.GenerateWidget(table.Rows, widget)
	spec := charts.RenderWidget(widget, data)

	sendSuccess(c, http.StatusOK, ChartDataResponse{
		ChartData:  data,
		RenderSpec: spec,
	})
}
