package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/expertbi/expertbi-api/internal/db"
	"github.com/expertbi/expertbi-api/internal/tabular"
)

// InsightHandler handles stored insight reads and regeneration
type InsightHandler struct {
	common *CommonServices
}

// NewInsightHandler creates a new InsightHandler instance
func NewInsightHandler(common *CommonServices) *InsightHandler {
	return &InsightHandler{common: common}
}

// InsightResponse represents the standardized API response for an insight
type InsightResponse struct {
	ID          int64           `json:"id"`
	DatasetID   int64           `json:"dataset_id"`
	InsightType string          `json:"insight_type"`
	Category    string          `json:"category"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ColumnName  string          `json:"column_name,omitempty"`
	Confidence  float64         `json:"confidence"`
	Importance  float64         `json:"importance"`
	Metadata    json.RawMessage `json:"metadata,omitempty" swaggertype:"object"`
	CreatedAt   *time.Time      `json:"created_at,omitempty"`
}

func toInsightResponse(insight db.Insight) InsightResponse {
	return InsightResponse{
		ID:          insight.ID,
		DatasetID:   insight.DatasetID,
		InsightType: insight.InsightType,
		Category:    insight.Category,
		Title:       insight.Title,
		Description: insight.Description,
		ColumnName:  textOrEmpty(insight.ColumnName),
		Confidence:  insight.Confidence,
		Importance:  insight.Importance,
		Metadata:    insight.Metadata,
		CreatedAt:   timeOrNil(insight.CreatedAt),
	}
}

func toInsightResponses(insights []db.Insight) []InsightResponse {
	data := make([]InsightResponse, 0, len(insights))
	for _, insight := range insights {
		data = append(data, toInsightResponse(insight))
	}
	return data
}

// parseDatasetID reads the :dataset_id path parameter.
func parseDatasetID(c *gin.Context) (int64, bool) {
	datasetID, err := strconv.ParseInt(c.Param("dataset_id"), 10, 64)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid dataset ID format", err)
		return 0, false
	}
	return datasetID, true
}

// ListInsights godoc
// @Summary List insights
// @Description Returns the stored insights for a dataset
// @Tags insights
// @Produce json
// @Param dataset_id path int true "Dataset ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /datasets/{dataset_id}/insights [get]
func (h *InsightHandler) ListInsights(c *gin.Context) {
	datasetID, ok := parseDatasetID(c)
	if !ok {
		return
	}
	if _, err := h.common.db.GetDataset(c.Request.Context(), datasetID); err != nil {
		handleDBError(c, err, "Dataset not found")
		return
	}

	insights, err := h.common.db.ListInsightsByDataset(c.Request.Context(), datasetID)
	if err != nil {
		handleDBError(c, err, "Insights not found")
		return
	}

	sendList(c, toInsightResponses(insights))
}

// GenerateInsights godoc
// @Summary Generate insights
// @Description Recomputes insights from the dataset file, replacing stored ones
// @Tags insights
// @Produce json
// @Param dataset_id path int true "Dataset ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /datasets/{dataset_id}/insights/generate [post]
func (h *InsightHandler) GenerateInsights(c *gin.Context) {
	datasetID, ok := parseDatasetID(c)
	if !ok {
		return
	}
	dataset, err := h.common.db.GetDataset(c.Request.Context(), datasetID)
	if err != nil {
		handleDBError(c, err, "Dataset not found")
		return
	}

	table, err := tabular.ParseFile(dataset.FilePath, dataset.FileType)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to read dataset file", err)
		return
	}

	insights, err := h.common.analysis.RegenerateInsights(c.Request.Context(), dataset.ID, table)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to generate insights", err)
		return
	}

	sendList(c, toInsightResponses(insights))
}

// DeleteInsight godoc
// @Summary Delete insight
// @Description Removes a single stored insight
// @Tags insights
// @Produce json
// @Param dataset_id path int true "Dataset ID"
// @Param insight_id path int true "Insight ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /datasets/{dataset_id}/insights/{insight_id} [delete]
func (h *InsightHandler) DeleteInsight(c *gin.Context) {
	datasetID, ok := parseDatasetID(c)
	if !ok {
		return
	}
	insightID, err := strconv.ParseInt(c.Param("insight_id"), 10, 64)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid insight ID format", err)
		return
	}

	if err := h.common.db.DeleteInsight(c.Request.Context(), db.DeleteInsightParams{
		ID:        insightID,
		DatasetID: datasetID,
	}); err != nil {
		handleDBError(c, err, "Insight not found")
		return
	}

	sendSuccessMessage(c, http.StatusOK, "Insight deleted successfully")
}
