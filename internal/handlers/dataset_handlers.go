package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"github.com/expertbi/expertbi-api/internal/analysis"
	"github.com/expertbi/expertbi-api/internal/auth"
	"github.com/expertbi/expertbi-api/internal/constants"
	"github.com/expertbi/expertbi-api/internal/db"
	"github.com/expertbi/expertbi-api/internal/logger"
	"github.com/expertbi/expertbi-api/internal/tabular"
)

// defaultPreviewLimit is how many rows a preview returns when the
// client does not pass ?limit.
const defaultPreviewLimit = 100

// allowedUploadExtensions is the upload allow-list.
var allowedUploadExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
	".json": true,
}

// DatasetHandler handles dataset upload, lifecycle and analysis reads
type DatasetHandler struct {
	common *CommonServices
}

// NewDatasetHandler creates a new DatasetHandler instance
func NewDatasetHandler(common *CommonServices) *DatasetHandler {
	return &DatasetHandler{common: common}
}

// DatasetResponse represents the standardized API response for a dataset
type DatasetResponse struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	FileName     string     `json:"file_name"`
	FileType     string     `json:"file_type"`
	FileSize     int64      `json:"file_size"`
	RowCount     int32      `json:"row_count"`
	ColumnCount  int32      `json:"column_count"`
	Status       string     `json:"status"`
	ErrorMessage string     `json:"error_message,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// ListDatasetsResponse represents the paginated response for dataset lists
type ListDatasetsResponse struct {
	Object  string            `json:"object"`
	Data    []DatasetResponse `json:"data"`
	HasMore bool              `json:"has_more"`
	Total   int64             `json:"total"`
}

// PreviewResponse represents the first rows of a dataset
type PreviewResponse struct {
	Columns       []string                 `json:"columns"`
	Rows          []map[string]interface{} `json:"rows"`
	TotalRows     int                      `json:"total_rows"`
	DisplayedRows int                      `json:"displayed_rows"`
}

// AnalysisResponse represents the stored analysis for a dataset
type AnalysisResponse struct {
	DatasetID     int64           `json:"dataset_id"`
	Profile       json.RawMessage `json:"profile" swaggertype:"object"`
	DetectedTypes json.RawMessage `json:"detected_types" swaggertype:"object"`
	QualityScore  float64         `json:"quality_score"`
	CreatedAt     *time.Time      `json:"created_at,omitempty"`
}

func toDatasetResponse(dataset db.Dataset) DatasetResponse {
	return DatasetResponse{
		ID:           dataset.ID,
		Name:         dataset.Name,
		Description:  textOrEmpty(dataset.Description),
		FileName:     dataset.FileName,
		FileType:     dataset.FileType,
		FileSize:     dataset.FileSize,
		RowCount:     dataset.RowCount,
		ColumnCount:  dataset.ColumnCount,
		Status:       dataset.Status,
		ErrorMessage: textOrEmpty(dataset.ErrorMessage),
		CreatedAt:    timeOrNil(dataset.CreatedAt),
		UpdatedAt:    timeOrNil(dataset.UpdatedAt),
	}
}

// datasetFromPath loads the dataset referenced by the :dataset_id param.
func (h *DatasetHandler) datasetFromPath(c *gin.Context) (db.Dataset, bool) {
	datasetID, err := strconv.ParseInt(c.Param("dataset_id"), 10, 64)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid dataset ID format", err)
		return db.Dataset{}, false
	}
	dataset, err := h.common.db.GetDataset(c.Request.Context(), datasetID)
	if err != nil {
		handleDBError(c, err, "Dataset not found")
		return db.Dataset{}, false
	}
	return dataset, true
}

// UploadDataset godoc
// @Summary Upload a dataset
// @Description Accepts a CSV, Excel or JSON file and queues it for analysis
// @Tags datasets
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Data file"
// @Param name formData string false "Dataset name"
// @Param description formData string false "Dataset description"
// @Success 201 {object} DatasetResponse
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /datasets/upload [post]
func (h *DatasetHandler) UploadDataset(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		sendError(c, http.StatusBadRequest, "No file provided", err)
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedUploadExtensions[ext] {
		sendError(c, http.StatusBadRequest,
			fmt.Sprintf("File type %s not supported. Please upload CSV, Excel, or JSON files.", ext), nil)
		return
	}

	if err := os.MkdirAll(h.common.uploadDir, 0o755); err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to prepare upload directory", err)
		return
	}

	storedName := time.Now().Format("20060102_150405") + "_" + filepath.Base(fileHeader.Filename)
	storedPath := filepath.Join(h.common.uploadDir, storedName)
	if err := c.SaveUploadedFile(fileHeader, storedPath); err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to store uploaded file", err)
		return
	}

	name := c.PostForm("name")
	if name == "" {
		name = strings.TrimSuffix(fileHeader.Filename, ext)
	}
	description := pgtype.Text{}
	if d := c.PostForm("description"); d != "" {
		description = pgtype.Text{String: d, Valid: true}
	}

	fileType := tabular.NormalizeExtension(ext)

	// Counts are best-effort at upload time; the analysis run is
	// authoritative and will fail the dataset if the file is unreadable.
	rowCount, columnCount := 0, 0
	if table, parseErr := tabular.ParseFile(storedPath, fileType); parseErr == nil {
		rowCount = table.RowCount()
		columnCount = table.ColumnCount()
	} else {
		logger.Warn("could not count uploaded file at intake",
			zap.String("file", fileHeader.Filename),
			zap.Error(parseErr))
	}

	userID := pgtype.Int8{}
	if id, ok := auth.CurrentUserID(c); ok {
		userID = pgtype.Int8{Int64: id, Valid: true}
	}

	dataset, err := h.common.db.CreateDataset(c.Request.Context(), db.CreateDatasetParams{
		UserID:      userID,
		Name:        name,
		Description: description,
		FileName:    fileHeader.Filename,
		FilePath:    storedPath,
		FileType:    fileType,
		FileSize:    fileHeader.Size,
		RowCount:    int32(rowCount),
		ColumnCount: int32(columnCount),
		Status:      constants.DatasetStatusUploaded,
	})
	if err != nil {
		handleDBError(c, err, "Dataset not found")
		return
	}

	if !h.common.dispatcher.Enqueue(c.Request.Context(), dataset.ID) {
		logger.Warn("dataset left for later processing",
			zap.Int64("dataset_id", dataset.ID))
	}

	sendSuccess(c, http.StatusCreated, toDatasetResponse(dataset))
}

// ListDatasets godoc
// @Summary List datasets
// @Description Returns a paginated list of datasets
// @Tags datasets
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} ListDatasetsResponse
// @Security ApiKeyAuth
// @Router /datasets [get]
func (h *DatasetHandler) ListDatasets(c *gin.Context) {
	page := parsePagination(c)

	datasets, err := h.common.db.ListDatasets(c.Request.Context(), db.ListDatasetsParams{
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		handleDBError(c, err, "Datasets not found")
		return
	}
	total, err := h.common.db.CountDatasets(c.Request.Context())
	if err != nil {
		handleDBError(c, err, "Datasets not found")
		return
	}

	data := make([]DatasetResponse, 0, len(datasets))
	for _, dataset := range datasets {
		data = append(data, toDatasetResponse(dataset))
	}

	sendSuccess(c, http.StatusOK, ListDatasetsResponse{
		Object:  "list",
		Data:    data,
		HasMore: int64(page.Offset)+int64(len(datasets)) < total,
		Total:   total,
	})
}

// GetDataset godoc
// @Summary Get dataset by ID
// @Description Returns dataset metadata and processing status
// @Tags datasets
// @Produce json
// @Param dataset_id path int true "Dataset ID"
// @Success 200 {object} DatasetResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /datasets/{dataset_id} [get]
func (h *DatasetHandler) GetDataset(c *gin.Context) {
	dataset, ok := h.datasetFromPath(c)
	if !ok {
		return
	}
	sendSuccess(c, http.StatusOK, toDatasetResponse(dataset))
}

// DeleteDataset godoc
// @Summary Delete dataset
// @Description Removes the stored file and the dataset row
// @Tags datasets
// @Produce json
// @Param dataset_id path int true "Dataset ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /datasets/{dataset_id} [delete]
func (h *DatasetHandler) DeleteDataset(c *gin.Context) {
	dataset, ok := h.datasetFromPath(c)
	if !ok {
		return
	}

	if err := os.Remove(dataset.FilePath); err != nil && !os.IsNotExist(err) {
		sendError(c, http.StatusInternalServerError, "Failed to remove dataset file", err)
		return
	}
	if err := h.common.db.DeleteDataset(c.Request.Context(), dataset.ID); err != nil {
		handleDBError(c, err, "Dataset not found")
		return
	}

	sendSuccessMessage(c, http.StatusOK, "Dataset deleted successfully")
}

// PreviewDataset godoc
// @Summary Preview dataset rows
// @Description Returns the first rows of the dataset
// @Tags datasets
// @Produce json
// @Param dataset_id path int true "Dataset ID"
// @Param limit query int false "Maximum rows to return (default 100)"
// @Success 200 {object} PreviewResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /datasets/{dataset_id}/preview [get]
func (h *DatasetHandler) PreviewDataset(c *gin.Context) {
	dataset, ok := h.datasetFromPath(c)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPreviewLimit)))
	if err != nil || limit < 1 {
		limit = defaultPreviewLimit
	}

	table, err := tabular.ParseFile(dataset.FilePath, dataset.FileType)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to read dataset file", err)
		return
	}

	head := table.Head(limit)
	rows := head.Rows
	if rows == nil {
		rows = []map[string]interface{}{}
	}

	sendSuccess(c, http.StatusOK, PreviewResponse{
		Columns:       table.Columns,
		Rows:          rows,
		TotalRows:     table.RowCount(),
		DisplayedRows: head.RowCount(),
	})
}

// GetAnalysis godoc
// @Summary Get dataset analysis
// @Description Returns the stored profile and detected types once processing completes
// @Tags datasets
// @Produce json
// @Param dataset_id path int true "Dataset ID"
// @Success 200 {object} AnalysisResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /datasets/{dataset_id}/analysis [get]
func (h *DatasetHandler) GetAnalysis(c *gin.Context) {
	dataset, ok := h.datasetFromPath(c)
	if !ok {
		return
	}
	if dataset.Status != constants.DatasetStatusCompleted {
		sendError(c, http.StatusConflict,
			fmt.Sprintf("Dataset analysis is not ready (status: %s)", dataset.Status), nil)
		return
	}

	stored, err := h.common.db.GetDatasetAnalysis(c.Request.Context(), dataset.ID)
	if err != nil {
		handleDBError(c, err, "Analysis not found")
		return
	}

	sendSuccess(c, http.StatusOK, AnalysisResponse{
		DatasetID:     stored.DatasetID,
		Profile:       stored.Profile,
		DetectedTypes: stored.DetectedTypes,
		QualityScore:  stored.QualityScore,
		CreatedAt:     timeOrNil(stored.CreatedAt),
	})
}

// DetectTypes godoc
// @Summary Detect column types
// @Description Runs type detection over the dataset file and returns per-column results
// @Tags datasets
// @Produce json
// @Param dataset_id path int true "Dataset ID"
// @Success 200 {object} analysis.TypeDetection
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /datasets/{dataset_id}/detect-types [post]
func (h *DatasetHandler) DetectTypes(c *gin.Context) {
	dataset, ok := h.datasetFromPath(c)
	if !ok {
		return
	}

	table, err := tabular.ParseFile(dataset.FilePath, dataset.FileType)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to read dataset file", err)
		return
	}

	sendSuccess(c, http.StatusOK, analysis.DetectTypes(table))
}

// ExportDataset godoc
// @Summary Export dataset
// @Description Streams the dataset in the requested format
// @Tags datasets
// @Produce json
// @Param dataset_id path int true "Dataset ID"
// @Param format query string true "Export format (csv, json or xlsx)"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /datasets/{dataset_id}/export [get]
func (h *DatasetHandler) ExportDataset(c *gin.Context) {
	dataset, ok := h.datasetFromPath(c)
	if !ok {
		return
	}

	format := tabular.NormalizeExtension(c.Query("format"))
	switch format {
	case constants.ExportFormatCSV, constants.ExportFormatJSON, constants.ExportFormatXLSX:
	default:
		sendError(c, http.StatusBadRequest,
			fmt.Sprintf("Unknown export format: %s", c.Query("format")), nil)
		return
	}

	table, err := tabular.ParseFile(dataset.FilePath, dataset.FileType)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to read dataset file", err)
		return
	}

	c.Header("Content-Type", tabular.ContentType(format))
	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s.%s"`, dataset.Name, format))
	if err := tabular.Export(c.Writer, table, format); err != nil {
		logger.Error("dataset export failed",
			zap.Int64("dataset_id", dataset.ID),
			zap.String("format", format),
			zap.Error(err))
	}
}

// GetRecommendations godoc
// @Summary Chart recommendations
// @Description Returns ranked chart suggestions for the dataset
// @Tags datasets
// @Produce json
// @Param dataset_id path int true "Dataset ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /datasets/{dataset_id}/recommendations [get]
func (h *DatasetHandler) GetRecommendations(c *gin.Context) {
	dataset, ok := h.datasetFromPath(c)
	if !ok {
		return
	}

	table, err := tabular.ParseFile(dataset.FilePath, dataset.FileType)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to read dataset file", err)
		return
	}

	sendList(c, analysis.Recommend(table))
}
