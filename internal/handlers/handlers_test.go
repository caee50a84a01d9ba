package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/expertbi/expertbi-api/internal/auth"
	"github.com/expertbi/expertbi-api/internal/charts"
	"github.com/expertbi/expertbi-api/internal/constants"
	"github.com/expertbi/expertbi-api/internal/db"
	"github.com/expertbi/expertbi-api/internal/logger"
	"github.com/expertbi/expertbi-api/internal/mocks"
	"github.com/expertbi/expertbi-api/internal/services"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// fakeDispatcher records enqueued dataset IDs.
type fakeDispatcher struct {
	enqueued []int64
}

func (f *fakeDispatcher) Enqueue(_ context.Context, datasetID int64) bool {
	f.enqueued = append(f.enqueued, datasetID)
	return true
}

type testEnv struct {
	router     *gin.Engine
	querier    *mocks.MockQuerier
	dispatcher *fakeDispatcher
	uploadDir  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	querier := mocks.NewMockQuerier(ctrl)
	dispatcher := &fakeDispatcher{}
	uploadDir := t.TempDir()

	common := NewCommonServices(querier, services.NewAnalysisService(querier), dispatcher, uploadDir)
	datasets := NewDatasetHandler(common)
	dashboards := NewDashboardHandler(common)
	insights := NewInsightHandler(common)
	chartsHandler := NewChartHandler(common)
	authHandler := NewAuthHandler(common)

	router := gin.New()
	router.POST("/auth/register", authHandler.Register)
	router.POST("/auth/login", authHandler.Login)
	router.POST("/datasets/upload", datasets.UploadDataset)
	router.GET("/datasets", datasets.ListDatasets)
	router.GET("/datasets/:dataset_id", datasets.GetDataset)
	router.DELETE("/datasets/:dataset_id", datasets.DeleteDataset)
	router.GET("/datasets/:dataset_id/preview", datasets.PreviewDataset)
	router.GET("/datasets/:dataset_id/analysis", datasets.GetAnalysis)
	router.GET("/datasets/:dataset_id/export", datasets.ExportDataset)
	router.GET("/datasets/:dataset_id/insights", insights.ListInsights)
	router.POST("/datasets/:dataset_id/chart-data", chartsHandler.GetChartData)
	router.POST("/dashboards", dashboards.CreateDashboard)
	router.GET("/dashboards/:dashboard_id", dashboards.GetDashboard)

	return &testEnv{router: router, querier: querier, dispatcher: dispatcher, uploadDir: uploadDir}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func multipartUpload(t *testing.T, filename, contents string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(contents))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return buf, writer.FormDataContentType()
}

func testDataset(t *testing.T, dir, contents string) db.Dataset {
	t.Helper()
	path := filepath.Join(dir, "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return db.Dataset{
		ID:       42,
		Name:     "sales",
		FileName: "sales.csv",
		FilePath: path,
		FileType: "csv",
		Status:   constants.DatasetStatusCompleted,
	}
}

const sampleCSV = "region,amount\neast,100\nwest,200\nnorth,300\n"

func TestUploadDataset_RejectsUnsupportedExtension(t *testing.T) {
	env := newTestEnv(t)

	body, contentType := multipartUpload(t, "notes.txt", "hello")
	req := httptest.NewRequest(http.MethodPost, "/datasets/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "File type .txt not supported. Please upload CSV, Excel, or JSON files.", resp.Error)
	assert.Empty(t, env.dispatcher.enqueued)
}

func TestUploadDataset_StoresFileAndEnqueues(t *testing.T) {
	env := newTestEnv(t)

	env.querier.EXPECT().
		CreateDataset(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params db.CreateDatasetParams) (db.Dataset, error) {
			assert.Equal(t, "sales", params.Name)
			assert.Equal(t, "csv", params.FileType)
			assert.Equal(t, constants.DatasetStatusUploaded, params.Status)
			assert.Equal(t, int32(3), params.RowCount)
			assert.Equal(t, int32(2), params.ColumnCount)
			assert.FileExists(t, params.FilePath)
			return db.Dataset{
				ID:       7,
				Name:     params.Name,
				FileName: params.FileName,
				FilePath: params.FilePath,
				FileType: params.FileType,
				Status:   params.Status,
			}, nil
		})

	body, contentType := multipartUpload(t, "sales.csv", sampleCSV)
	req := httptest.NewRequest(http.MethodPost, "/datasets/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp DatasetResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, constants.DatasetStatusUploaded, resp.Status)
	assert.Equal(t, []int64{7}, env.dispatcher.enqueued)
}

func TestGetDataset_NotFound(t *testing.T) {
	env := newTestEnv(t)
	env.querier.EXPECT().
		GetDataset(gomock.Any(), int64(99)).
		Return(db.Dataset{}, pgx.ErrNoRows)

	w := env.do(t, http.MethodGet, "/datasets/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPreviewDataset_LimitsRows(t *testing.T) {
	env := newTestEnv(t)
	dataset := testDataset(t, env.uploadDir, sampleCSV)
	env.querier.EXPECT().
		GetDataset(gomock.Any(), dataset.ID).
		Return(dataset, nil)

	w := env.do(t, http.MethodGet, "/datasets/42/preview?limit=2", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp PreviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"region", "amount"}, resp.Columns)
	assert.Equal(t, 3, resp.TotalRows)
	assert.Equal(t, 2, resp.DisplayedRows)
	assert.Len(t, resp.Rows, 2)
}

func TestGetAnalysis_ConflictUntilCompleted(t *testing.T) {
	env := newTestEnv(t)
	env.querier.EXPECT().
		GetDataset(gomock.Any(), int64(42)).
		Return(db.Dataset{ID: 42, Status: constants.DatasetStatusProcessing}, nil)

	w := env.do(t, http.MethodGet, "/datasets/42/analysis", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetAnalysis_ReturnsStoredAnalysis(t *testing.T) {
	env := newTestEnv(t)
	env.querier.EXPECT().
		GetDataset(gomock.Any(), int64(42)).
		Return(db.Dataset{ID: 42, Status: constants.DatasetStatusCompleted}, nil)
	env.querier.EXPECT().
		GetDatasetAnalysis(gomock.Any(), int64(42)).
		Return(db.DatasetAnalysis{
			DatasetID:     42,
			Profile:       []byte(`{"row_count":3}`),
			DetectedTypes: []byte(`{"columns":[]}`),
			QualityScore:  91.5,
		}, nil)

	w := env.do(t, http.MethodGet, "/datasets/42/analysis", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp AnalysisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.DatasetID)
	assert.InDelta(t, 91.5, resp.QualityScore, 0.001)
}

func TestExportDataset_UnknownFormat(t *testing.T) {
	env := newTestEnv(t)
	env.querier.EXPECT().
		GetDataset(gomock.Any(), int64(42)).
		Return(db.Dataset{ID: 42, Status: constants.DatasetStatusCompleted}, nil)

	w := env.do(t, http.MethodGet, "/datasets/42/export?format=parquet", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportDataset_CSV(t *testing.T) {
	env := newTestEnv(t)
	dataset := testDataset(t, env.uploadDir, sampleCSV)
	env.querier.EXPECT().
		GetDataset(gomock.Any(), dataset.ID).
		Return(dataset, nil)

	w := env.do(t, http.MethodGet, "/datasets/42/export?format=csv", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="sales.csv"`)
	assert.Contains(t, w.Body.String(), "region,amount")
}

func TestDeleteDataset_RemovesFileThenRow(t *testing.T) {
	env := newTestEnv(t)
	dataset := testDataset(t, env.uploadDir, sampleCSV)
	env.querier.EXPECT().
		GetDataset(gomock.Any(), dataset.ID).
		Return(dataset, nil)
	env.querier.EXPECT().
		DeleteDataset(gomock.Any(), dataset.ID).
		Return(nil)

	w := env.do(t, http.MethodDelete, "/datasets/42", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoFileExists(t, dataset.FilePath)
}

func TestChartData_AggregatesDatasetFile(t *testing.T) {
	env := newTestEnv(t)
	dataset := testDataset(t, env.uploadDir, sampleCSV)
	env.querier.EXPECT().
		GetDataset(gomock.Any(), dataset.ID).
		Return(dataset, nil)

	w := env.do(t, http.MethodPost, "/datasets/42/chart-data", ChartDataRequest{
		Type: charts.KindBar,
		Config: charts.ChartConfig{
			XAxis:       "region",
			YAxis:       "amount",
			Aggregation: charts.AggSum,
		},
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp ChartDataResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"east", "west", "north"}, resp.ChartData.Labels)
	require.Len(t, resp.ChartData.Datasets, 1)
	assert.Equal(t, []float64{100, 200, 300}, resp.ChartData.Datasets[0].Data)
	assert.Equal(t, "bar", resp.RenderSpec.Kind)
}

func TestChartData_RejectsUnknownType(t *testing.T) {
	env := newTestEnv(t)
	env.querier.EXPECT().
		GetDataset(gomock.Any(), int64(42)).
		Return(db.Dataset{ID: 42}, nil)

	w := env.do(t, http.MethodPost, "/datasets/42/chart-data", map[string]interface{}{
		"type": "hexbin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_ShortPassword(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/auth/register", RegisterRequest{
		Email:    "ana@example.com",
		Name:     "Ana",
		Password: "short",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Password must be at least 8 characters", resp.Error)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.querier.EXPECT().
		GetUserByEmail(gomock.Any(), "ana@example.com").
		Return(db.User{ID: 1, Email: "ana@example.com"}, nil)

	w := env.do(t, http.MethodPost, "/auth/register", RegisterRequest{
		Email:    "ana@example.com",
		Name:     "Ana",
		Password: "long-enough-password",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "handlers-test-secret")
	env := newTestEnv(t)

	var storedHash string
	env.querier.EXPECT().
		GetUserByEmail(gomock.Any(), "ana@example.com").
		Return(db.User{}, pgx.ErrNoRows)
	env.querier.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params db.CreateUserParams) (db.User, error) {
			storedHash = params.HashedPassword
			assert.True(t, auth.CheckPassword(storedHash, "long-enough-password"))
			return db.User{ID: 5, Email: params.Email, Name: params.Name, HashedPassword: storedHash}, nil
		})

	w := env.do(t, http.MethodPost, "/auth/register", RegisterRequest{
		Email:    "ana@example.com",
		Name:     "Ana",
		Password: "long-enough-password",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var registered AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, int64(5), registered.User.ID)

	userID, err := auth.ValidateToken(registered.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(5), userID)

	env.querier.EXPECT().
		GetUserByEmail(gomock.Any(), "ana@example.com").
		Return(db.User{ID: 5, Email: "ana@example.com", Name: "Ana", HashedPassword: storedHash}, nil)
	env.querier.EXPECT().
		UpdateUserLastLogin(gomock.Any(), int64(5)).
		Return(db.User{ID: 5, Email: "ana@example.com", Name: "Ana", HashedPassword: storedHash}, nil)

	w = env.do(t, http.MethodPost, "/auth/login", LoginRequest{
		Email:    "ana@example.com",
		Password: "long-enough-password",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	hash, err := auth.HashPassword("the-real-password")
	require.NoError(t, err)
	env.querier.EXPECT().
		GetUserByEmail(gomock.Any(), "ana@example.com").
		Return(db.User{ID: 5, Email: "ana@example.com", HashedPassword: hash}, nil)

	w := env.do(t, http.MethodPost, "/auth/login", LoginRequest{
		Email:    "ana@example.com",
		Password: "not-the-password",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid email or password", resp.Error)
}

func TestCreateDashboard_RejectsDuplicateWidgetIDs(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/dashboards", DashboardRequest{
		Name: "Sales overview",
		Widgets: []charts.ChartWidget{
			{ID: "w1", Type: charts.KindBar, Title: "By region"},
			{ID: "w1", Type: charts.KindLine, Title: "Over time"},
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "duplicate widget id")
}

func TestDashboard_WidgetRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	dashboardID := uuid.New()

	widgets := []charts.ChartWidget{
		{
			ID:        "w1",
			Type:      charts.KindBar,
			Title:     "Revenue by region",
			DatasetID: 42,
			Config: charts.ChartConfig{
				XAxis:       "region",
				YAxis:       "amount",
				Aggregation: charts.AggSum,
				SortOrder:   "desc",
			},
			Position: charts.WidgetPosition{X: 0, Y: 0, W: 6, H: 4},
			Filters: []charts.Filter{
				{ID: "f1", Column: "region", Operator: charts.OpNotEquals, Value: "unknown"},
			},
		},
	}

	var stored []byte
	env.querier.EXPECT().
		CreateDashboard(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params db.CreateDashboardParams) (db.Dashboard, error) {
			stored = params.Widgets
			return db.Dashboard{ID: dashboardID, Name: params.Name, Widgets: params.Widgets}, nil
		})

	w := env.do(t, http.MethodPost, "/dashboards", DashboardRequest{
		Name:    "Sales overview",
		Widgets: widgets,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	env.querier.EXPECT().
		GetDashboard(gomock.Any(), dashboardID).
		Return(db.Dashboard{ID: dashboardID, Name: "Sales overview", Widgets: stored}, nil)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/dashboards/%s", dashboardID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, widgets, resp.Widgets)
}

func TestListInsights_ReturnsListEnvelope(t *testing.T) {
	env := newTestEnv(t)
	env.querier.EXPECT().
		GetDataset(gomock.Any(), int64(42)).
		Return(db.Dataset{ID: 42}, nil)
	env.querier.EXPECT().
		ListInsightsByDataset(gomock.Any(), int64(42)).
		Return([]db.Insight{
			{ID: 1, DatasetID: 42, InsightType: "missing_data", Category: "data_quality",
				Title: "Missing values in amount", Confidence: 1, Importance: 0.6,
				ColumnName: pgtype.Text{String: "amount", Valid: true}},
		}, nil)

	w := env.do(t, http.MethodGet, "/datasets/42/insights", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Object string            `json:"object"`
		Data   []InsightResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "list", envelope.Object)
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "amount", envelope.Data[0].ColumnName)
}
