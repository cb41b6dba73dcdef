package server

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pulseboard/internal/analytics"
	"pulseboard/internal/catalog"
	"pulseboard/internal/config"
	"pulseboard/internal/featureflags"
	"pulseboard/internal/models"
	"pulseboard/internal/seed"
	"pulseboard/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDashboard is a mock of the Dashboard interface
type MockDashboard struct {
	mock.Mock
}

func (m *MockDashboard) Catalog() *catalog.Catalog {
	return catalog.Default()
}

func (m *MockDashboard) Options() service.DashboardOptions {
	return service.DashboardOptions{DatasetSize: 50, Seed: 42, LookbackDays: 30, DefaultWindowDays: 7, RowLimit: 20}
}

func (m *MockDashboard) Dashboard(ctx context.Context, q service.DashboardQuery) (*analytics.View, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.View), args.Error(1)
}

func (m *MockDashboard) Posts(ctx context.Context, q service.DashboardQuery) ([]models.EnrichedPost, analytics.Filter, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]models.EnrichedPost), args.Get(1).(analytics.Filter), args.Error(2)
}

func (m *MockDashboard) Export(ctx context.Context, q service.DashboardQuery, w io.Writer) (int, error) {
	args := m.Called(ctx, q, w)
	return args.Int(0), args.Error(1)
}

func (m *MockDashboard) ExportFileName() string {
	return "social_analytics_20240315.csv"
}

func (m *MockDashboard) Panels(subject string) map[string]bool {
	out := make(map[string]bool)
	for _, p := range analytics.Panels {
		out[p] = true
	}
	return out
}

func (m *MockDashboard) FeatureFlags(subject string) (map[string]string, map[string]bool) {
	args := m.Called(subject)
	return args.Get(0).(map[string]string), args.Get(1).(map[string]bool)
}

func testConfig() *config.Config {
	return &config.Config{
		Port:                    "8501",
		Env:                     "test",
		AllowedOrigins:          "*",
		ExportRateLimit:         10,
		ExportRateWindowSeconds: 60,
	}
}

func newMockApp(t *testing.T) (*fiber.App, *MockDashboard) {
	t.Helper()
	m := new(MockDashboard)
	srv := NewServer(testConfig(), m, nil)
	return srv.App(), m
}

func decodeJSON(t *testing.T, r io.Reader, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(r).Decode(v))
}

func TestGetDashboard_ParsesQuery(t *testing.T) {
	app, m := newMockApp(t)

	view := &analytics.View{Summary: analytics.Summary{Posts: 3, TotalReach: 12000}}
	m.On("Dashboard", mock.Anything, mock.MatchedBy(func(q service.DashboardQuery) bool {
		return assert.ObjectsAreEqual([]string{"Instagram", "TikTok"}, q.Platforms) &&
			assert.ObjectsAreEqual([]string{"Question"}, q.HookTypes) &&
			q.Days == 14 && q.Surface == "api"
	})).Return(view, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?platform=Instagram,TikTok&hook=Question&days=14", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got analytics.View
	decodeJSON(t, resp.Body, &got)
	assert.Equal(t, 12000, got.Summary.TotalReach)
	m.AssertExpectations(t)
}

func TestGetDashboard_RepeatedParams(t *testing.T) {
	app, m := newMockApp(t)

	m.On("Dashboard", mock.Anything, mock.MatchedBy(func(q service.DashboardQuery) bool {
		return assert.ObjectsAreEqual([]string{"LinkedIn", "TikTok"}, q.Platforms) && q.Days == 0
	})).Return(&analytics.View{}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/dashboard?platform=LinkedIn&platform=TikTok", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	m.AssertExpectations(t)
}

func TestGetDashboard_InvalidDays(t *testing.T) {
	app, m := newMockApp(t)

	for _, days := range []string{"abc", "0", "-3"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/dashboard?days="+days, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "days=%s", days)

		var body models.ErrorResponse
		decodeJSON(t, resp.Body, &body)
		assert.Equal(t, "VALIDATION_ERROR", body.Code)
	}
	m.AssertNotCalled(t, "Dashboard", mock.Anything, mock.Anything)
}

func TestGetDashboard_ServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", models.NewValidationError("invalid filter", analytics.ErrUnknownPlatform), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"internal", models.NewInternalError(errors.New("boom")), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"plain", errors.New("boom"), http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, m := newMockApp(t)
			m.On("Dashboard", mock.Anything, mock.Anything).Return(nil, tt.err)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body models.ErrorResponse
			decodeJSON(t, resp.Body, &body)
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestGetPosts(t *testing.T) {
	app, m := newMockApp(t)
	posts := []models.EnrichedPost{{Post: models.Post{PostID: "POST_001", Platform: "TikTok"}, EngagementRate: 4.2}}
	m.On("Posts", mock.Anything, mock.Anything).Return(posts, analytics.Filter{WindowDays: 7}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Filter analytics.Filter      `json:"filter"`
		Count  int                   `json:"count"`
		Posts  []models.EnrichedPost `json:"posts"`
	}
	decodeJSON(t, resp.Body, &body)
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, 7, body.Filter.WindowDays)
	assert.Equal(t, "POST_001", body.Posts[0].PostID)
}

func TestExportCSV_ErrorIsNotPartial(t *testing.T) {
	app, m := newMockApp(t)
	m.On("Export", mock.Anything, mock.Anything, mock.Anything).Return(0, models.NewInternalError(errors.New("disk full")))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/export.csv", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Empty(t, resp.Header.Get(fiber.HeaderContentDisposition))
}

func TestGetFeatureFlags(t *testing.T) {
	app, m := newMockApp(t)
	m.On("FeatureFlags", mock.Anything).Return(
		map[string]string(nil),
		map[string]bool{analytics.PanelCreativeMix: false},
	)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/feature-flags", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Raw       map[string]string `json:"raw"`
		Evaluated map[string]bool   `json:"evaluated"`
	}
	decodeJSON(t, resp.Body, &body)
	assert.NotNil(t, body.Raw)
	assert.False(t, body.Evaluated[analytics.PanelCreativeMix])
}

func TestUnknownRoute(t *testing.T) {
	tests := []struct {
		path    string
		message string
	}{
		{"/api/nope", "route GET /api/nope not found"},
		{"/api/posts/extra", "route GET /api/posts/extra not found"},
		{"/nope", "Cannot GET /nope"},
	}
	app, _ := newMockApp(t)
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)

			var body models.ErrorResponse
			decodeJSON(t, resp.Body, &body)
			assert.Equal(t, "NOT_FOUND", body.Code)
			assert.Equal(t, tt.message, body.Error)
		})
	}
}

var fixedNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

// newRealServer wires the real generator, cache and service behind the server.
func newRealServer(t *testing.T, cfg *config.Config, flags string) *Server {
	t.Helper()
	clock := func() time.Time { return fixedNow }
	cat := catalog.Default()
	gen := seed.NewGenerator(seed.Options{Catalog: cat, Now: clock})
	svc := service.NewDashboardService(cat, service.NewDatasetCache(gen), featureflags.NewManager(flags), service.DashboardOptions{
		DatasetSize:       50,
		Seed:              42,
		LookbackDays:      30,
		DefaultWindowDays: 7,
		RowLimit:          20,
		Now:               clock,
	})
	return NewServer(cfg, svc, nil)
}

func TestExportCSV_Integration(t *testing.T) {
	app := newRealServer(t, testConfig(), "").App()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/export.csv?days=30", nil), -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, `attachment; filename="social_analytics_20240315.csv"`, resp.Header.Get(fiber.HeaderContentDisposition))
	assert.Equal(t, "50", resp.Header.Get("X-Export-Rows"))

	records, err := csv.NewReader(resp.Body).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 51)
}

func TestExportCSV_UnknownPlatform(t *testing.T) {
	app := newRealServer(t, testConfig(), "").App()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/export.csv?platform=MySpace", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body models.ErrorResponse
	decodeJSON(t, resp.Body, &body)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	assert.Contains(t, body.Details, "MySpace")
}

func TestGetCatalog_Integration(t *testing.T) {
	app := newRealServer(t, testConfig(), "").App()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/catalog", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Catalog     catalog.Catalog `json:"catalog"`
		DatasetSize int             `json:"dataset_size"`
		Seed        int64           `json:"seed"`
	}
	decodeJSON(t, resp.Body, &body)
	assert.Equal(t, 50, body.DatasetSize)
	assert.Equal(t, int64(42), body.Seed)
	assert.Equal(t, []string{"Instagram", "TikTok", "LinkedIn"}, body.Catalog.PlatformNames())
}

func TestDashboardPage(t *testing.T) {
	app := newRealServer(t, testConfig(), "creative_mix=off").App()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/?platform=TikTok&days=30", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	html := string(body)
	assert.Contains(t, html, "Social Intelligence Dashboard")
	assert.Contains(t, html, `id="hook-performance"`)
	assert.NotContains(t, html, `id="creative-mix"`)
	assert.Contains(t, html, `value="TikTok" checked`)
	assert.Contains(t, html, "/api/export.csv?days=30&amp;platform=TikTok")
}

func TestDashboardPage_InvalidFilter(t *testing.T) {
	app := newRealServer(t, testConfig(), "").App()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/?hook=Meme", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "unknown hook type"))
	assert.NotContains(t, string(body), `id="summary"`)
}
