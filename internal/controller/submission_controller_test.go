package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"heatcurve_backend/internal/config"
	"heatcurve_backend/internal/model"
	"heatcurve_backend/internal/service"
	"heatcurve_backend/pkg/cache"
	"heatcurve_backend/pkg/database"

	"github.com/gin-gonic/gin"
)

// newOfflineRouter 搭一个未配置数据库的最小路由：
// 状态自然评估为 OFFLINE: not configured，不需要真实 MySQL
func newOfflineRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Activity.ID = "2025-heat-curve-01"

	c := cache.NewMemoryCache()
	handle := database.NewHandle(nil)
	status := service.NewStatusService(cfg, handle, c)
	status.Init()

	students := repositoryStudent{handle}
	submissions := repositorySubmission{handle}

	submissionSvc := service.NewSubmissionService(students, submissions, status, c, cfg.Activity.ID)
	dashboardSvc := service.NewDashboardService(submissions, status, c, cfg.Activity.ID, cfg.Activity.CacheTTL)

	router := gin.New()
	router.POST("/api/submissions", NewSubmissionController(submissionSvc).Submit)
	router.GET("/api/submissions", NewDashboardController(dashboardSvc).List)
	router.GET("/api/status", NewHealthController(status).Status)
	return router
}

// OFFLINE 下这些实现不应被触达；触达即测试失败
type repositoryStudent struct{ h *database.Handle }

func (r repositoryStudent) Exists(string) (bool, error) {
	panic("roster lookup attempted while offline")
}

type repositorySubmission struct{ h *database.Handle }

func (r repositorySubmission) Upsert(*model.Submission) error {
	panic("write attempted while offline")
}

func (r repositorySubmission) ListByActivity(string) ([]model.SubmissionRecord, error) {
	panic("read attempted while offline")
}

func TestSubmitInvalidIDReturns400(t *testing.T) {
	router := newOfflineRouter(t)

	body := `{"studentId":"abc12","rows":[{"time":0,"temperature":20}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/submissions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestSubmitWhileOfflineReturns503(t *testing.T) {
	router := newOfflineRouter(t)

	body := `{"studentId":"10130","rows":[{"time":0,"temperature":20},{"time":1,"temperature":18.5}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/submissions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestDashboardWhileOfflineReturnsEmptyGroups(t *testing.T) {
	router := newOfflineRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Data struct {
			Groups  []json.RawMessage `json:"groups"`
			Warning string            `json:"warning"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data.Groups) != 0 {
		t.Fatalf("expected empty groups, got %d", len(resp.Data.Groups))
	}
	if resp.Data.Warning != "" {
		t.Fatalf("offline dashboard is an empty state, not a warning: %q", resp.Data.Warning)
	}
}

func TestStatusEndpointReportsOffline(t *testing.T) {
	router := newOfflineRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "OFFLINE: not configured") {
		t.Fatalf("expected offline status in body: %s", rr.Body.String())
	}
}
