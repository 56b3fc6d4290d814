package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/it-institute-cms/internal/auth"
	"github.com/noah-isme/it-institute-cms/internal/dto"
	"github.com/noah-isme/it-institute-cms/internal/handler"
	"github.com/noah-isme/it-institute-cms/pkg/config"
)

type healthStub struct{}

func (healthStub) Check(ctx context.Context) dto.HealthResponse {
	result := 155
	return dto.HealthResponse{DBStatus: true, MathResult: &result}
}

func newTestRouter(t *testing.T) (*gin.Engine, *auth.TokenManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := auth.NewTokenManager("router-test-signing-secret-0123456789", time.Minute)
	require.NoError(t, err)

	cfg := &config.Config{
		Env:       "test",
		Admin:     config.AdminConfig{CookieName: "cms_admin_session", CookieSecure: false},
		Uploads:   config.UploadConfig{PublicPrefix: "/media"},
		RateLimit: config.RateLimitConfig{LoginBurst: 2, LoginInterval: time.Hour},
	}
	deps := Dependencies{
		Config:   cfg,
		Logger:   zap.NewNop(),
		Tokens:   tokens,
		CSRFKey:  bytes.Repeat([]byte("k"), 32),
		MediaDir: t.TempDir(),
	}
	handlers := Handlers{
		Auth:         handler.NewAuthHandler(nil),
		Subjects:     handler.NewSubjectHandler(nil),
		Features:     handler.NewFeatureHandler(nil),
		Specialities: handler.NewSpecialityHandler(nil),
		Achievements: handler.NewAchievementHandler(nil),
		Directions:   handler.NewDirectionHandler(nil),
		Disciplines:  handler.NewDisciplineHandler(nil),
		Teachers:     handler.NewTeacherHandler(nil),
		Upload:       handler.NewUploadHandler(nil, nil),
		Catalog:      handler.NewCatalogHandler(nil, nil),
		Health:       handler.NewHealthHandler(healthStub{}, nil),
		Admin:        handler.NewAdminHandler(nil, nil, nil, nil, handler.SessionCookie{Name: "cms_admin_session"}, 0),
	}
	return New(deps, handlers), tokens
}

func TestRoutesRegistered(t *testing.T) {
	r, _ := newTestRouter(t)

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"POST /api/auth/login",
		"POST /api/auth/hash-password",
		"GET /api/auth/me",
		"GET /api/health",
		"GET /metrics",
		"GET /achievements",
		"GET /features",
		"GET /speciality",
		"GET /subjects",
		"GET /teachers",
		"GET /directions-with-disciplines",
		"GET /directions/:id/plan",
		"POST /admin/cms/subject",
		"PUT /admin/cms/feature/:id",
		"DELETE /admin/cms/speciality/:id",
		"POST /admin/cms/achievements",
		"DELETE /admin/cms/directions/:id",
		"PUT /admin/cms/disciplines/:id",
		"POST /admin/cms/teacher",
		"POST /admin/cms/upload",
		"POST /admin/panel/login",
		"GET /admin/panel/models/:model",
		"DELETE /admin/panel/users/:id",
		"PUT /admin/panel/teachers/:id",
		"GET /docs/*any",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
}

func TestHealthIsPublic(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"db_status":true,"math_result":155}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestProtectedGroupsRequireCredentials(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/admin/cms/subject"},
		{http.MethodDelete, "/admin/cms/teacher/1"},
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/admin/panel/models"},
	} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestPanelRejectsBearerToken(t *testing.T) {
	r, tokens := newTestRouter(t)
	token, err := tokens.Issue(1, "admin@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/panel/models", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPanelSessionIssuesCSRFToken(t *testing.T) {
	r, tokens := newTestRouter(t)
	token, err := tokens.Issue(1, "admin@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/panel/csrf", nil)
	req.AddCookie(&http.Cookie{Name: "cms_admin_session", Value: token})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["csrf_token"])
}

func TestCMSCookieWritesRequireCSRFToken(t *testing.T) {
	r, tokens := newTestRouter(t)
	token, err := tokens.Issue(1, "admin@example.com")
	require.NoError(t, err)
	session := &http.Cookie{Name: "cms_admin_session", Value: token}

	req := httptest.NewRequest(http.MethodPost, "/admin/cms/subject", nil)
	req.AddCookie(session)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "FORBIDDEN")

	req = httptest.NewRequest(http.MethodGet, "/admin/panel/csrf", nil)
	req.AddCookie(session)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	csrfCookies := rec.Result().Cookies()
	require.NotEmpty(t, csrfCookies)

	req = httptest.NewRequest(http.MethodPost, "/admin/cms/subject", nil)
	req.AddCookie(session)
	for _, cookie := range csrfCookies {
		req.AddCookie(cookie)
	}
	req.Header.Set("X-CSRF-Token", body["csrf_token"])
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestCMSBearerWritesSkipCSRF(t *testing.T) {
	r, tokens := newTestRouter(t)
	token, err := tokens.Issue(1, "admin@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admin/cms/subject", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}
