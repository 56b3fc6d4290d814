package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/it-institute-cms/internal/admin"
	"github.com/noah-isme/it-institute-cms/internal/dto"
	"github.com/noah-isme/it-institute-cms/internal/models"
	"github.com/noah-isme/it-institute-cms/internal/service"
	appErrors "github.com/noah-isme/it-institute-cms/pkg/errors"
	"github.com/noah-isme/it-institute-cms/pkg/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type authServiceMock struct {
	validEmail    string
	validPassword string
}

func (m *authServiceMock) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	if req.Email != m.validEmail || req.Password != m.validPassword {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}
	return &models.TokenResponse{AccessToken: "signed", TokenType: "bearer"}, nil
}

func (m *authServiceMock) Me(ctx context.Context, userID int64) (*models.UserInfo, error) {
	return &models.UserInfo{ID: userID, Name: "Admin", Email: m.validEmail}, nil
}

func (m *authServiceMock) HashPassword(req models.HashPasswordRequest) (*models.HashPasswordResponse, error) {
	return &models.HashPasswordResponse{OriginalPassword: req.Password, HashedPassword: "$2a$10$hash"}, nil
}

func (m *authServiceMock) AdminLogin(ctx context.Context, req dto.AdminLoginRequest) (string, time.Duration, error) {
	if req.Username != m.validEmail || req.Password != m.validPassword {
		return "", 0, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}
	return "session-token", time.Hour, nil
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestLoginFailuresShareOneResponse(t *testing.T) {
	h := NewAuthHandler(&authServiceMock{validEmail: "admin@example.com", validPassword: "password123"})

	send := func(email, password string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest(http.MethodPost, "/api/auth/login", models.LoginRequest{Email: email, Password: password})
		h.Login(c)
		return w
	}

	unknown := send("nobody@example.com", "password123")
	wrong := send("admin@example.com", "password999")

	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	require.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, unknown.Body.String(), wrong.Body.String())
	assert.Equal(t, "Bearer", unknown.Header().Get("WWW-Authenticate"))

	ok := send("admin@example.com", "password123")
	require.Equal(t, http.StatusOK, ok.Code)
	assert.JSONEq(t, `{"access_token":"signed","token_type":"bearer"}`, ok.Body.String())
}

func TestHashPasswordReadsForm(t *testing.T) {
	h := NewAuthHandler(&authServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/hash-password", strings.NewReader(url.Values{"password": {"secret123"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Request = req

	h.HashPassword(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"original_password":"secret123"`)
	assert.Contains(t, w.Body.String(), `"warning":null`)
}

type subjectServiceMock struct {
	lastID  int64
	lastReq dto.UpdateSubjectRequest
}

func (m *subjectServiceMock) Create(ctx context.Context, req dto.CreateSubjectRequest) (*models.Subject, error) {
	return &models.Subject{ID: 1, Name: req.Name, Description: req.Description}, nil
}

func (m *subjectServiceMock) Update(ctx context.Context, id int64, req dto.UpdateSubjectRequest) (*models.Subject, error) {
	m.lastID, m.lastReq = id, req
	return &models.Subject{ID: id, Name: "Go", Description: "d"}, nil
}

func (m *subjectServiceMock) Delete(ctx context.Context, id int64) (*models.Subject, error) {
	return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
}

func TestSubjectHandlerStatuses(t *testing.T) {
	svc := &subjectServiceMock{}
	h := NewSubjectHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/admin/cms/subject", dto.CreateSubjectRequest{Name: "Go", Description: "d"})
	h.Create(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/admin/cms/subject/5", strings.NewReader(`{"svg_code":""}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	h.Update(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(5), svc.lastID)
	require.NotNil(t, svc.lastReq.Icon)
	assert.Equal(t, "", *svc.lastReq.Icon)
	assert.Nil(t, svc.lastReq.Name)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/admin/cms/subject/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	h.Delete(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/admin/cms/subject/9", nil)
	c.Params = gin.Params{{Key: "id", Value: "9"}}
	h.Delete(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"subject not found","code":"NOT_FOUND"}`, w.Body.String())
}

func multipartRequest(t *testing.T, target, field, filename, contentType string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if field != "" {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func newLocalUploads(t *testing.T, maxBytes int64) (*service.UploadService, string) {
	t.Helper()
	dir := t.TempDir()
	backend, err := storage.NewLocalStorage(dir, "/media")
	require.NoError(t, err)
	return service.NewUploadService(backend, maxBytes, nil), dir
}

func TestUploadHandlerAcceptsImage(t *testing.T) {
	uploads, dir := newLocalUploads(t, 1024)
	metrics := service.NewMetricsService()
	h := NewUploadHandler(uploads, metrics)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "/admin/cms/upload", "file", "Logo.PNG", "image/png", []byte("\x89PNG"), nil)
	h.Upload(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.URL, "/media/"))
	assert.True(t, strings.HasSuffix(resp.URL, ".png"))

	stored, err := os.ReadFile(filepath.Join(dir, filepath.Base(resp.URL)))
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), stored)
}

func TestUploadHandlerRejects(t *testing.T) {
	uploads, dir := newLocalUploads(t, 16)
	h := NewUploadHandler(uploads, nil)

	cases := []struct {
		name   string
		req    func() *http.Request
		status int
	}{
		{"wrong type", func() *http.Request {
			return multipartRequest(t, "/admin/cms/upload", "file", "doc.pdf", "application/pdf", []byte("%PDF"), nil)
		}, http.StatusBadRequest},
		{"missing file", func() *http.Request {
			return multipartRequest(t, "/admin/cms/upload", "", "", "", nil, map[string]string{"x": "y"})
		}, http.StatusBadRequest},
		{"too large", func() *http.Request {
			return multipartRequest(t, "/admin/cms/upload", "file", "big.jpg", "image/jpeg", bytes.Repeat([]byte("a"), 64), nil)
		}, http.StatusRequestEntityTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = tc.req()
			h.Upload(c)
			assert.Equal(t, tc.status, w.Code)
		})
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

type healthStub struct {
	resp dto.HealthResponse
}

func (s healthStub) Check(ctx context.Context) dto.HealthResponse { return s.resp }

func TestHealthShape(t *testing.T) {
	result := 155
	cases := map[string]struct {
		resp dto.HealthResponse
		want string
	}{
		"up":   {dto.HealthResponse{DBStatus: true, MathResult: &result}, `{"db_status":true,"math_result":155}`},
		"down": {dto.HealthResponse{DBStatus: false, Error: "connection refused"}, `{"db_status":false,"error":"connection refused"}`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			h := NewHealthHandler(healthStub{resp: tc.resp}, nil)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/health", nil)
			h.Health(c)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tc.want, w.Body.String())
		})
	}
}

type catalogStub struct{}

func (catalogStub) Achievements(ctx context.Context) ([]models.Achievement, error) {
	return []models.Achievement{}, nil
}
func (catalogStub) Features(ctx context.Context) ([]models.Feature, error) { return nil, nil }
func (catalogStub) Specialities(ctx context.Context) ([]models.Speciality, error) {
	return nil, nil
}
func (catalogStub) Subjects(ctx context.Context) ([]models.Subject, error) { return nil, nil }
func (catalogStub) Teachers(ctx context.Context) ([]models.Teacher, error) {
	return []models.Teacher{{ID: 1, FIO: "Иванов Иван", Post: "Доцент", Subjects: []string{"Go", "SQL"}, ImageURL: "/media/a.png"}}, nil
}
func (catalogStub) DirectionsWithDisciplines(ctx context.Context) ([]models.DirectionWithDisciplines, error) {
	return []models.DirectionWithDisciplines{{ID: 1, Name: "Web", Disciplines: []models.Discipline{}}}, nil
}

type exportStub struct{}

func (exportStub) StudyPlan(ctx context.Context, id int64, format dto.ExportFormat) (*dto.ExportFile, error) {
	if id != 1 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "direction not found")
	}
	return &dto.ExportFile{Filename: "web.csv", ContentType: "text/csv; charset=utf-8", Content: []byte("a,b\n")}, nil
}

func TestCatalogHandlerLists(t *testing.T) {
	h := NewCatalogHandler(catalogStub{}, exportStub{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/teachers", nil)
	h.Teachers(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"image_url":"/media/a.png","fio":"Иванов Иван","post":"Доцент","subjects":["Go","SQL"]}]`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/directions-with-disciplines", nil)
	h.DirectionsWithDisciplines(c)
	assert.JSONEq(t, `[{"id":1,"name":"Web","disciplines":[]}]`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/achievements", nil)
	h.Achievements(c)
	assert.Equal(t, "[]", w.Body.String())
}

func TestCatalogHandlerStudyPlan(t *testing.T) {
	h := NewCatalogHandler(catalogStub{}, exportStub{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/directions/1/plan?format=csv", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	h.StudyPlan(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="web.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "a,b\n", w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/directions/2/plan", nil)
	c.Params = gin.Params{{Key: "id", Value: "2"}}
	h.StudyPlan(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type panelStub struct {
	photo *service.UploadInput
	form  dto.AdminTeacherForm
}

func (p *panelStub) Models() []admin.ModelView { return admin.Views() }

func (p *panelStub) Rows(ctx context.Context, identity string, query service.RowsQuery) (*dto.AdminModelRows, error) {
	if _, ok := admin.Lookup(identity); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "model not found")
	}
	return &dto.AdminModelRows{Rows: []map[string]interface{}{}}, nil
}

func (p *panelStub) CreateTeacher(ctx context.Context, form dto.AdminTeacherForm, photo *service.UploadInput) (*models.Teacher, error) {
	p.form, p.photo = form, photo
	if photo == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid teacher payload: image_url is required")
	}
	return &models.Teacher{ID: 1, FIO: form.FIO}, nil
}

func (p *panelStub) UpdateTeacher(ctx context.Context, id int64, form dto.AdminTeacherForm, photo *service.UploadInput) (*models.Teacher, error) {
	p.form, p.photo = form, photo
	return &models.Teacher{ID: id, FIO: form.FIO}, nil
}

func newAdminHandlerForTest(panel *panelStub) *AdminHandler {
	authMock := &authServiceMock{validEmail: "admin@example.com", validPassword: "password123"}
	return NewAdminHandler(authMock, panel, nil, nil, SessionCookie{Name: "cms_admin_session", Secure: true}, 1024)
}

func TestAdminLoginSetsSessionCookie(t *testing.T) {
	h := newAdminHandlerForTest(&panelStub{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	form := url.Values{"username": {"admin@example.com"}, "password": {"password123"}}
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/panel/login", strings.NewReader(form.Encode()))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	h.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "cms_admin_session", cookies[0].Name)
	assert.Equal(t, "session-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	assert.Equal(t, 3600, cookies[0].MaxAge)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	form.Set("password", "nope")
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/panel/login", strings.NewReader(form.Encode()))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	h.Login(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestAdminModelRowsUnknownModel(t *testing.T) {
	h := newAdminHandlerForTest(&panelStub{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/panel/models/grades", nil)
	c.Params = gin.Params{{Key: "model", Value: "grades"}}
	h.ModelRows(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminCreateTeacherForm(t *testing.T) {
	panel := &panelStub{}
	h := newAdminHandlerForTest(panel)

	fields := map[string]string{"fio": "Петров Пётр", "post": "Доцент", "subjects": "['Go', 'SQL']"}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "/admin/panel/teachers", "image_url", "me.webp", "image/webp", []byte("RIFF"), fields)
	h.CreateTeacher(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, panel.photo)
	assert.Equal(t, "me.webp", panel.photo.Filename)
	assert.Equal(t, "['Go', 'SQL']", panel.form.Subjects)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "/admin/panel/teachers", "", "", "", nil, fields)
	h.CreateTeacher(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, panel.photo)
}
