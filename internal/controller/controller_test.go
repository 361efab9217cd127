package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"site-gallery-be/internal/catalog"
	"site-gallery-be/internal/config"
	"site-gallery-be/internal/pkg/logger"
	"site-gallery-be/internal/pkg/serverutils"
	"site-gallery-be/internal/repository/memory"
	"site-gallery-be/internal/service"
	internalWS "site-gallery-be/internal/websocket"
	"site-gallery-be/pkg/objectstore"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret  = "controller-secret"
	testAdminId = "admin-1"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testApp struct {
	app   *fiber.App
	forms service.IFormService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	log := logger.NewNopLogger()
	cat := catalog.Default()

	store, err := objectstore.NewLocalStore(t.TempDir(), "user_images", "http://localhost:3000")
	require.NoError(t, err)

	sessions := service.NewSessionService(testAdminId)
	sites := service.NewSiteService(cat)
	gallery := service.NewGalleryService(cat, memory.NewRepositoryFactory(), store, memory.NewGalleryStateRepository(time.Hour), nil, log, service.GalleryOptions{
		OwnerId:        testAdminId,
		UploadStrategy: config.UploadStrategyAtomic,
		MaxUploadBytes: 1 << 20,
	})
	forms := service.NewFormService(cat, memory.NewFormSubmissionRepository(), service.NewLogSubmitter(log), nil, log, service.FormOptions{
		SubmitDelay: 5 * time.Millisecond,
		ResetAfter:  time.Minute,
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := internalWS.NewHub(nil, log)
	go hub.Run(ctx)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(log))
	api := app.Group("/api")
	NewSessionController(sessions, testSecret).RegisterRoutes(api)
	NewSiteController(sites).RegisterRoutes(api)
	NewGalleryController(gallery, sessions, sites, hub, log, testSecret).RegisterRoutes(api)
	NewFormController(forms).RegisterRoutes(api)
	NewHealthController(map[string]HealthCheck{
		"database": func(context.Context) error { return nil },
	}).RegisterRoutes(api)

	return &testApp{app: app, forms: forms}
}

func bearer(t *testing.T, userId string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": userId}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func (a *testApp) do(t *testing.T, req *http.Request) (int, envelope) {
	t.Helper()
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body envelope
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return resp.StatusCode, body
}

func multipartUpload(t *testing.T, url, auth, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, url, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	return req
}

func TestSessionController(t *testing.T) {
	a := newTestApp(t)

	tests := []struct {
		name      string
		auth      string
		wantState string
		wantAdmin bool
	}{
		{"anonymous", "", "anonymous", false},
		{"bad token", "Bearer garbage", "anonymous", false},
		{"viewer", bearer(t, "someone"), "viewer", false},
		{"admin", bearer(t, testAdminId), "admin", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/session/v1", nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			status, body := a.do(t, req)
			assert.Equal(t, fiber.StatusOK, status)

			var session struct {
				State string `json:"state"`
				Admin bool   `json:"admin"`
			}
			require.NoError(t, json.Unmarshal(body.Data, &session))
			assert.Equal(t, tt.wantState, session.State)
			assert.Equal(t, tt.wantAdmin, session.Admin)
		})
	}
}

func TestSiteController(t *testing.T) {
	a := newTestApp(t)

	status, body := a.do(t, httptest.NewRequest(http.MethodGet, "/api/sites/v1", nil))
	assert.Equal(t, fiber.StatusOK, status)
	var sites []map[string]interface{}
	require.NoError(t, json.Unmarshal(body.Data, &sites))
	assert.Len(t, sites, len(catalog.DefaultSites()))

	status, body = a.do(t, httptest.NewRequest(http.MethodGet, "/api/sites/v1/trattoria-nonna", nil))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body.Data), "Handmade Pasta")

	status, _ = a.do(t, httptest.NewRequest(http.MethodGet, "/api/sites/v1/nope", nil))
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestGalleryController_UploadAndLoad(t *testing.T) {
	a := newTestApp(t)

	status, body := a.do(t, httptest.NewRequest(http.MethodGet, "/api/gallery/v1/trattoria-nonna", nil))
	require.Equal(t, fiber.StatusOK, status)
	assert.NotContains(t, string(body.Data), "http://")

	status, _ = a.do(t, multipartUpload(t, "/api/gallery/v1/trattoria-nonna/pasta", "", "pasta.png", pngBytes))
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = a.do(t, multipartUpload(t, "/api/gallery/v1/trattoria-nonna/pasta", bearer(t, "someone"), "pasta.png", pngBytes))
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = a.do(t, multipartUpload(t, "/api/gallery/v1/trattoria-nonna/pasta", bearer(t, testAdminId), "", nil))
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = a.do(t, multipartUpload(t, "/api/gallery/v1/trattoria-nonna/pasta", bearer(t, testAdminId), "notes.png", []byte("plain text")))
	assert.Equal(t, fiber.StatusUnsupportedMediaType, status)

	status, body = a.do(t, multipartUpload(t, "/api/gallery/v1/trattoria-nonna/pasta", bearer(t, testAdminId), "pasta.png", pngBytes))
	require.Equal(t, fiber.StatusOK, status)
	var uploaded struct {
		ImageURL string `json:"image_url"`
		Path     string `json:"path"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &uploaded))
	assert.True(t, strings.HasPrefix(uploaded.Path, testAdminId+"/restaurant/pasta/"))
	assert.True(t, strings.HasSuffix(uploaded.Path, "_pasta.png"))
	assert.Contains(t, uploaded.ImageURL, "/storage/v1/object/public/user_images/")

	status, body = a.do(t, httptest.NewRequest(http.MethodGet, "/api/gallery/v1/trattoria-nonna", nil))
	require.Equal(t, fiber.StatusOK, status)
	var state struct {
		Slots []struct {
			SlotId   string  `json:"slot_id"`
			ImageURL *string `json:"image_url"`
		} `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &state))
	for _, s := range state.Slots {
		if s.SlotId == "pasta" {
			require.NotNil(t, s.ImageURL)
			assert.Equal(t, uploaded.ImageURL, *s.ImageURL)
		} else {
			assert.Nil(t, s.ImageURL, s.SlotId)
		}
	}

	status, _ = a.do(t, multipartUpload(t, "/api/gallery/v1/trattoria-nonna/nope", bearer(t, testAdminId), "x.png", pngBytes))
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestGalleryController_CopyPrompt(t *testing.T) {
	a := newTestApp(t)

	status, body := a.do(t, httptest.NewRequest(http.MethodGet, "/api/gallery/v1/trattoria-nonna/pasta/prompt", nil))
	require.Equal(t, fiber.StatusOK, status)
	var prompt struct {
		Prompt string `json:"prompt"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &prompt))
	assert.NotEmpty(t, prompt.Prompt)

	status, _ = a.do(t, httptest.NewRequest(http.MethodGet, "/api/gallery/v1/trattoria-nonna/nope/prompt", nil))
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestGalleryController_WsRequiresUpgrade(t *testing.T) {
	a := newTestApp(t)

	resp, err := a.app.Test(httptest.NewRequest(http.MethodGet, "/api/gallery/v1/trattoria-nonna/ws", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)

	resp, err = a.app.Test(httptest.NewRequest(http.MethodGet, "/api/gallery/v1/nope/ws", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func jsonRequest(method, url, body string) *http.Request {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestFormController(t *testing.T) {
	a := newTestApp(t)

	tests := []struct {
		name       string
		url        string
		body       string
		wantStatus int
	}{
		{"invalid email", "/api/forms/v1/trattoria-nonna/newsletter", `{"email":"not-an-email"}`, fiber.StatusBadRequest},
		{"malformed json", "/api/forms/v1/trattoria-nonna/newsletter", `{"email":`, fiber.StatusBadRequest},
		{"unknown kind", "/api/forms/v1/trattoria-nonna/survey", `{}`, fiber.StatusBadRequest},
		{"kind not on site", "/api/forms/v1/trattoria-nonna/booking", `{"name":"A","email":"a@b.co","service":"cut","date":"2024-06-01"}`, fiber.StatusBadRequest},
		{"party too large", "/api/forms/v1/trattoria-nonna/reservation", `{"name":"A","email":"a@b.co","date":"2024-06-01","time":"19:00","party_size":99}`, fiber.StatusBadRequest},
		{"unknown site", "/api/forms/v1/nope/newsletter", `{"email":"a@b.co"}`, fiber.StatusNotFound},
		{"valid newsletter", "/api/forms/v1/trattoria-nonna/newsletter", `{"email":"guest@example.com"}`, fiber.StatusAccepted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := a.do(t, jsonRequest(http.MethodPost, tt.url, tt.body))
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestFormController_StatusLifecycle(t *testing.T) {
	a := newTestApp(t)

	status, body := a.do(t, jsonRequest(http.MethodPost, "/api/forms/v1/trattoria-nonna/reservation",
		`{"name":"Ada","email":"ada@example.com","date":"2024-06-01","time":"19:30","party_size":4}`))
	require.Equal(t, fiber.StatusAccepted, status)

	var submitted struct {
		Id     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &submitted))
	assert.Equal(t, "submitting", submitted.Status)

	a.forms.Wait()

	status, body = a.do(t, httptest.NewRequest(http.MethodGet, "/api/forms/v1/submissions/"+submitted.Id, nil))
	require.Equal(t, fiber.StatusOK, status)
	var settled struct {
		Status    string `json:"status"`
		Reference string `json:"reference"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &settled))
	assert.Equal(t, "success", settled.Status)
	assert.NotEmpty(t, settled.Reference)

	status, _ = a.do(t, httptest.NewRequest(http.MethodGet, "/api/forms/v1/submissions/not-a-uuid", nil))
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestHealthController(t *testing.T) {
	app := fiber.New()
	NewHealthController(map[string]HealthCheck{
		"database": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	}).RegisterRoutes(app.Group("/api"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	var body envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Contains(t, string(body.Data), "connection refused")
}
