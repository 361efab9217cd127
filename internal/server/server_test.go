package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"site-gallery-be/internal/bootstrap"
	"site-gallery-be/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		App: config.AppConfig{
			Port:               "0",
			BaseURL:            "http://localhost:3000",
			Environment:        "test",
			LogFilePath:        filepath.Join(dir, "app.log"),
			CorsAllowedOrigins: "*",
		},
		Auth: config.AuthConfig{JwtSecret: "server-secret"},
		Storage: config.StorageConfig{
			Driver:    "local",
			Bucket:    "user_images",
			LocalRoot: filepath.Join(dir, "storage"),
		},
		Gallery: config.GalleryConfig{
			AdminUserId:    "admin-1",
			OwnerId:        "admin-1",
			UploadStrategy: config.UploadStrategyAtomic,
			MaxUploadBytes: 1 << 20,
			StateTTL:       time.Hour,
			EventTopic:     "gallery.slot_replaced",
		},
		Forms: config.FormsConfig{SubmitDelay: time.Millisecond, ResetAfter: time.Minute},
	}
}

func TestServer_UploadIsServedFromLocalStorage(t *testing.T) {
	cfg := testConfig(t)
	container, err := bootstrap.NewContainer(context.Background(), nil, cfg)
	require.NoError(t, err)
	t.Cleanup(container.Close)

	app := New(cfg, container).GetApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "admin-1"}).SignedString([]byte("server-secret"))
	require.NoError(t, err)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "loaf.png")
	require.NoError(t, err)
	_, err = part.Write(pngBytes)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/gallery/v1/golden-crumb/hero", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			ImageURL string `json:"image_url"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, strings.HasPrefix(body.Data.ImageURL, cfg.App.BaseURL))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, strings.TrimPrefix(body.Data.ImageURL, cfg.App.BaseURL), nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	served, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, served)
}
