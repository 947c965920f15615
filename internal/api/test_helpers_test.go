package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rowanherne/morrow/internal/db"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "morrow-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(database, []byte("test-secret-key"), time.UTC, logger)

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app
}

func jsonRequest(t *testing.T, method string, target string, payload any, token string) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, target, body)
	if payload != nil {
		request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	return request
}

func decodeResponse(t *testing.T, response *http.Response, target any) {
	t.Helper()

	defer response.Body.Close()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func registerTestUser(t *testing.T, app *fiber.App, email string, password string) (token string, recoveryCode string) {
	t.Helper()

	payload := map[string]string{"email": email, "password": password}
	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register", payload, ""), -1)
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	if response.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status 201, got %d: %s", response.StatusCode, body)
	}

	var parsed struct {
		Token        string `json:"token"`
		RecoveryCode string `json:"recovery_code"`
	}
	decodeResponse(t, response, &parsed)
	if parsed.Token == "" || parsed.RecoveryCode == "" {
		t.Fatal("expected token and recovery code from registration")
	}
	return parsed.Token, parsed.RecoveryCode
}
