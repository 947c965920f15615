package api

import (
	"net/http"
	"testing"
)

func TestRegisterAndLoginFlow(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	registerTestUser(t, app, "casey@example.com", "Sunrise42")

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "casey@example.com",
		"password": "Sunrise42",
	}, ""), -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	var parsed struct {
		Token string `json:"token"`
	}
	decodeResponse(t, response, &parsed)
	if parsed.Token == "" {
		t.Fatal("expected a token from login")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	registerTestUser(t, app, "casey@example.com", "Sunrise42")

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "casey@example.com",
		"password": "wrong-pass",
	}, ""), -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", response.StatusCode)
	}
}

func TestRegisterRejectsDuplicateEmailOverHTTP(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	registerTestUser(t, app, "casey@example.com", "Sunrise42")

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    "casey@example.com",
		"password": "Another99x",
	}, ""), -1)
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", response.StatusCode)
	}
}

func TestRecoverResetsPassword(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	_, recoveryCode := registerTestUser(t, app, "casey@example.com", "Sunrise42")

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/recover", map[string]string{
		"recovery_code": recoveryCode,
		"new_password":  "Fresh-Start7",
	}, ""), -1)
	if err != nil {
		t.Fatalf("recover request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	var parsed struct {
		Token string `json:"token"`
	}
	decodeResponse(t, response, &parsed)
	if parsed.Token == "" {
		t.Fatal("expected a token from recovery")
	}

	login, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "casey@example.com",
		"password": "Fresh-Start7",
	}, ""), -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer login.Body.Close()
	if login.StatusCode != http.StatusOK {
		t.Fatalf("expected the new password to work, got status %d", login.StatusCode)
	}
}

func TestRecoverRejectsUnknownCode(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	registerTestUser(t, app, "casey@example.com", "Sunrise42")

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/recover", map[string]string{
		"recovery_code": "AAAA-BBBB-CCCC",
		"new_password":  "Fresh-Start7",
	}, ""), -1)
	if err != nil {
		t.Fatalf("recover request failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", response.StatusCode)
	}
}
