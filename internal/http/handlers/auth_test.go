package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRegisterCreatesAccount(t *testing.T) {
	app := newTestApp()

	id := registerAccount(t, app, "alice@example.com")
	if id == "" {
		t.Fatal("expected non-empty account id")
	}
}

func TestRegisterRejectsPasswordMismatch(t *testing.T) {
	app := newTestApp()

	body := registerBody("alice@example.com")
	body["confirm_password"] = "something-else"
	rr := postJSON(t, app.Register, "/v1/auth/register", body)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d, want 400", rr.Code)
	}
	if code := errorCode(t, rr); code != "validation_error" {
		t.Fatalf("unexpected error code: %q", code)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	app := newTestApp()
	registerAccount(t, app, "alice@example.com")

	rr := postJSON(t, app.Register, "/v1/auth/register", registerBody("alice@example.com"))

	if rr.Code != http.StatusConflict {
		t.Fatalf("unexpected status: got %d, want 409", rr.Code)
	}
	if code := errorCode(t, rr); code != "email_taken" {
		t.Fatalf("unexpected error code: %q", code)
	}
}

func TestRegisterRejectsMalformedPayload(t *testing.T) {
	app := newTestApp()

	body := registerBody("not-an-email")
	rr := postJSON(t, app.Register, "/v1/auth/register", body)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d, want 400", rr.Code)
	}
}

func TestLoginReturnsIdentityOnly(t *testing.T) {
	app := newTestApp()
	id := registerAccount(t, app, "alice@example.com")

	rr := postJSON(t, app.Login, "/v1/auth/login", map[string]any{
		"email":    "alice@example.com",
		"password": "correct-horse",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d, want 200", rr.Code)
	}
	payload := decodeBody(t, rr)
	if payload["id"] != id {
		t.Fatalf("unexpected id: got %#v, want %q", payload["id"], id)
	}
	if payload["email"] != "alice@example.com" {
		t.Fatalf("unexpected email: %#v", payload["email"])
	}
	if _, leaked := payload["password_hash"]; leaked {
		t.Fatal("response must not carry the credential hash")
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	app := newTestApp()
	registerAccount(t, app, "alice@example.com")

	wrongPassword := postJSON(t, app.Login, "/v1/auth/login", map[string]any{
		"email":    "alice@example.com",
		"password": "nope",
	})
	unknownEmail := postJSON(t, app.Login, "/v1/auth/login", map[string]any{
		"email":    "bob@example.com",
		"password": "correct-horse",
	})

	for name, rr := range map[string]*httptest.ResponseRecorder{"wrong password": wrongPassword, "unknown email": unknownEmail} {
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: unexpected status %d, want 401", name, rr.Code)
		}
	}
	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Fatalf("login failure bodies differ:\n%s\n%s", wrongPassword.Body.String(), unknownEmail.Body.String())
	}
}

func TestAccountDelete(t *testing.T) {
	app := newTestApp()
	id := registerAccount(t, app, "alice@example.com")

	req := httptest.NewRequest(http.MethodDelete, "/v1/accounts/"+id, nil)
	req = withURLParam(req, "id", id)
	rr := httptest.NewRecorder()
	app.AccountDelete(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d, want 200", rr.Code)
	}

	// Deleting again is a 404: the target is already gone.
	rr = httptest.NewRecorder()
	app.AccountDelete(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: got %d, want 404", rr.Code)
	}
	if code := errorCode(t, rr); code != "not_found" {
		t.Fatalf("unexpected error code: %q", code)
	}
}
