package api

import (
	"net/http"
	"strings"
	"testing"
)

func TestRegister_Validation(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"name too short", map[string]string{"name": "A", "email": "a@example.com", "password": "secret1"}},
		{"name too long", map[string]string{"name": strings.Repeat("a", 41), "email": "a@example.com", "password": "secret1"}},
		{"invalid email", map[string]string{"name": "Ada", "email": "not-an-email", "password": "secret1"}},
		{"password too short", map[string]string{"name": "Ada", "email": "a@example.com", "password": "short"}},
		{"password too long", map[string]string{"name": "Ada", "email": "a@example.com", "password": strings.Repeat("p", 65)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := request(t, h, http.MethodPost, "/api/auth/register", "", tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rr.Code)
			}
			if code := errorCode(t, rr); code != ErrCodeValidation {
				t.Errorf("code = %q, want %q", code, ErrCodeValidation)
			}
		})
	}
}

func TestRegister_DuplicateEmailDiffersOnlyInCase(t *testing.T) {
	h := newTestHandler(t)

	registerUser(t, h, "Ada", "ada@example.com", "secret1")

	rr := request(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Impostor",
		"email":    "ADA@Example.Com",
		"password": "secret2",
	})
	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rr.Code)
	}
	if code := errorCode(t, rr); code != ErrCodeEmailInUse {
		t.Errorf("code = %q, want %q", code, ErrCodeEmailInUse)
	}
}

func TestRegister_SeedAdminEmailIsTaken(t *testing.T) {
	h := newTestHandler(t)

	// The seed admin lives in the other partition; uniqueness spans both.
	rr := request(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Squatter",
		"email":    testAdminEmail,
		"password": "secret1",
	})
	if rr.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rr.Code)
	}
}

func TestLogin_InvalidCredentialsAreIndistinguishable(t *testing.T) {
	h := newTestHandler(t)
	registerUser(t, h, "Ada", "ada@example.com", "secret1")

	wrongPassword := request(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong-password",
	})
	unknownEmail := request(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "secret1",
	})

	for name, rr := range map[string]int{"wrong password": wrongPassword.Code, "unknown email": unknownEmail.Code} {
		if rr != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", name, rr)
		}
	}
	if a, b := errorCode(t, wrongPassword), errorCode(t, unknownEmail); a != b || a != ErrCodeInvalidCredentials {
		t.Errorf("codes = %q / %q, want both %q", a, b, ErrCodeInvalidCredentials)
	}
}

func TestLogin_AdminRole(t *testing.T) {
	h := newTestHandler(t)

	rr := request(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}

	var resp tokenResponse
	decodeBody(t, rr, &resp)
	if resp.Profile.Role != "admin" {
		t.Errorf("role = %q, want %q", resp.Profile.Role, "admin")
	}
}

func TestSession(t *testing.T) {
	h := newTestHandler(t)
	token, profile := registerUser(t, h, "Ada", "ada@example.com", "secret1")

	rr := request(t, h, http.MethodGet, "/api/auth/session", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp profileResponse
	decodeBody(t, rr, &resp)
	if resp.Profile.ID != profile.ID {
		t.Errorf("profile id = %q, want %q", resp.Profile.ID, profile.ID)
	}
}

func TestSession_MissingAndInvalidTokens(t *testing.T) {
	h := newTestHandler(t)

	rr := request(t, h, http.MethodGet, "/api/auth/session", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", rr.Code)
	}
	if code := errorCode(t, rr); code != ErrCodeMissingToken {
		t.Errorf("no token: code = %q, want %q", code, ErrCodeMissingToken)
	}

	rr = request(t, h, http.MethodGet, "/api/auth/session", "bogus-token", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("bogus token: status = %d, want 401", rr.Code)
	}
	if code := errorCode(t, rr); code != ErrCodeInvalidToken {
		t.Errorf("bogus token: code = %q, want %q", code, ErrCodeInvalidToken)
	}
}

func TestResponses_NeverLeakPasswordHash(t *testing.T) {
	h := newTestHandler(t)
	token, _ := registerUser(t, h, "Ada", "ada@example.com", "secret1")

	for _, path := range []string{"/api/auth/session", "/api/todos"} {
		rr := request(t, h, http.MethodGet, path, token, nil)
		if strings.Contains(rr.Body.String(), "password_hash") || strings.Contains(rr.Body.String(), "argon2id") {
			t.Errorf("%s response leaks password hash: %s", path, rr.Body.String())
		}
	}
}
