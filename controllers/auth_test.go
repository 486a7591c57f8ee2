package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"YakYak/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func authServer(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/register", Register(db))
	r.POST("/login", Login(db))
	g := r.Group("/")
	g.Use(middleware.AuthMiddleware())
	g.POST("/logout", Logout())
	g.GET("/profile", Profile(db))
	g.PUT("/profile", Profile(db))
	return r
}

func TestRegisterValidation(t *testing.T) {
	withJWTSecret(t)
	r := authServer(newTestDB(t))

	cases := []struct {
		name string
		body string
	}{
		{"missing fields", `{"email": "a@example.com"}`},
		{"mismatch", `{"email": "a@example.com", "password": "pass123", "confirm_password": "pass124"}`},
		{"no digit", `{"email": "a@example.com", "password": "password", "confirm_password": "password"}`},
		{"no letter", `{"email": "a@example.com", "password": "12345678", "confirm_password": "12345678"}`},
	}
	for _, tc := range cases {
		w := doJSON(t, r, http.MethodPost, "/register", "", tc.body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tc.name, w.Code)
		}
	}
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	withJWTSecret(t)
	db := newTestDB(t)
	r := authServer(db)

	w := doJSON(t, r, http.MethodPost, "/register", "",
		`{"email": "A@Example.com", "password": "pass123", "confirm_password": "pass123"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// duplicate (email is normalized, so different casing still collides)
	w = doJSON(t, r, http.MethodPost, "/register", "",
		`{"email": "a@example.com", "password": "pass123", "confirm_password": "pass123"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/login", "", `{"email": "a@example.com", "password": "wrong1"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/login", "", `{"email": "a@example.com", "password": "pass123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var parsed map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	token, _ := parsed["access_token"].(string)
	if token == "" {
		t.Fatalf("expected access token in login response")
	}

	w = doJSON(t, r, http.MethodGet, "/profile", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from profile with token, got %d", w.Code)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	withJWTSecret(t)
	db := newTestDB(t)
	r := authServer(db)

	doJSON(t, r, http.MethodPost, "/register", "",
		`{"email": "a@example.com", "password": "pass123", "confirm_password": "pass123"}`)
	w := doJSON(t, r, http.MethodPost, "/login", "", `{"email": "a@example.com", "password": "pass123"}`)
	var parsed map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	token := parsed["access_token"].(string)

	w = doJSON(t, r, http.MethodPost, "/logout", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from logout, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/profile", token, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", w.Code)
	}
}

func TestProfileUpdate(t *testing.T) {
	withJWTSecret(t)
	db := newTestDB(t)
	user := newTestUser(t, db, "a@example.com")
	token := tokenFor(t, user.ID)
	r := authServer(db)

	w := doJSON(t, r, http.MethodPut, "/profile", token, `{"email": "b@example.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodGet, "/profile", token, "")
	var parsed map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	if parsed["email"] != "b@example.com" {
		t.Fatalf("expected updated email, got %v", parsed["email"])
	}

	w = doJSON(t, r, http.MethodPut, "/profile", token, `{"password": "weak"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for weak password, got %d", w.Code)
	}
}
