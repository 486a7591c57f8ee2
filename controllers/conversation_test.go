package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"YakYak/middleware"
	"YakYak/models"
	"YakYak/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Conversation{}, &models.Message{}); err != nil {
		t.Fatalf("failed migrate: %v", err)
	}
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email}
	if err := user.SetPassword("pass123"); err != nil {
		t.Fatalf("set password: %v", err)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func tokenFor(t *testing.T, userID uint) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": strconv.Itoa(int(userID)),
		"exp": time.Now().Add(time.Hour).Unix(),
		"jti": uuid.NewString(),
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.JWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tokenStr
}

func conversationServer(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/")
	g.Use(middleware.AuthMiddleware())
	g.GET("/api/conversations", ListConversations(db))
	g.POST("/api/conversations", CreateConversation(db))
	g.GET("/api/conversations/:conversation_id", GetConversation(db))
	g.POST("/api/conversations/:conversation_id/messages", AppendExchange(db))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func withJWTSecret(t *testing.T) {
	t.Helper()
	old := config.JWTSecret
	config.JWTSecret = "test-secret"
	t.Cleanup(func() { config.JWTSecret = old })
}

func TestConversationRoutesRequireAuth(t *testing.T) {
	withJWTSecret(t)
	r := conversationServer(newTestDB(t))
	w := doJSON(t, r, http.MethodGet, "/api/conversations", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}

func TestCreateAndListConversations(t *testing.T) {
	withJWTSecret(t)
	db := newTestDB(t)
	user := newTestUser(t, db, "a@example.com")
	token := tokenFor(t, user.ID)
	r := conversationServer(db)

	w := doJSON(t, r, http.MethodPost, "/api/conversations", token,
		`{"fromRole": "developer", "toRole": "designer", "fromLang": "__auto__", "toLang": "es"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &created)
	if created["from_role"] != "developer" || created["to_lang"] != "es" {
		t.Fatalf("unexpected conversation payload: %v", created)
	}
	// sentinel values are stored as sent, for selector restore
	if created["from_lang"] != "__auto__" {
		t.Fatalf("expected from_lang sentinel kept, got %v", created["from_lang"])
	}

	w = doJSON(t, r, http.MethodGet, "/api/conversations", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var list []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if len(list) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(list))
	}
}

func TestListConversationsOrderedByRecency(t *testing.T) {
	withJWTSecret(t)
	db := newTestDB(t)
	user := newTestUser(t, db, "a@example.com")
	token := tokenFor(t, user.ID)
	r := conversationServer(db)

	older := models.Conversation{UserID: user.ID, FromRole: "developer", ToRole: "qa"}
	newer := models.Conversation{UserID: user.ID, FromRole: "qa", ToRole: "legal"}
	if err := db.Create(&older).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := db.Create(&newer).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	// backdate both, then bump the older one via an exchange
	past := time.Now().Add(-time.Hour)
	db.Model(&models.Conversation{}).Where("id IN ?", []uint{older.ID, newer.ID}).
		Update("updated_at", past)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/conversations/%d/messages", older.ID), token,
		`{"message": "hello", "translated": "Hello there."}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/conversations", token, "")
	var list []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if len(list) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(list))
	}
	if uint(list[0]["id"].(float64)) != older.ID {
		t.Fatalf("expected most recently touched conversation first, got %v", list)
	}
}

func TestAppendExchangeWritesPairAndBumps(t *testing.T) {
	withJWTSecret(t)
	db := newTestDB(t)
	user := newTestUser(t, db, "a@example.com")
	token := tokenFor(t, user.ID)
	r := conversationServer(db)

	conv := models.Conversation{UserID: user.ID, FromRole: "developer", ToRole: "designer"}
	if err := db.Create(&conv).Error; err != nil {
		t.Fatalf("create: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/conversations/%d/messages", conv.ID), token,
		`{"message": "pls refactor auth b4 SSO", "translated": "We're updating the login system first."}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/conversations/%d", conv.ID), token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	msgs := got["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	first := msgs[0].(map[string]any)
	second := msgs[1].(map[string]any)
	if first["role"] != models.MessageRoleUser || second["role"] != models.MessageRoleAssistant {
		t.Fatalf("expected user then assistant, got %v / %v", first["role"], second["role"])
	}
	if second["content"] != "We're updating the login system first." {
		t.Fatalf("unexpected assistant content: %v", second["content"])
	}
}

func TestConversationOwnershipEnforced(t *testing.T) {
	withJWTSecret(t)
	db := newTestDB(t)
	owner := newTestUser(t, db, "owner@example.com")
	other := newTestUser(t, db, "other@example.com")
	r := conversationServer(db)

	conv := models.Conversation{UserID: owner.ID, FromRole: "developer", ToRole: "qa"}
	if err := db.Create(&conv).Error; err != nil {
		t.Fatalf("create: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/conversations/%d", conv.ID), tokenFor(t, other.ID), "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign conversation, got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/conversations/%d/messages", conv.ID), tokenFor(t, other.ID),
		`{"message": "x", "translated": "y"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 appending to foreign conversation, got %d", w.Code)
	}
}

func TestSaveExchangeCreatesConversationWhenNeeded(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "a@example.com")

	meta := ExchangeMeta{FromRole: "developer", ToRole: "designer", FromLang: "__auto__", ToLang: ""}
	id, err := saveExchange(db, user.ID, nil, meta, "hi", "Hello.")
	if err != nil {
		t.Fatalf("saveExchange: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected a conversation id")
	}

	// second exchange reuses the conversation
	id2, err := saveExchange(db, user.ID, &id, meta, "again", "Once more.")
	if err != nil || id2 != id {
		t.Fatalf("expected reuse of conversation %d, got %d (err %v)", id, id2, err)
	}

	var count int64
	db.Model(&models.Message{}).Where("conversation_id = ?", id).Count(&count)
	if count != 4 {
		t.Fatalf("expected 4 messages, got %d", count)
	}
}

func TestSaveExchangeRejectsForeignConversation(t *testing.T) {
	db := newTestDB(t)
	owner := newTestUser(t, db, "owner@example.com")
	other := newTestUser(t, db, "other@example.com")

	conv := models.Conversation{UserID: owner.ID, FromRole: "developer", ToRole: "qa"}
	if err := db.Create(&conv).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := saveExchange(db, other.ID, &conv.ID, ExchangeMeta{}, "x", "y"); err == nil {
		t.Fatalf("expected error for foreign conversation")
	}
	var count int64
	db.Model(&models.Message{}).Where("conversation_id = ?", conv.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected no messages written, got %d", count)
	}
}
