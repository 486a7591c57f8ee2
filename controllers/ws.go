package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"YakYak/middleware"
	"YakYak/pkg/config"
	svc "YakYak/pkg/services"
	tokenstore "YakYak/pkg/token"
	"YakYak/pkg/translator"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS handled at HTTP level; allow WS here
		return true
	},
}

type wsTranslatePayload struct {
	Type string `json:"type"`
	TranslateRequest
	ConversationID *uint `json:"conversationId"`
}

type wsReply struct {
	Type           string `json:"type"`
	Translated     string `json:"translated,omitempty"`
	ConversationID uint   `json:"conversation_id,omitempty"`
	Saved          bool   `json:"saved"`
	Error          string `json:"error,omitempty"`
}

// TranslateWS is the realtime variant of POST /api/translate for signed-in
// users: one translate request in, one translated (or error) frame out,
// with the exchange persisted server-side. Client protocol (JSON):
//
//	-> {type: "translate", message, fromRole?, toRole?, fromLang?, toLang?, feedback?, conversationId?}
//	<- {type: "translated", translated, conversation_id, saved}
//	<- {type: "error", error}
func TranslateWS(db *gorm.DB, rw Rewriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Authenticate via ?token=JWT
		tokenStr := strings.TrimSpace(c.Query("token"))
		if tokenStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "missing token query"})
			return
		}
		userIDStr, jti, _, err := middleware.ParseToken(tokenStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid token"})
			return
		}
		if tokenstore.IsRevoked(jti) {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token has been revoked (logout)"})
			return
		}
		uidInt, _ := strconv.Atoi(userIDStr)
		uid := uint(uidInt)

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[ws] upgrade error: %v", err)
			return
		}
		defer conn.Close()

		// read limits and pong handler for keepalive
		conn.SetReadLimit(1 << 20) // 1MB
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		})

		done := make(chan struct{})
		defer close(done)
		go func() {
			t := time.NewTicker(30 * time.Second)
			defer t.Stop()
			for {
				select {
				case <-t.C:
					_ = conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
				case <-done:
					return
				}
			}
		}()

		for {
			var payload wsTranslatePayload
			if err := conn.ReadJSON(&payload); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("[ws] read error: %v", err)
				}
				return
			}
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			if payload.Type != "translate" {
				_ = conn.WriteJSON(wsReply{Type: "error", Error: "unknown message type"})
				continue
			}
			reply := handleWSTranslate(c.Request.Context(), db, rw, uid, userIDStr, payload)
			if err := conn.WriteJSON(reply); err != nil {
				return
			}
		}
	}
}

func handleWSTranslate(ctx context.Context, db *gorm.DB, rw Rewriter, uid uint, uidStr string, payload wsTranslatePayload) wsReply {
	if strings.TrimSpace(config.GeminiAPIKey) == "" {
		return wsReply{Type: "error", Error: "Missing GEMINI_API_KEY. Add it to .env and restart the server."}
	}
	text := strings.TrimSpace(payload.Message)
	if text == "" {
		return wsReply{Type: "error", Error: "Missing or empty message"}
	}
	// feedback retries resend the same message, so the guard keys on both
	if !middleware.DuplicateGuard(uidStr, text+"\x00"+payload.Feedback) {
		return wsReply{Type: "error", Error: "duplicate message, try again later"}
	}

	translated, err := runRewrite(ctx, rw, text, payload.TranslateRequest)
	if err != nil {
		if errors.Is(err, svc.ErrEmptyCompletion) {
			return wsReply{Type: "error", Error: "Gemini returned no text"}
		}
		return wsReply{Type: "error", Error: err.Error()}
	}

	// persistence is best-effort: a store failure never takes down a
	// translation that already succeeded
	meta := ExchangeMeta{
		FromRole: payload.FromRole,
		ToRole:   payload.ToRole,
		FromLang: payload.FromLang,
		ToLang:   payload.ToLang,
	}
	if meta.FromRole == "" {
		meta.FromRole = translator.DefaultFromRole
	}
	if meta.ToRole == "" {
		meta.ToRole = translator.DefaultToRole
	}
	convID, err := saveExchange(db, uid, payload.ConversationID, meta, text, translated)
	if err != nil {
		log.Printf("[ws] save exchange failed for user %d: %v", uid, err)
		return wsReply{Type: "translated", Translated: translated, Saved: false}
	}
	return wsReply{Type: "translated", Translated: translated, ConversationID: convID, Saved: true}
}
