package controllers

import (
	"net/http"
	"strconv"
	"time"

	"YakYak/middleware"
	"YakYak/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Conversation store gateway. Every endpoint here requires an authenticated
// user; unauthenticated clients simply never call these and their
// translations go unsaved. All writes of one exchange run in a single
// transaction so a saved exchange is always both halves plus the bump.

func currentUserID(c *gin.Context) uint {
	raw, _ := c.Get(middleware.ContextUserIDKey)
	s, _ := raw.(string)
	uid, _ := strconv.Atoi(s)
	return uint(uid)
}

// ExchangeMeta carries the role/language settings a conversation is keyed
// by. Languages are stored as the client sent them, sentinels included.
type ExchangeMeta struct {
	FromRole string `json:"fromRole"`
	ToRole   string `json:"toRole"`
	FromLang string `json:"fromLang"`
	ToLang   string `json:"toLang"`
}

func conversationJSON(conv *models.Conversation) gin.H {
	return gin.H{
		"id":         conv.ID,
		"from_role":  conv.FromRole,
		"to_role":    conv.ToRole,
		"from_lang":  conv.FromLang,
		"to_lang":    conv.ToLang,
		"updated_at": conv.UpdatedAt,
	}
}

// ListConversations returns the user's conversations ordered by recency.
func ListConversations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := currentUserID(c)

		var convs []models.Conversation
		if err := db.Where("user_id = ?", uid).Order("updated_at DESC").Find(&convs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}

		result := make([]gin.H, 0, len(convs))
		for i := range convs {
			result = append(result, conversationJSON(&convs[i]))
		}
		c.JSON(http.StatusOK, result)
	}
}

// CreateConversation starts an empty conversation with the given settings.
func CreateConversation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := currentUserID(c)

		var body ExchangeMeta
		if err := c.ShouldBindJSON(&body); err != nil || body.FromRole == "" || body.ToRole == "" {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "fromRole and toRole are required"})
			return
		}

		conv := models.Conversation{
			UserID:   uid,
			FromRole: body.FromRole,
			ToRole:   body.ToRole,
			FromLang: body.FromLang,
			ToLang:   body.ToLang,
		}
		if err := db.Create(&conv).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to create conversation"})
			return
		}
		c.JSON(http.StatusCreated, conversationJSON(&conv))
	}
}

// GetConversation returns one conversation with its messages in creation
// order.
func GetConversation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := currentUserID(c)
		cid, _ := strconv.Atoi(c.Param("conversation_id"))

		var conv models.Conversation
		err := db.Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).Where("id = ? AND user_id = ?", cid, uid).First(&conv).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"msg": "conversation not found"})
			return
		}

		messages := make([]gin.H, 0, len(conv.Messages))
		for _, m := range conv.Messages {
			messages = append(messages, gin.H{
				"id":         m.ID,
				"role":       m.Role,
				"content":    m.Content,
				"created_at": m.CreatedAt,
			})
		}

		out := conversationJSON(&conv)
		out["messages"] = messages
		c.JSON(http.StatusOK, out)
	}
}

// AppendExchange appends a user/assistant message pair to an existing
// conversation and bumps its updated_at, atomically.
func AppendExchange(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := currentUserID(c)
		cid, _ := strconv.Atoi(c.Param("conversation_id"))

		var body struct {
			Message    string `json:"message"`
			Translated string `json:"translated"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || body.Message == "" || body.Translated == "" {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "message and translated are required"})
			return
		}

		var conv models.Conversation
		if err := db.Where("id = ? AND user_id = ?", cid, uid).First(&conv).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"msg": "conversation not found"})
			return
		}

		if err := appendExchangeTx(db, conv.ID, body.Message, body.Translated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to save exchange"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"conversation_id": conv.ID})
	}
}

// appendExchangeTx writes both halves of an exchange and the timestamp bump
// in one transaction.
func appendExchangeTx(db *gorm.DB, convID uint, userText, assistantText string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		pair := []models.Message{
			{ConversationID: convID, Role: models.MessageRoleUser, Content: userText},
			{ConversationID: convID, Role: models.MessageRoleAssistant, Content: assistantText},
		}
		if err := tx.Create(&pair).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).Where("id = ?", convID).
			Update("updated_at", time.Now()).Error
	})
}

// saveExchange persists one exchange for uid, creating the conversation
// first when convID is nil. Used by the websocket channel, where translate
// and persist happen server-side in one round trip.
func saveExchange(db *gorm.DB, uid uint, convID *uint, meta ExchangeMeta, userText, assistantText string) (uint, error) {
	var id uint
	err := db.Transaction(func(tx *gorm.DB) error {
		if convID != nil {
			var conv models.Conversation
			if err := tx.Where("id = ? AND user_id = ?", *convID, uid).First(&conv).Error; err != nil {
				return err
			}
			id = conv.ID
		} else {
			conv := models.Conversation{
				UserID:   uid,
				FromRole: meta.FromRole,
				ToRole:   meta.ToRole,
				FromLang: meta.FromLang,
				ToLang:   meta.ToLang,
			}
			if err := tx.Create(&conv).Error; err != nil {
				return err
			}
			id = conv.ID
		}
		pair := []models.Message{
			{ConversationID: id, Role: models.MessageRoleUser, Content: userText},
			{ConversationID: id, Role: models.MessageRoleAssistant, Content: assistantText},
		}
		if err := tx.Create(&pair).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).Where("id = ?", id).
			Update("updated_at", time.Now()).Error
	})
	return id, err
}
