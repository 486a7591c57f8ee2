package conversation

import (
	"YakYak/controllers"
	"YakYak/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Register registers conversation store routes (protected).
func Register(g *gin.RouterGroup, db *gorm.DB) {
	g.GET("/api/conversations", controllers.ListConversations(db))
	g.POST("/api/conversations", controllers.CreateConversation(db))
	g.GET("/api/conversations/:conversation_id", controllers.GetConversation(db))
	// saving an exchange follows a provider call, so it shares the limiter
	g.POST("/api/conversations/:conversation_id/messages", middleware.RateLimit(), controllers.AppendExchange(db))
}
