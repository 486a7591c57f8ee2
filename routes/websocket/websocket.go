package websocket

import (
	"YakYak/controllers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Register registers the websocket translate channel. Auth happens inside
// the handler via the token query parameter.
func Register(r *gin.Engine, db *gorm.DB, rw controllers.Rewriter) {
	r.GET("/ws/translate", controllers.TranslateWS(db, rw))
}
