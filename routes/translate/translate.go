package translate

import (
	"YakYak/controllers"
	"YakYak/middleware"

	"github.com/gin-gonic/gin"
)

// Register registers the translation endpoint (public, rate limited).
func Register(r *gin.Engine, rw controllers.Rewriter) {
	r.POST("/api/translate", middleware.RateLimit(), controllers.Translate(rw))
}
