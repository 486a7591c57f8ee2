package routes

import (
	"net/http"

	"YakYak/controllers"
	"YakYak/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authRoutes "YakYak/routes/auth"
	convRoutes "YakYak/routes/conversation"
	profileRoutes "YakYak/routes/profile"
	translateRoutes "YakYak/routes/translate"
	websocketRoutes "YakYak/routes/websocket"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rw controllers.Rewriter) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "YakYak core running"})
	})

	// translation works without a session; persistence does not
	translateRoutes.Register(r, rw)
	websocketRoutes.Register(r, db, rw)
	authRoutes.RegisterPublic(r, db)

	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware())
	authRoutes.RegisterProtected(protected)
	profileRoutes.Register(protected, db)
	convRoutes.Register(protected, db)
}
