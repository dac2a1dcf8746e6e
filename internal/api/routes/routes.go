// server/internal/api/routes/routes.go
package routes

import (
	"net/http"
	"time"

	"scale-sync-api-server/config"
	"scale-sync-api-server/internal/api/handlers"
	"scale-sync-api-server/internal/api/middleware"
	"scale-sync-api-server/internal/sap"
	"scale-sync-api-server/internal/socket"
	"scale-sync-api-server/internal/syncer"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRouter nhận vào các thành phần phụ thuộc và thiết lập các route.
func SetupRouter(
	orchestrator *syncer.Orchestrator,
	catalog *sap.Catalog,
	cfg config.Config,
	db *mongo.Database,
	wsHub *socket.Hub,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", "x-sync-secret"},
		MaxAge:       12 * time.Hour,
	}))

	// Khởi tạo các handlers
	syncHandler := &handlers.SyncHandler{Orchestrator: orchestrator, DB: db, Hub: wsHub}
	runHandler := &handlers.RunHandler{DB: db, Catalog: catalog}
	authHandler := &handlers.AuthHandler{Cfg: cfg}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub}

	// Health check, trả về giờ server
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"time": time.Now().UTC()})
	})

	api := router.Group("/api")
	{
		// Trigger sync, xác thực bằng x-sync-secret
		syncRoutes := api.Group("/sync")
		syncRoutes.Use(middleware.RequireSyncSecret(cfg.Sync))
		{
			syncRoutes.POST("", syncHandler.TriggerSync)
		}

		apiV1 := api.Group("/v1")
		{
			// Đổi sync secret lấy JWT cho operator
			apiV1.POST("/auth/token", authHandler.IssueToken)

			// WebSocket feed, token được kiểm tra trong handler
			apiV1.GET("/ws", webSocketHandler.ServeWs)

			// Các endpoint observability, yêu cầu JWT
			observability := apiV1.Group("/")
			observability.Use(middleware.Authenticate())
			{
				observability.GET("/runs", runHandler.GetRecentRuns)
				observability.GET("/catalog/stats", runHandler.GetCatalogStats)
			}
		}
	}

	return router
}
