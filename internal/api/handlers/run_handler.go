package handlers

import (
	"context"
	"net/http"
	"strconv"

	"scale-sync-api-server/internal/models"
	"scale-sync-api-server/internal/sap"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RunHandler struct {
	DB      *mongo.Database // nil nếu không cấu hình Mongo
	Catalog *sap.Catalog
}

// GetRecentRuns lấy danh sách các lần sync gần nhất, mới nhất trước.
func (h *RunHandler) GetRecentRuns(c *gin.Context) {
	if h.DB == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Run history is not configured"})
		return
	}

	limit := int64(50)
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	collection := h.DB.Collection("sync_runs")
	findOptions := options.Find().
		SetSort(bson.D{{Key: "startedAt", Value: -1}}).
		SetLimit(limit)

	mongoCursor, err := collection.Find(context.Background(), bson.M{}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query sync runs"})
		return
	}
	defer mongoCursor.Close(context.Background())

	var runs []models.SyncRun
	if err = mongoCursor.All(context.Background(), &runs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode sync runs"})
		return
	}

	if runs == nil {
		runs = []models.SyncRun{}
	}

	c.JSON(http.StatusOK, runs)
}

// GetCatalogStats trả về số liệu cache của product catalog.
func (h *RunHandler) GetCatalogStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.Stats())
}
