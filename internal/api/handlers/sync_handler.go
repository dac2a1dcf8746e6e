package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"scale-sync-api-server/internal/models"
	"scale-sync-api-server/internal/scale"
	"scale-sync-api-server/internal/socket"
	"scale-sync-api-server/internal/syncer"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

type SyncHandler struct {
	Orchestrator *syncer.Orchestrator
	DB           *mongo.Database // nil nếu không cấu hình Mongo
	Hub          *socket.Hub
}

// syncEvent là message broadcast cho các dashboard client sau mỗi lần chạy.
type syncEvent struct {
	Type string         `json:"type"`
	Run  models.SyncRun `json:"run"`
}

// TriggerSync xử lý một trigger sync từ scheduler bên ngoài, chạy trọn
// một lần Fetch -> Build -> Deliver rồi map outcome sang HTTP status.
func (h *SyncHandler) TriggerSync(c *gin.Context) {
	outcome := h.Orchestrator.RunOnce(c.Request.Context())

	if errors.Is(outcome.Err, syncer.ErrRunInProgress) {
		c.JSON(http.StatusConflict, gin.H{"error": "A sync run is already in progress"})
		return
	}

	run := outcome.Record()
	h.recordRun(run)
	h.broadcastRun(run)

	if outcome.Err != nil {
		log.Printf("Sync run %s failed: %v", outcome.RunID, outcome.Err)
		if errors.Is(outcome.Err, scale.ErrDeliveryFailed) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to schedule job", "run": run})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch reservations", "run": run})
		return
	}

	if outcome.JobsBuilt == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No new jobs to schedule", "run": run})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Jobs scheduled", "run": run})
}

// recordRun lưu bản ghi run vào collection "sync_runs" nếu Mongo được cấu hình.
func (h *SyncHandler) recordRun(run models.SyncRun) {
	if h.DB == nil {
		return
	}
	collection := h.DB.Collection("sync_runs")
	if _, err := collection.InsertOne(context.Background(), run); err != nil {
		// Lịch sử run là phụ trợ, không làm hỏng kết quả sync.
		log.Printf("Failed to record sync run %s: %v", run.RunID, err)
	}
}

func (h *SyncHandler) broadcastRun(run models.SyncRun) {
	if h.Hub == nil {
		return
	}
	message, err := json.Marshal(syncEvent{Type: "sync_run", Run: run})
	if err != nil {
		log.Printf("Failed to marshal sync event: %v", err)
		return
	}
	h.Hub.Broadcast(message)
}
