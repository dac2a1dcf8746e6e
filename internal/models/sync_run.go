package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái của một lần sync.
const (
	RunStatusDelivered = "DELIVERED"
	RunStatusNoNewJobs = "NO_NEW_JOBS"
	RunStatusFailed    = "FAILED"
)

// SyncRun là bản ghi lịch sử của một lần chạy sync, lưu trong collection "sync_runs".
type SyncRun struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RunID      string             `bson:"runID" json:"runID"` // e.g., "RUN-1a2b3c4d"
	CursorMode string             `bson:"cursorMode" json:"cursorMode"`
	StartedAt  time.Time          `bson:"startedAt" json:"startedAt"`
	FinishedAt time.Time          `bson:"finishedAt" json:"finishedAt"`
	Fetched    int                `bson:"fetched" json:"fetched"`
	JobsBuilt  int                `bson:"jobsBuilt" json:"jobsBuilt"`
	Delivered  bool               `bson:"delivered" json:"delivered"`
	Status     string             `bson:"status" json:"status"`
	Error      string             `bson:"error,omitempty" json:"error,omitempty"`
}
