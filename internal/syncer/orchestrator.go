package syncer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"scale-sync-api-server/internal/models"

	"github.com/google/uuid"
)

// ErrRunInProgress được trả về khi một trigger đến trong lúc lần sync
// trước chưa xong. Cursor store và product cache là state dùng chung nên
// các lần chạy phải nối tiếp, không chồng lên nhau.
var ErrRunInProgress = errors.New("syncer: a sync run is already in progress")

type ReservationFetcher interface {
	FetchNew(ctx context.Context) ([]models.ReservationDocument, error)
}

type PayloadBuilder interface {
	Build(ctx context.Context, docs []models.ReservationDocument) models.JobPayload
}

type Dispatcher interface {
	Deliver(ctx context.Context, payload models.JobPayload) error
}

// Outcome là kết quả của một lần sync.
type Outcome struct {
	RunID      string
	CursorMode string
	StartedAt  time.Time
	FinishedAt time.Time
	Fetched    int
	JobsBuilt  int
	Delivered  bool
	Err        error
}

// Status phân loại outcome thành trạng thái lưu trong lịch sử run.
func (o Outcome) Status() string {
	switch {
	case o.Err != nil:
		return models.RunStatusFailed
	case o.Delivered:
		return models.RunStatusDelivered
	default:
		return models.RunStatusNoNewJobs
	}
}

// Record chuyển Outcome thành bản ghi SyncRun để lưu vào Mongo.
func (o Outcome) Record() models.SyncRun {
	run := models.SyncRun{
		RunID:      o.RunID,
		CursorMode: o.CursorMode,
		StartedAt:  o.StartedAt,
		FinishedAt: o.FinishedAt,
		Fetched:    o.Fetched,
		JobsBuilt:  o.JobsBuilt,
		Delivered:  o.Delivered,
		Status:     o.Status(),
	}
	if o.Err != nil {
		run.Error = o.Err.Error()
	}
	return run
}

// Orchestrator nối Fetcher -> Builder -> Dispatcher cho một lần sync.
type Orchestrator struct {
	Fetcher    ReservationFetcher
	Builder    PayloadBuilder
	Dispatcher Dispatcher
	CursorMode string

	mu sync.Mutex
}

// RunOnce thực hiện trọn vẹn một lần sync. Payload không có job nào thì
// không gọi downstream (no-op, không phải lỗi). Không có retry ở đây;
// caller chạy lại ở tick kế tiếp nếu muốn.
func (o *Orchestrator) RunOnce(ctx context.Context) Outcome {
	outcome := Outcome{
		RunID:      fmt.Sprintf("RUN-%s", uuid.New().String()[:8]),
		CursorMode: o.CursorMode,
		StartedAt:  time.Now(),
	}

	if !o.mu.TryLock() {
		outcome.Err = ErrRunInProgress
		outcome.FinishedAt = time.Now()
		return outcome
	}
	defer o.mu.Unlock()

	log.Printf("Sync run %s started (%s cursor)", outcome.RunID, o.CursorMode)

	docs, err := o.Fetcher.FetchNew(ctx)
	if err != nil {
		outcome.Err = fmt.Errorf("sync run %s: %w", outcome.RunID, err)
		outcome.FinishedAt = time.Now()
		return outcome
	}
	outcome.Fetched = len(docs)

	payload := o.Builder.Build(ctx, docs)
	outcome.JobsBuilt = len(payload.JobList)

	if outcome.JobsBuilt == 0 {
		log.Printf("Sync run %s: no new jobs to schedule", outcome.RunID)
		outcome.FinishedAt = time.Now()
		return outcome
	}

	if err := o.Dispatcher.Deliver(ctx, payload); err != nil {
		outcome.Err = fmt.Errorf("sync run %s: %w", outcome.RunID, err)
		outcome.FinishedAt = time.Now()
		return outcome
	}

	outcome.Delivered = true
	outcome.FinishedAt = time.Now()
	log.Printf("Sync run %s delivered %d jobs", outcome.RunID, outcome.JobsBuilt)
	return outcome
}
