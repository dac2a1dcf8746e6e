// server/internal/database/mongo.go
package database

import (
	"context"
	"fmt"
	"time"

	"scale-sync-api-server/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect mở kết nối tới MongoDB và ping để chắc chắn server sống.
func Connect(cfg config.MongoConfig) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	return client.Database(cfg.DBName), nil
}

// EnsureIndexes tạo các index cần cho truy vấn lịch sử sync run.
func EnsureIndexes(db *mongo.Database) error {
	collection := db.Collection("sync_runs")

	_, err := collection.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "startedAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("database: create sync_runs index: %w", err)
	}
	return nil
}
