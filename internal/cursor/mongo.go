package cursor

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const stateDocID = "reservation-cursor"

type cursorDoc struct {
	ID    string `bson:"_id"`
	Value string `bson:"value"`
}

// MongoStore lưu cursor trong một document duy nhất của collection "sync_state".
type MongoStore struct {
	DB *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{DB: db}
}

func (s *MongoStore) Read() (string, error) {
	collection := s.DB.Collection("sync_state")

	var doc cursorDoc
	err := collection.FindOne(context.Background(), bson.M{"_id": stateDocID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return DefaultValue, nil
	}
	if err != nil {
		return "", fmt.Errorf("cursor: read sync_state: %w", err)
	}

	value := strings.TrimSpace(doc.Value)
	if value == "" {
		return DefaultValue, nil
	}
	return value, nil
}

func (s *MongoStore) Write(value string) error {
	collection := s.DB.Collection("sync_state")

	_, err := collection.UpdateOne(
		context.Background(),
		bson.M{"_id": stateDocID},
		bson.M{"$set": bson.M{"value": value}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("cursor: write sync_state: %w", err)
	}
	return nil
}
