package audit

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig locates the activity collection.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

type mongoStore struct {
	client *mongo.Client
	col    *mongo.Collection
}

// NewMongoWriter connects to MongoDB and returns a Writer storing entries
// in cfg.Collection, indexed by time. The caller must Close it.
func NewMongoWriter(ctx context.Context, cfg MongoConfig) (*Writer, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI(cfg.URI).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(10)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("audit: mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background()) //nolint:errcheck
		return nil, fmt.Errorf("audit: mongo ping: %w", err)
	}

	col := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "at", Value: -1}}},
		{Keys: bson.D{{Key: "event", Value: 1}, {Key: "at", Value: -1}}},
	})
	if err != nil {
		client.Disconnect(context.Background()) //nolint:errcheck
		return nil, fmt.Errorf("audit: mongo index: %w", err)
	}

	return newWriter(&mongoStore{client: client, col: col}, drainTick), nil
}

func (s *mongoStore) insert(ctx context.Context, docs []any) error {
	_, err := s.col.InsertMany(ctx, docs)
	return err
}

func (s *mongoStore) close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
