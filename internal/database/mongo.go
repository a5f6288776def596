package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewMongo establishes a MongoDB client with a 10-second connection timeout
// and verifies the connection with a ping.
//
// Typical usage:
//
//	client, ctx, cancel, err := database.NewMongo(cfg.MongoURI)
//	if err != nil { … }
//	defer cancel()
//	defer client.Disconnect(ctx)
func NewMongo(uri string) (*mongo.Client, context.Context, context.CancelFunc, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)

	clientOpts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, ctx, cancel, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		// Disconnect on ping failure to avoid leaking sockets.
		_ = client.Disconnect(ctx)
		return nil, ctx, cancel, err
	}

	return client, ctx, cancel, nil
}
