package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/taskpad/taskpad/internal/config"
)

// Client wraps the Mongo connection together with the task collection handle.
type Client struct {
	client *mongodrv.Client
	coll   *mongodrv.Collection
}

// Connect dials MongoDB, verifies the connection and ensures the unique index
// on the application-level task id. Callers treat a failure here as fatal.
func Connect(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongodrv.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)

	indexModel := mongodrv.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := coll.Indexes().CreateOne(connectCtx, indexModel); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("connected to mongodb",
		zap.String("database", cfg.Database),
		zap.String("collection", cfg.Collection),
	)

	return &Client{client: client, coll: coll}, nil
}

// Tasks returns the task collection handle.
func (c *Client) Tasks() *mongodrv.Collection {
	return c.coll
}

// Ping checks connectivity for the health monitor.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the underlying client.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
