package content

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jverhoef/cardrail/pkg/errors"
)

// MongoConfig configures the MongoDB-backed source.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string

	// ConnectTimeout bounds the initial connect+ping. Zero uses 10s.
	ConnectTimeout time.Duration
}

// MongoSource reads content records from a MongoDB collection. Records are
// sorted into sandwich order after fetch; the database only guarantees the
// per-document fields, not a global order.
type MongoSource struct {
	client *mongo.Client
	coll   *mongo.Collection
	uri    string
}

// NewMongoSource connects to MongoDB and verifies the connection.
func NewMongoSource(ctx context.Context, cfg MongoConfig) (*MongoSource, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to %s", cfg.URI)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping %s", cfg.URI)
	}

	return &MongoSource{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
		uri:    cfg.URI + "/" + cfg.Database + "." + cfg.Collection,
	}, nil
}

// ID returns the collection URI, used as the cache key component.
func (s *MongoSource) ID() string { return s.uri }

// List fetches all records and sorts them into sandwich order.
func (s *MongoSource) List(ctx context.Context) ([]Record, error) {
	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "find records in %s", s.uri)
	}
	defer cur.Close(ctx)

	var records []Record
	if err := cur.All(ctx, &records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decode records from %s", s.uri)
	}

	SortSandwich(records)
	return records, nil
}

// Close disconnects the underlying client.
func (s *MongoSource) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
