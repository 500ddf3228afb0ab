package store

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/qchip/pkg/errors"
)

// Mongo defaults.
const (
	DefaultMongoDB         = "qchip"
	DefaultMongoCollection = "jobs"
	mongoConnectTimeout    = 10 * time.Second
)

// MongoConfig configures a MongoStore.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// MongoStore keeps jobs in a MongoDB collection. Expiry is delegated to a
// TTL index on expires_at.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects, pings and ensures the indexes exist.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "mongo uri is required")
	}
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDB
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}

	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongo")
	}

	s := &MongoStore{client: client, coll: client.Database(cfg.Database).Collection(cfg.Collection)}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create job indexes")
	}
	return nil
}

func (s *MongoStore) Put(ctx context.Context, job *Job) error {
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": job.ID}, job, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "store job %s", job.ID)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Job, error) {
	var job Job
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&job)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load job %s", id)
	}
	// the TTL monitor runs about once a minute
	if job.IsExpired() {
		return nil, notFound(id)
	}
	return &job, nil
}

func (s *MongoStore) List(ctx context.Context, limit int) ([]*Job, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"artifacts": 0})

	cur, err := s.coll.Find(ctx, bson.M{"expires_at": bson.M{"$gt": time.Now()}}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list jobs")
	}
	jobs := []*Job{}
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode jobs")
	}
	return jobs, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete job %s", id)
	}
	return nil
}

// Cleanup removes expired jobs immediately rather than waiting for the TTL monitor.
func (s *MongoStore) Cleanup(ctx context.Context) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": time.Now()}})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "cleanup jobs")
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
