package localstore

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"balaji-storefront/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoCollection = "local_storage"

type mongoDoc struct {
	VisitorID string    `bson:"visitorId"`
	Key       string    `bson:"key"`
	Payload   string    `bson:"payload"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

type mongoRepo struct {
	db     *mongo.Database
	coll   *mongo.Collection
	logger *log.Logger
}

// NewMongo returns a Repository backed by the local_storage collection of db.
func NewMongo(db *mongo.Database, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &mongoRepo{db: db, coll: db.Collection(mongoCollection), logger: logger}
}

// EnsureIndexes creates the unique (visitorId, key) index. Safe to call repeatedly.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(mongoCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "visitorId", Value: 1}, {Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *mongoRepo) Get(ctx context.Context, visitorID, key string) ([]byte, error) {
	var doc mongoDoc
	err := r.coll.FindOne(ctx, bson.M{"visitorId": visitorID, "key": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("localstore repo: mongo get visitor_id=%s key=%s error=%v", visitorID, key, err)
		return nil, err
	}
	return []byte(doc.Payload), nil
}

func (r *mongoRepo) Put(ctx context.Context, visitorID, key string, payload []byte) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"visitorId": visitorID, "key": key},
		bson.M{"$set": bson.M{"payload": string(payload), "updatedAt": time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		r.logger.Printf("localstore repo: mongo put visitor_id=%s key=%s error=%v", visitorID, key, err)
		return err
	}
	return nil
}

func (r *mongoRepo) Delete(ctx context.Context, visitorID, key string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"visitorId": visitorID, "key": key}); err != nil {
		r.logger.Printf("localstore repo: mongo delete visitor_id=%s key=%s error=%v", visitorID, key, err)
		return err
	}
	return nil
}

func (r *mongoRepo) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, nil)
}
