package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hackathon-radar/pkg/domain"
)

// MongoStore keeps one document per record. Writes are upserts with
// $setOnInsert, so a stored document is never modified.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(coll *mongo.Collection) (*MongoStore, error) {
	if coll == nil {
		return nil, fmt.Errorf("mongo store: collection not initialized")
	}
	return &MongoStore{coll: coll}, nil
}

func (s *MongoStore) Name() string { return "mongo" }

// EnsureIndexes creates the unique (source, id) index.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "source", Value: 1}, {Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("source_id_unique"),
	})
	if err != nil {
		return persistErr(s.Name(), "create index", err)
	}
	return nil
}

// Load returns every record ordered by insertion (ObjectID order).
func (s *MongoStore) Load(ctx context.Context) (domain.Dataset, error) {
	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetProjection(bson.M{"_id": 0}))
	if err != nil {
		return nil, persistErr(s.Name(), "find", err)
	}
	defer cursor.Close(ctx)

	dataset := domain.Dataset{}
	for cursor.Next(ctx) {
		var h domain.Hackathon
		if err := cursor.Decode(&h); err != nil {
			return nil, &CorruptionError{Backend: s.Name(), Err: fmt.Errorf("decode document: %w", err)}
		}
		dataset = append(dataset, h)
	}
	if err := cursor.Err(); err != nil {
		return nil, persistErr(s.Name(), "cursor", err)
	}
	return dataset, nil
}

// Save upserts every record keyed by (source, id). Existing documents are
// matched and left alone. An interrupted bulk write leaves a subset of the
// new records stored and nothing modified; the next run inserts the rest.
func (s *MongoStore) Save(ctx context.Context, dataset domain.Dataset) error {
	if err := s.EnsureIndexes(ctx); err != nil {
		return err
	}
	if len(dataset) == 0 {
		return nil
	}
	models := make([]mongo.WriteModel, 0, len(dataset))
	for _, h := range dataset {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"source": h.Source, "id": h.ID}).
			SetUpdate(bson.M{"$setOnInsert": h}).
			SetUpsert(true))
	}
	if _, err := s.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true)); err != nil {
		return persistErr(s.Name(), "bulk write", err)
	}
	return nil
}
