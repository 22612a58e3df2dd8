package sequenceRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medibook/database"
)

// SequenceRepository hands out human-readable ids such as "P00001" or
// "APT00042". Next is atomic per sequence name, so ids never collide under
// concurrent creation.
type SequenceRepository interface {
	Next(name, prefix string) (string, error)
}

type sequenceDoc struct {
	Name string `bson:"_id"`
	Seq  int64  `bson:"seq"`
}

// MongoSequenceRepo implements SequenceRepository over a counters collection.
type MongoSequenceRepo struct {
	coll *mongo.Collection
}

// NewMongoSequenceRepo creates a new instance of SequenceRepository using MongoDB.
func NewMongoSequenceRepo() SequenceRepository {
	return &MongoSequenceRepo{coll: database.Collection("sequences")}
}

// Next increments the named counter and returns the formatted id. The upsert
// with ReturnDocument(After) makes the first call race-free as well.
func (r *MongoSequenceRepo) Next(name, prefix string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": name}
	update := bson.M{"$inc": bson.M{"seq": int64(1)}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc sequenceDoc
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return "", fmt.Errorf("failed to advance sequence %s: %w", name, err)
	}
	return FormatID(prefix, doc.Seq), nil
}

// FormatID renders a counter value as prefix + zero-padded 5-digit number.
func FormatID(prefix string, seq int64) string {
	return fmt.Sprintf("%s%05d", prefix, seq)
}
