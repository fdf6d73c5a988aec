package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-photo-feedback/pkg/models"
)

const analysesCollection = "analyses"

// MongoAnalysisRepository persists analysis records in a MongoDB
// collection, one document per analysis.
type MongoAnalysisRepository struct {
	collection *mongo.Collection
}

// NewMongoAnalysisRepository connects a repository to the given database.
// The caller owns the client lifecycle.
func NewMongoAnalysisRepository(client *mongo.Client, database string) *MongoAnalysisRepository {
	return &MongoAnalysisRepository{
		collection: client.Database(database).Collection(analysesCollection),
	}
}

// analysisDoc is the stored document shape; the hex object id becomes the
// record's string id at the repository boundary.
type analysisDoc struct {
	ID                primitive.ObjectID    `bson:"_id,omitempty"`
	PhotoURL          string                `bson:"photo_url"`
	Result            models.AnalysisResult `bson:"result"`
	ProcessingTimeSec float64               `bson:"processing_time_sec"`
	CreatedAt         time.Time             `bson:"created_at"`
}

func (d *analysisDoc) toRecord() *AnalysisRecord {
	return &AnalysisRecord{
		ID:                d.ID.Hex(),
		PhotoURL:          d.PhotoURL,
		Result:            d.Result,
		ProcessingTimeSec: d.ProcessingTimeSec,
		CreatedAt:         d.CreatedAt,
	}
}

func (r *MongoAnalysisRepository) Save(ctx context.Context, record *AnalysisRecord) (string, error) {
	doc := analysisDoc{
		PhotoURL:          record.PhotoURL,
		Result:            record.Result,
		ProcessingTimeSec: record.ProcessingTimeSec,
		CreatedAt:         record.CreatedAt,
	}
	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("inserting analysis record: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	record.ID = oid.Hex()
	return record.ID, nil
}

func (r *MongoAnalysisRepository) Get(ctx context.Context, id string) (*AnalysisRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrAnalysisNotFound
	}

	var doc analysisDoc
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAnalysisNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching analysis record: %w", err)
	}
	return doc.toRecord(), nil
}

func (r *MongoAnalysisRepository) ListByPhotoURL(ctx context.Context, photoURL string) ([]*AnalysisRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"photo_url": photoURL}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing analysis records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*AnalysisRecord
	for cursor.Next(ctx) {
		var doc analysisDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding analysis record: %w", err)
		}
		records = append(records, doc.toRecord())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterating analysis records: %w", err)
	}
	return records, nil
}
