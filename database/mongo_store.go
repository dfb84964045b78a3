package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/princinho/rentalbackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	siteCollection = "site"
	siteDocumentID = "site"
)

type siteRecord struct {
	ID              string `bson:"_id"`
	models.Document `bson:",inline"`
}

// MongoStore keeps the document as a single record of the "site"
// collection.
type MongoStore struct {
	client *mongo.Client
	col    *mongo.Collection
}

func NewMongoStore(ctx context.Context, uri, databaseName string) (*MongoStore, error) {
	if uri == "" {
		return nil, fmt.Errorf("%w: MONGODB_URI is empty", ErrStoreUnavailable)
	}
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %v", ErrStoreUnavailable, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: ping: %v", ErrStoreUnavailable, err)
	}
	return &MongoStore{
		client: client,
		col:    client.Database(databaseName).Collection(siteCollection),
	}, nil
}

func (s *MongoStore) Load(ctx context.Context) (*models.Document, error) {
	var rec siteRecord
	err := s.col.FindOne(ctx, bson.M{"_id": siteDocumentID}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &models.Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find site document: %v", ErrStoreUnavailable, err)
	}
	return &rec.Document, nil
}

func (s *MongoStore) Save(ctx context.Context, doc *models.Document) error {
	rec := siteRecord{ID: siteDocumentID, Document: *doc}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.col.ReplaceOne(ctx, bson.M{"_id": siteDocumentID}, rec, opts); err != nil {
		return fmt.Errorf("replace site document: %w", err)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
