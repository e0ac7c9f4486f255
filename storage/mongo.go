package storage

import (
	"context"

	"wardwatch-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoIssueStore stores issues in the "issues" collection, keyed by the
// issue's uuid as _id.
type MongoIssueStore struct {
	collection *mongo.Collection
}

func NewMongoIssueStore(db *mongo.Database) *MongoIssueStore {
	return &MongoIssueStore{collection: db.Collection("issues")}
}

func (s *MongoIssueStore) Insert(ctx context.Context, issue *models.Issue) error {
	_, err := s.collection.InsertOne(ctx, issue)
	return err
}

func (s *MongoIssueStore) Get(ctx context.Context, id string) (*models.Issue, error) {
	var issue models.Issue
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &issue, nil
}

func (s *MongoIssueStore) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoIssueStore) All(ctx context.Context) ([]models.Issue, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// MongoWardStore reads ward reference data from the "ward" collection.
// Wards are returned sorted by _id so resolution order stays deterministic
// across queries.
type MongoWardStore struct {
	collection *mongo.Collection
}

func NewMongoWardStore(db *mongo.Database) *MongoWardStore {
	return &MongoWardStore{collection: db.Collection("ward")}
}

func (s *MongoWardStore) All(ctx context.Context) ([]models.Ward, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := s.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var wards []models.Ward
	if err := cursor.All(ctx, &wards); err != nil {
		return nil, err
	}
	return wards, nil
}
