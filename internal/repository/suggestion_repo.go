package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"rfxintake/internal/model"
)

// SuggestionRepo handles MongoDB operations for AI suggestions
type SuggestionRepo interface {
	Create(ctx context.Context, s *model.Suggestion) (string, error)
	GetByID(ctx context.Context, id string) (*model.Suggestion, error)
	GetByFormID(ctx context.Context, formID string) ([]*model.Suggestion, error)
	Update(ctx context.Context, s *model.Suggestion) error
}

type suggestionRepo struct {
	collection *mongo.Collection
}

// NewSuggestionRepo creates a new suggestion repository
func NewSuggestionRepo(db *mongo.Database) SuggestionRepo {
	return &suggestionRepo{
		collection: db.Collection("ai_suggestions"),
	}
}

func (r *suggestionRepo) Create(ctx context.Context, s *model.Suggestion) (string, error) {
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, s)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	return oid.Hex(), nil
}

func (r *suggestionRepo) GetByID(ctx context.Context, id string) (*model.Suggestion, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var s model.Suggestion
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.ID = id
	return &s, nil
}

func (r *suggestionRepo) GetByFormID(ctx context.Context, formID string) ([]*model.Suggestion, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"formId": formID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var suggestions []*model.Suggestion
	if err := cursor.All(ctx, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

func (r *suggestionRepo) Update(ctx context.Context, s *model.Suggestion) error {
	oid, err := primitive.ObjectIDFromHex(s.ID)
	if err != nil {
		return err
	}

	_, err = r.collection.ReplaceOne(ctx, bson.M{"_id": oid}, s)
	return err
}
