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

// CriteriaRepo handles the evaluation-criteria audit trail, recording
// where each criterion on a form came from.
type CriteriaRepo interface {
	Create(ctx context.Context, c *model.EvaluationCriterion) (string, error)
	GetByFormID(ctx context.Context, formID string) ([]*model.EvaluationCriterion, error)
}

type criteriaRepo struct {
	collection *mongo.Collection
}

// NewCriteriaRepo creates a new evaluation criteria repository
func NewCriteriaRepo(db *mongo.Database) CriteriaRepo {
	return &criteriaRepo{
		collection: db.Collection("evaluation_criteria"),
	}
}

func (r *criteriaRepo) Create(ctx context.Context, c *model.EvaluationCriterion) (string, error) {
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, c)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	return oid.Hex(), nil
}

func (r *criteriaRepo) GetByFormID(ctx context.Context, formID string) ([]*model.EvaluationCriterion, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"formId": formID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var criteria []*model.EvaluationCriterion
	if err := cursor.All(ctx, &criteria); err != nil {
		return nil, err
	}
	return criteria, nil
}
