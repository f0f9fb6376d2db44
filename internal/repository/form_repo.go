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

// FormRepo handles MongoDB operations for intake forms
type FormRepo interface {
	Create(ctx context.Context, form *model.IntakeForm) (string, error)
	GetByID(ctx context.Context, id string) (*model.IntakeForm, error)
	GetByUserID(ctx context.Context, userID string) ([]*model.IntakeForm, error)
	GetByStatuses(ctx context.Context, statuses []model.FormStatus) ([]*model.IntakeForm, error)
	Update(ctx context.Context, form *model.IntakeForm) error
	UpdateStatus(ctx context.Context, id string, status model.FormStatus) error
}

type formRepo struct {
	collection *mongo.Collection
}

// NewFormRepo creates a new intake form repository
func NewFormRepo(db *mongo.Database) FormRepo {
	return &formRepo{
		collection: db.Collection("intake_forms"),
	}
}

func (r *formRepo) Create(ctx context.Context, form *model.IntakeForm) (string, error) {
	form.CreatedAt = time.Now()
	form.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, form)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	return oid.Hex(), nil
}

func (r *formRepo) GetByID(ctx context.Context, id string) (*model.IntakeForm, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var form model.IntakeForm
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&form)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	form.ID = id
	return &form, nil
}

func (r *formRepo) GetByUserID(ctx context.Context, userID string) ([]*model.IntakeForm, error) {
	opts := options.Find().SetSort(bson.M{"updatedAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var forms []*model.IntakeForm
	if err := cursor.All(ctx, &forms); err != nil {
		return nil, err
	}
	return forms, nil
}

func (r *formRepo) GetByStatuses(ctx context.Context, statuses []model.FormStatus) ([]*model.IntakeForm, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"status": bson.M{"$in": statuses}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var forms []*model.IntakeForm
	if err := cursor.All(ctx, &forms); err != nil {
		return nil, err
	}
	return forms, nil
}

func (r *formRepo) Update(ctx context.Context, form *model.IntakeForm) error {
	oid, err := primitive.ObjectIDFromHex(form.ID)
	if err != nil {
		return err
	}

	form.UpdatedAt = time.Now()
	_, err = r.collection.ReplaceOne(ctx, bson.M{"_id": oid}, form)
	return err
}

func (r *formRepo) UpdateStatus(ctx context.Context, id string, status model.FormStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"status": status, "updatedAt": time.Now()},
	})
	return err
}
