package category

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/domain"
)

type mongoRepo struct {
	categories *mongo.Collection
}

func NewMongo(db *mongo.Database) Repository {
	return &mongoRepo{categories: db.Collection("categories")}
}

func (r *mongoRepo) Create(ctx context.Context, c domain.Category) (*domain.Category, error) {
	c.CreatedAt = time.Now().UTC()
	res, err := r.categories.InsertOne(ctx, c)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return &c, nil
}

func (r *mongoRepo) List(ctx context.Context) ([]domain.Category, error) {
	cur, err := r.categories.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var result []domain.Category
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *mongoRepo) Update(ctx context.Context, id primitive.ObjectID, name *string, order *int) (*domain.Category, error) {
	set := bson.M{}
	if name != nil {
		set["name"] = *name
	}
	if order != nil {
		set["order"] = *order
	}
	var c domain.Category
	if len(set) == 0 {
		// Nothing to change; hand back the current document.
		err := r.categories.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, domain.ErrNotFound
			}
			return nil, err
		}
		return &c, nil
	}
	err := r.categories.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &c, nil
}

func (r *mongoRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.categories.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
