package cart

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
	carts *mongo.Collection
}

func NewMongo(db *mongo.Database) Repository {
	return &mongoRepo{carts: db.Collection("carts")}
}

func (r *mongoRepo) GetByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Cart, error) {
	var cart domain.Cart
	if err := r.carts.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &cart, nil
}

func (r *mongoRepo) UpsertLine(ctx context.Context, userID primitive.ObjectID, line domain.CartLine) (*domain.Cart, error) {
	now := time.Now().UTC()

	// Overwrite an existing line for this sweet first; fall back to pushing a
	// new line, creating the cart on the way if the user has none yet.
	res, err := r.carts.UpdateOne(ctx,
		bson.M{"userId": userID, "items.sweetId": line.SweetID},
		bson.M{"$set": bson.M{"items.$": line, "updatedAt": now}},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		_, err = r.carts.UpdateOne(ctx,
			bson.M{"userId": userID},
			bson.M{
				"$push":        bson.M{"items": line},
				"$set":         bson.M{"updatedAt": now},
				"$setOnInsert": bson.M{"createdAt": now},
			},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return nil, err
		}
	}
	return r.GetByUser(ctx, userID)
}

func (r *mongoRepo) RemoveLine(ctx context.Context, userID primitive.ObjectID, sweetID int64) (*domain.Cart, error) {
	_, err := r.carts.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{
			"$pull": bson.M{"items": bson.M{"sweetId": sweetID}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return nil, err
	}
	cart, err := r.GetByUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		// Removing from a cart that was never created is not an error.
		return &domain.Cart{UserID: userID, Items: []domain.CartLine{}}, nil
	}
	return cart, err
}

func (r *mongoRepo) Clear(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.carts.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"items": []domain.CartLine{}, "updatedAt": time.Now().UTC()}},
	)
	return err
}
