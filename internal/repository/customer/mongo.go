package customer

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
	customers *mongo.Collection
}

func NewMongo(db *mongo.Database) Repository {
	return &mongoRepo{customers: db.Collection("customers")}
}

func (r *mongoRepo) UpsertFromOrder(ctx context.Context, email, name, address string) (*domain.Customer, error) {
	now := time.Now().UTC()
	set := bson.M{"updatedAt": now}
	if name != "" {
		set["name"] = name
	}
	if address != "" {
		set["address"] = address
	}
	var c domain.Customer
	err := r.customers.FindOneAndUpdate(ctx,
		bson.M{"email": email},
		bson.M{
			"$set":         set,
			"$setOnInsert": bson.M{"email": email, "active": true, "banned": false, "createdAt": now},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *mongoRepo) List(ctx context.Context, query string) ([]domain.Customer, error) {
	filter := bson.M{}
	if query != "" {
		filter["$or"] = bson.A{
			bson.M{"email": bson.M{"$regex": query, "$options": "i"}},
			bson.M{"name": bson.M{"$regex": query, "$options": "i"}},
		}
	}
	cur, err := r.customers.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var result []domain.Customer
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *mongoRepo) Update(ctx context.Context, id primitive.ObjectID, in UpdateInput) (*domain.Customer, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if in.Name != nil {
		set["name"] = *in.Name
	}
	if in.Phone != nil {
		set["phone"] = *in.Phone
	}
	if in.Address != nil {
		set["address"] = *in.Address
	}
	return r.findAndSet(ctx, id, set)
}

func (r *mongoRepo) SetActive(ctx context.Context, id primitive.ObjectID, active bool) (*domain.Customer, error) {
	return r.findAndSet(ctx, id, bson.M{"active": active, "updatedAt": time.Now().UTC()})
}

func (r *mongoRepo) SetBanned(ctx context.Context, id primitive.ObjectID, banned bool) (*domain.Customer, error) {
	return r.findAndSet(ctx, id, bson.M{"banned": banned, "updatedAt": time.Now().UTC()})
}

func (r *mongoRepo) findAndSet(ctx context.Context, id primitive.ObjectID, set bson.M) (*domain.Customer, error) {
	var c domain.Customer
	err := r.customers.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
