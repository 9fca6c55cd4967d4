package sweet

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/domain"
)

type mongoRepo struct {
	sweets   *mongo.Collection
	counters *mongo.Collection
	logger   *log.Logger
}

func NewMongo(db *mongo.Database, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &mongoRepo{
		sweets:   db.Collection("sweets"),
		counters: db.Collection("counters"),
		logger:   logger,
	}
}

func (r *mongoRepo) List(ctx context.Context, f ListFilter) ([]domain.Sweet, error) {
	filter := bson.M{}
	if f.Query != "" {
		filter["name"] = bson.M{"$regex": f.Query, "$options": "i"}
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Tag != "" {
		filter["tags"] = f.Tag
	}
	price := bson.M{}
	if f.MinPricePaise != nil {
		price["$gte"] = *f.MinPricePaise
	}
	if f.MaxPricePaise != nil {
		price["$lte"] = *f.MaxPricePaise
	}
	if len(price) > 0 {
		filter["pricePerKgPaise"] = price
	}
	if f.Visible != nil {
		filter["visible"] = *f.Visible
	}
	if f.InStock {
		filter["stockGrams"] = bson.M{"$gt": 0}
	}

	cur, err := r.sweets.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		r.logger.Printf("sweet repo: list error=%v", err)
		return nil, err
	}
	var result []domain.Sweet
	if err := cur.All(ctx, &result); err != nil {
		r.logger.Printf("sweet repo: list decode error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *mongoRepo) GetByID(ctx context.Context, id string) (*domain.Sweet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var s domain.Sweet
	if err := r.sweets.FindOne(ctx, bson.M{"_id": oid}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *mongoRepo) GetBySweetID(ctx context.Context, sweetID int64) (*domain.Sweet, error) {
	var s domain.Sweet
	if err := r.sweets.FindOne(ctx, bson.M{"sweetId": sweetID}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// NextSweetID hands out sequential ids via an atomic counter upsert.
func (r *mongoRepo) NextSweetID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": "sweetId"},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		r.logger.Printf("sweet repo: next id error=%v", err)
		return 0, err
	}
	return counter.Seq, nil
}

func (r *mongoRepo) Insert(ctx context.Context, s domain.Sweet) (*domain.Sweet, error) {
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	res, err := r.sweets.InsertOne(ctx, s)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("sweet repo: insert name=%s error=%v", s.Name, err)
		return nil, err
	}
	s.ID = res.InsertedID.(primitive.ObjectID)
	r.logger.Printf("sweet repo: inserted sweetId=%d name=%s", s.SweetID, s.Name)
	return &s, nil
}

func (r *mongoRepo) Update(ctx context.Context, id string, in UpdateInput) (*domain.Sweet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	set := bson.M{"updatedAt": time.Now().UTC()}
	if in.Name != nil {
		set["name"] = *in.Name
	}
	if in.Category != nil {
		set["category"] = *in.Category
	}
	if in.Description != nil {
		set["description"] = *in.Description
	}
	if in.PricePerKgPaise != nil {
		set["pricePerKgPaise"] = *in.PricePerKgPaise
	}
	if in.CostPerKgPaise != nil {
		set["costPerKgPaise"] = *in.CostPerKgPaise
	}
	if in.StockGrams != nil {
		set["stockGrams"] = *in.StockGrams
	}
	if in.LowStockThresholdGrams != nil {
		set["lowStockThresholdGrams"] = *in.LowStockThresholdGrams
	}
	if in.Tags != nil {
		set["tags"] = *in.Tags
	}
	if in.ImageID != nil {
		set["imageId"] = *in.ImageID
	}

	var s domain.Sweet
	err = r.sweets.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("sweet repo: update id=%s error=%v", id, err)
		return nil, err
	}
	return &s, nil
}

func (r *mongoRepo) Delete(ctx context.Context, id string) (*domain.Sweet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var s domain.Sweet
	if err := r.sweets.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	r.logger.Printf("sweet repo: deleted sweetId=%d name=%s", s.SweetID, s.Name)
	return &s, nil
}

func (r *mongoRepo) ToggleVisible(ctx context.Context, id string) (*domain.Sweet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var s domain.Sweet
	err = r.sweets.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.A{bson.M{"$set": bson.M{"visible": bson.M{"$not": "$visible"}, "updatedAt": "$$NOW"}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Reserve decrements stock only when the current level covers the request.
// The availability check and the decrement are one FindOneAndUpdate, which is
// what prevents two concurrent checkouts from both passing the check.
func (r *mongoRepo) Reserve(ctx context.Context, sweetID, grams int64) (*domain.Sweet, error) {
	var s domain.Sweet
	err := r.sweets.FindOneAndUpdate(ctx,
		bson.M{"sweetId": sweetID, "stockGrams": bson.M{"$gte": grams}},
		bson.M{"$inc": bson.M{"stockGrams": -grams}, "$set": bson.M{"updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&s)
	if err == nil {
		r.logger.Printf("sweet repo: reserved sweetId=%d grams=%d left=%d", sweetID, grams, s.StockGrams)
		return &s, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		r.logger.Printf("sweet repo: reserve sweetId=%d error=%v", sweetID, err)
		return nil, err
	}

	// The conditional update missed: either the sweet is gone or the stock
	// does not cover the request.
	current, err := r.GetBySweetID(ctx, sweetID)
	if err != nil {
		return nil, err
	}
	return nil, &domain.InsufficientStockError{
		SweetID:        current.SweetID,
		Name:           current.Name,
		RequestedGrams: grams,
		AvailableGrams: current.StockGrams,
	}
}

// Release restores previously reserved stock. Used only as the compensating
// half of a failed multi-line reservation.
func (r *mongoRepo) Release(ctx context.Context, sweetID, grams int64) (*domain.Sweet, error) {
	var s domain.Sweet
	err := r.sweets.FindOneAndUpdate(ctx,
		bson.M{"sweetId": sweetID},
		bson.M{"$inc": bson.M{"stockGrams": grams}, "$set": bson.M{"updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("sweet repo: release sweetId=%d error=%v", sweetID, err)
		return nil, err
	}
	r.logger.Printf("sweet repo: released sweetId=%d grams=%d now=%d", sweetID, grams, s.StockGrams)
	return &s, nil
}

func (r *mongoRepo) Restock(ctx context.Context, id string, grams int64) (*domain.Sweet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var s domain.Sweet
	err = r.sweets.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"stockGrams": grams}, "$set": bson.M{"updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("sweet repo: restock id=%s error=%v", id, err)
		return nil, err
	}
	r.logger.Printf("sweet repo: restocked sweetId=%d grams=%d now=%d", s.SweetID, grams, s.StockGrams)
	return &s, nil
}
