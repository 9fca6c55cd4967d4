package otp

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
	challenges *mongo.Collection
}

func NewMongo(db *mongo.Database) Repository {
	return &mongoRepo{challenges: db.Collection("otp_challenges")}
}

func (r *mongoRepo) Upsert(ctx context.Context, ch domain.OtpChallenge) error {
	_, err := r.challenges.ReplaceOne(ctx,
		bson.M{"userId": ch.UserID, "purpose": ch.Purpose},
		ch,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *mongoRepo) GetActive(ctx context.Context, userID primitive.ObjectID, purpose string) (*domain.OtpChallenge, error) {
	var ch domain.OtpChallenge
	err := r.challenges.FindOne(ctx, bson.M{
		"userId":     userID,
		"purpose":    purpose,
		"verifiedAt": bson.M{"$exists": false},
	}).Decode(&ch)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &ch, nil
}

func (r *mongoRepo) MarkVerified(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	res, err := r.challenges.UpdateOne(ctx,
		bson.M{"_id": id, "verifiedAt": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"verifiedAt": at.UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *mongoRepo) ConsumeVerified(ctx context.Context, userID primitive.ObjectID, purpose string, notBefore time.Time) (*domain.OtpChallenge, error) {
	var ch domain.OtpChallenge
	err := r.challenges.FindOneAndDelete(ctx, bson.M{
		"userId":     userID,
		"purpose":    purpose,
		"verifiedAt": bson.M{"$gte": notBefore.UTC()},
	}).Decode(&ch)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &ch, nil
}

func (r *mongoRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.challenges.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
