package otp

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/domain"
)

type Repository interface {
	// Upsert replaces any prior challenge for the same user and purpose.
	// At most one challenge per (user, purpose) exists at a time.
	Upsert(ctx context.Context, ch domain.OtpChallenge) error
	// GetActive returns the unverified challenge for the user, if any.
	GetActive(ctx context.Context, userID primitive.ObjectID, purpose string) (*domain.OtpChallenge, error)
	MarkVerified(ctx context.Context, id primitive.ObjectID, at time.Time) error
	// ConsumeVerified atomically removes and returns a challenge that was
	// verified at or after notBefore. Removal is what makes the challenge
	// single use.
	ConsumeVerified(ctx context.Context, userID primitive.ObjectID, purpose string, notBefore time.Time) (*domain.OtpChallenge, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
