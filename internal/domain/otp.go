package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Challenge purposes. A user holds at most one active challenge per purpose.
const (
	PurposeOrderConfirm  = "order_confirm"
	PurposePasswordReset = "password_reset"
)

// OtpChallenge is a short-lived one-time code gating a single action. Only a
// bcrypt hash of the code is stored; the plaintext goes out by email.
// Lifecycle: issued -> verified -> consumed, or expired. Never reused.
type OtpChallenge struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     primitive.ObjectID `bson:"userId"`
	Purpose    string             `bson:"purpose"`
	CodeHash   string             `bson:"codeHash"`
	ExpiresAt  time.Time          `bson:"expiresAt"`
	VerifiedAt *time.Time         `bson:"verifiedAt,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

// Expired reports whether the challenge is past its validity window.
func (c OtpChallenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
