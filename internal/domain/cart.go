package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MinCartGrams is the smallest mass a cart line may carry.
const MinCartGrams = 200

// Cart holds a single user's pending line items. One cart per user,
// enforced by a unique index on userId.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Items     []CartLine         `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CartLine captures the requested mass and the unit price in effect when the
// line was last set. Updates overwrite the mass, they never accumulate.
type CartLine struct {
	SweetID         int64  `bson:"sweetId" json:"sweetId"`
	Name            string `bson:"name" json:"name"`
	Grams           int64  `bson:"grams" json:"grams"`
	PricePerKgPaise int64  `bson:"pricePerKgPaise" json:"pricePerKgPaise"`
	TotalPaise      int64  `bson:"totalPaise" json:"totalPaise"`
}
