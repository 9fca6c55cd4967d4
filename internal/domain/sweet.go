package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sweet is a catalog product. Stock is kept in grams, price in paise per
// kilogram, so the reservation filter never compares floats.
type Sweet struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SweetID                int64              `bson:"sweetId" json:"sweetId"`
	Name                   string             `bson:"name" json:"name"`
	Category               string             `bson:"category" json:"category"`
	Description            string             `bson:"description,omitempty" json:"description,omitempty"`
	PricePerKgPaise        int64              `bson:"pricePerKgPaise" json:"pricePerKgPaise"`
	CostPerKgPaise         int64              `bson:"costPerKgPaise,omitempty" json:"costPerKgPaise,omitempty"`
	StockGrams             int64              `bson:"stockGrams" json:"stockGrams"`
	LowStockThresholdGrams int64              `bson:"lowStockThresholdGrams" json:"lowStockThresholdGrams"`
	Visible                bool               `bson:"visible" json:"visible"`
	ImageID                string             `bson:"imageId,omitempty" json:"imageId,omitempty"`
	Tags                   []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt              time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt              time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// LineTotalPaise computes the price of a given mass at this sweet's rate.
func (s Sweet) LineTotalPaise(grams int64) int64 {
	return grams * s.PricePerKgPaise / 1000
}
