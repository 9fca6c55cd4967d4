package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses, in delivery order. CANCELLED may follow any status except
// DELIVERED.
const (
	StatusPending        = "PENDING"
	StatusConfirmed      = "CONFIRMED"
	StatusPreparing      = "PREPARING"
	StatusReady          = "READY"
	StatusOutForDelivery = "OUT_FOR_DELIVERY"
	StatusDelivered      = "DELIVERED"
	StatusCancelled      = "CANCELLED"
)

// Order is the admin-tracked record created at placement time. Only Status
// changes after creation.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID       string             `bson:"orderId" json:"orderId"`
	CustomerID    primitive.ObjectID `bson:"customerId" json:"customerId"`
	Address       string             `bson:"address" json:"address"`
	Items         []OrderItem        `bson:"items" json:"items"`
	SubtotalPaise int64              `bson:"subtotalPaise" json:"subtotalPaise"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// OrderItem is a frozen copy of a cart line. Later product edits must not
// retroactively alter historical orders, so nothing here references the
// live sweet document.
type OrderItem struct {
	SweetID         int64  `bson:"sweetId" json:"sweetId"`
	Name            string `bson:"name" json:"name"`
	Grams           int64  `bson:"grams" json:"grams"`
	PricePerKgPaise int64  `bson:"pricePerKgPaise" json:"pricePerKgPaise"`
	TotalPaise      int64  `bson:"totalPaise" json:"totalPaise"`
}

// OrderSnapshot is the copy appended to the owning user's history.
type OrderSnapshot struct {
	OrderID       string      `bson:"orderId" json:"orderId"`
	Address       string      `bson:"address" json:"address"`
	Items         []OrderItem `bson:"items" json:"items"`
	SubtotalPaise int64       `bson:"subtotalPaise" json:"subtotalPaise"`
	CreatedAt     time.Time   `bson:"createdAt" json:"createdAt"`
}
