package cart

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/domain"
)

type Repository interface {
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Cart, error)
	// UpsertLine inserts the line, or overwrites the existing line for the
	// same sweet. Last write wins; quantities are never added together.
	UpsertLine(ctx context.Context, userID primitive.ObjectID, line domain.CartLine) (*domain.Cart, error)
	RemoveLine(ctx context.Context, userID primitive.ObjectID, sweetID int64) (*domain.Cart, error)
	Clear(ctx context.Context, userID primitive.ObjectID) error
}
