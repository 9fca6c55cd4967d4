package order

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/domain"
)

type Repository interface {
	Insert(ctx context.Context, o domain.Order) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	// UpdateStatus moves the order from exactly the given current status to
	// the next one, so two concurrent transitions cannot both win.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to string) (*domain.Order, error)
}
