package user

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	// AppendOrder pushes a snapshot onto the user's order history. The
	// history is append-only; snapshots are never rewritten.
	AppendOrder(ctx context.Context, id primitive.ObjectID, snap domain.OrderSnapshot) error
	Orders(ctx context.Context, id primitive.ObjectID) ([]domain.OrderSnapshot, error)
}
