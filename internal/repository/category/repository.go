package category

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, c domain.Category) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, id primitive.ObjectID, name *string, order *int) (*domain.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
