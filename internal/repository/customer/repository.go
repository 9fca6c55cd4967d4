package customer

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/domain"
)

// UpdateInput carries admin edits to a customer profile.
type UpdateInput struct {
	Name    *string
	Phone   *string
	Address *string
}

type Repository interface {
	// UpsertFromOrder records or refreshes a customer profile when an order
	// is placed, keyed by email.
	UpsertFromOrder(ctx context.Context, email, name, address string) (*domain.Customer, error)
	List(ctx context.Context, query string) ([]domain.Customer, error)
	Update(ctx context.Context, id primitive.ObjectID, in UpdateInput) (*domain.Customer, error)
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) (*domain.Customer, error)
	SetBanned(ctx context.Context, id primitive.ObjectID, banned bool) (*domain.Customer, error)
}
