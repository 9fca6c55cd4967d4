package sweet

import (
	"context"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/domain"
)

// ListFilter narrows the catalog listing. Zero values mean "no constraint".
type ListFilter struct {
	Query         string
	Category      string
	Tag           string
	MinPricePaise *int64
	MaxPricePaise *int64
	Visible       *bool
	InStock       bool
}

// UpdateInput carries admin edits. Nil fields are left untouched.
type UpdateInput struct {
	Name                   *string
	Category               *string
	Description            *string
	PricePerKgPaise        *int64
	CostPerKgPaise         *int64
	StockGrams             *int64
	LowStockThresholdGrams *int64
	Tags                   *[]string
	ImageID                *string
}

type Repository interface {
	List(ctx context.Context, f ListFilter) ([]domain.Sweet, error)
	GetByID(ctx context.Context, id string) (*domain.Sweet, error)
	GetBySweetID(ctx context.Context, sweetID int64) (*domain.Sweet, error)
	NextSweetID(ctx context.Context) (int64, error)
	Insert(ctx context.Context, s domain.Sweet) (*domain.Sweet, error)
	Update(ctx context.Context, id string, in UpdateInput) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) (*domain.Sweet, error)
	ToggleVisible(ctx context.Context, id string) (*domain.Sweet, error)

	// Stock primitives. All mutation of stockGrams goes through these; no
	// caller may read-then-write the field.
	Reserve(ctx context.Context, sweetID, grams int64) (*domain.Sweet, error)
	Release(ctx context.Context, sweetID, grams int64) (*domain.Sweet, error)
	Restock(ctx context.Context, id string, grams int64) (*domain.Sweet, error)
}
