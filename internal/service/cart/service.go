package cart

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/domain"
	cartrepo "github.com/masoombaba16/Sweet-Shop-Management/internal/repository/cart"
)

type sweetRepo interface {
	GetBySweetID(ctx context.Context, sweetID int64) (*domain.Sweet, error)
}

type Service struct {
	repo   cartrepo.Repository
	sweets sweetRepo
}

func New(repo cartrepo.Repository, sweets sweetRepo) *Service {
	return &Service{repo: repo, sweets: sweets}
}

// AddOrUpdate sets the absolute mass for one sweet in the user's cart. The
// call is idempotent: repeating it leaves the same line, it never adds up.
// The stock check here is advisory; placement re-checks atomically.
func (s *Service) AddOrUpdate(ctx context.Context, userID primitive.ObjectID, sweetID, grams int64) (*domain.Cart, error) {
	if grams < domain.MinCartGrams {
		return nil, domain.ErrInvalidQuantity
	}
	sweet, err := s.sweets.GetBySweetID(ctx, sweetID)
	if err != nil {
		return nil, err
	}
	if !sweet.Visible {
		return nil, domain.ErrNotFound
	}
	if grams > sweet.StockGrams {
		return nil, &domain.InsufficientStockError{
			SweetID:        sweet.SweetID,
			Name:           sweet.Name,
			RequestedGrams: grams,
			AvailableGrams: sweet.StockGrams,
		}
	}

	return s.repo.UpsertLine(ctx, userID, domain.CartLine{
		SweetID:         sweet.SweetID,
		Name:            sweet.Name,
		Grams:           grams,
		PricePerKgPaise: sweet.PricePerKgPaise,
		TotalPaise:      sweet.LineTotalPaise(grams),
	})
}

// Remove drops the line for the given sweet. Removing a line that does not
// exist is not an error.
func (s *Service) Remove(ctx context.Context, userID primitive.ObjectID, sweetID int64) (*domain.Cart, error) {
	return s.repo.RemoveLine(ctx, userID, sweetID)
}

// Get returns the user's cart, or an empty one if none was created yet.
func (s *Service) Get(ctx context.Context, userID primitive.ObjectID) (*domain.Cart, error) {
	cart, err := s.repo.GetByUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.Cart{UserID: userID, Items: []domain.CartLine{}}, nil
	}
	return cart, err
}
