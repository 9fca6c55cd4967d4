package order

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/domain"
	orderrepo "github.com/masoombaba16/Sweet-Shop-Management/internal/repository/order"
)

// validNext maps each status to the transitions an admin may take from it.
// CANCELLED is reachable from every status except DELIVERED; both terminal
// states allow nothing further.
var validNext = map[string][]string{
	domain.StatusPending:        {domain.StatusConfirmed, domain.StatusCancelled},
	domain.StatusConfirmed:      {domain.StatusPreparing, domain.StatusCancelled},
	domain.StatusPreparing:      {domain.StatusReady, domain.StatusCancelled},
	domain.StatusReady:          {domain.StatusOutForDelivery, domain.StatusCancelled},
	domain.StatusOutForDelivery: {domain.StatusDelivered, domain.StatusCancelled},
	domain.StatusDelivered:      {},
	domain.StatusCancelled:      {},
}

type Service struct {
	repo orderrepo.Repository
}

func New(repo orderrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateStatus applies one transition. The repository update is conditional
// on the current status, so a concurrent transition loses cleanly.
func (s *Service) UpdateStatus(ctx context.Context, id primitive.ObjectID, to string) (*domain.Order, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(current.Status, to) {
		return nil, domain.ErrInvalidStatusTransition
	}
	updated, err := s.repo.UpdateStatus(ctx, id, current.Status, to)
	if errors.Is(err, domain.ErrNotFound) {
		// Lost a race with another transition.
		return nil, domain.ErrInvalidStatusTransition
	}
	return updated, err
}

func transitionAllowed(from, to string) bool {
	for _, next := range validNext[from] {
		if next == to {
			return true
		}
	}
	return false
}
