package customer

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/domain"
	custrepo "github.com/masoombaba16/Sweet-Shop-Management/internal/repository/customer"
)

type Service struct {
	repo custrepo.Repository
}

func New(repo custrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, query string) ([]domain.Customer, error) {
	return s.repo.List(ctx, query)
}

func (s *Service) Update(ctx context.Context, id primitive.ObjectID, in custrepo.UpdateInput) (*domain.Customer, error) {
	return s.repo.Update(ctx, id, in)
}

func (s *Service) Deactivate(ctx context.Context, id primitive.ObjectID) (*domain.Customer, error) {
	return s.repo.SetActive(ctx, id, false)
}

func (s *Service) Ban(ctx context.Context, id primitive.ObjectID) (*domain.Customer, error) {
	return s.repo.SetBanned(ctx, id, true)
}
