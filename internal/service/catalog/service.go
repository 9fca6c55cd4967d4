package catalog

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/domain"
	"github.com/masoombaba16/Sweet-Shop-Management/internal/realtime"
	sweetrepo "github.com/masoombaba16/Sweet-Shop-Management/internal/repository/sweet"
)

// DefaultLowStockThresholdGrams is applied when an admin does not set one.
const DefaultLowStockThresholdGrams = 5000

type Service struct {
	repo   sweetrepo.Repository
	hub    *realtime.Hub
	logger *log.Logger
}

func New(repo sweetrepo.Repository, hub *realtime.Hub, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, hub: hub, logger: logger}
}

// CreateInput carries the fields of a new sweet. SweetID is assigned by the
// service, never by the caller.
type CreateInput struct {
	Name                   string
	Category               string
	Description            string
	PricePerKgPaise        int64
	CostPerKgPaise         int64
	StockGrams             int64
	LowStockThresholdGrams int64
	Tags                   []string
	ImageID                string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Sweet, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.New("name required")
	}
	if in.PricePerKgPaise <= 0 {
		return nil, errors.New("price must be positive")
	}
	if in.StockGrams < 0 {
		return nil, errors.New("stock must not be negative")
	}
	category := in.Category
	if category == "" {
		category = "general"
	}
	threshold := in.LowStockThresholdGrams
	if threshold <= 0 {
		threshold = DefaultLowStockThresholdGrams
	}

	sweetID, err := s.repo.NextSweetID(ctx)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Insert(ctx, domain.Sweet{
		SweetID:                sweetID,
		Name:                   name,
		Category:               category,
		Description:            in.Description,
		PricePerKgPaise:        in.PricePerKgPaise,
		CostPerKgPaise:         in.CostPerKgPaise,
		StockGrams:             in.StockGrams,
		LowStockThresholdGrams: threshold,
		Visible:                true,
		Tags:                   in.Tags,
		ImageID:                in.ImageID,
	})
	if err != nil {
		return nil, err
	}
	s.publish(realtime.EventSweetCreated, created)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, in sweetrepo.UpdateInput) (*domain.Sweet, error) {
	updated, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.publish(realtime.EventSweetUpdated, updated)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.publish(realtime.EventSweetDeleted, map[string]any{"sweetId": deleted.SweetID})
	return nil
}

func (s *Service) ToggleVisible(ctx context.Context, id string) (*domain.Sweet, error) {
	updated, err := s.repo.ToggleVisible(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(realtime.EventSweetUpdated, updated)
	return updated, nil
}

// Restock adds stock. The increment happens in the repository's atomic
// primitive, not here.
func (s *Service) Restock(ctx context.Context, id string, grams int64) (*domain.Sweet, error) {
	if grams <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	updated, err := s.repo.Restock(ctx, id, grams)
	if err != nil {
		return nil, err
	}
	if s.hub != nil {
		realtime.PublishStock(s.hub, updated)
	}
	return updated, nil
}

func (s *Service) List(ctx context.Context, f sweetrepo.ListFilter) ([]domain.Sweet, error) {
	return s.repo.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Sweet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetBySweetID(ctx context.Context, sweetID int64) (*domain.Sweet, error) {
	return s.repo.GetBySweetID(ctx, sweetID)
}

// Quantity returns the live stock level for one sweet.
func (s *Service) Quantity(ctx context.Context, id string) (int64, error) {
	sweet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return sweet.StockGrams, nil
}

func (s *Service) publish(name string, payload any) {
	if s.hub != nil {
		s.hub.Publish(name, payload)
	}
}
