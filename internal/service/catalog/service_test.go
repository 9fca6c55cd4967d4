package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/domain"
	"github.com/masoombaba16/Sweet-Shop-Management/internal/realtime"
	sweetrepo "github.com/masoombaba16/Sweet-Shop-Management/internal/repository/sweet"
)

type stubRepo struct {
	nextID    int64
	inserted  *domain.Sweet
	insertErr error
	restocked *domain.Sweet
}

func (s *stubRepo) List(_ context.Context, _ sweetrepo.ListFilter) ([]domain.Sweet, error) {
	return nil, nil
}

func (s *stubRepo) GetByID(_ context.Context, _ string) (*domain.Sweet, error) {
	return nil, domain.ErrNotFound
}

func (s *stubRepo) GetBySweetID(_ context.Context, _ int64) (*domain.Sweet, error) {
	return nil, domain.ErrNotFound
}

func (s *stubRepo) NextSweetID(_ context.Context) (int64, error) {
	s.nextID++
	return s.nextID, nil
}

func (s *stubRepo) Insert(_ context.Context, sw domain.Sweet) (*domain.Sweet, error) {
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	s.inserted = &sw
	return &sw, nil
}

func (s *stubRepo) Update(_ context.Context, _ string, _ sweetrepo.UpdateInput) (*domain.Sweet, error) {
	return nil, domain.ErrNotFound
}

func (s *stubRepo) Delete(_ context.Context, _ string) (*domain.Sweet, error) {
	return nil, domain.ErrNotFound
}

func (s *stubRepo) ToggleVisible(_ context.Context, _ string) (*domain.Sweet, error) {
	return nil, domain.ErrNotFound
}

func (s *stubRepo) Reserve(_ context.Context, _, _ int64) (*domain.Sweet, error) {
	return nil, domain.ErrNotFound
}

func (s *stubRepo) Release(_ context.Context, _, _ int64) (*domain.Sweet, error) {
	return nil, domain.ErrNotFound
}

func (s *stubRepo) Restock(_ context.Context, _ string, grams int64) (*domain.Sweet, error) {
	if s.restocked == nil {
		return nil, domain.ErrNotFound
	}
	s.restocked.StockGrams += grams
	return s.restocked, nil
}

func TestCreateAssignsDefaultsAndSequentialID(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, nil, nil)

	first, err := svc.Create(context.Background(), CreateInput{Name: "Kaju Katli", PricePerKgPaise: 120000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Create(context.Background(), CreateInput{Name: "Rasgulla", PricePerKgPaise: 45000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.SweetID != 1 || second.SweetID != 2 {
		t.Fatalf("ids not sequential: %d, %d", first.SweetID, second.SweetID)
	}
	if first.Category != "general" {
		t.Fatalf("expected default category, got %q", first.Category)
	}
	if first.LowStockThresholdGrams != DefaultLowStockThresholdGrams {
		t.Fatalf("expected default threshold, got %d", first.LowStockThresholdGrams)
	}
	if !first.Visible {
		t.Fatal("new sweets must start visible")
	}
}

func TestCreateValidation(t *testing.T) {
	svc := New(&stubRepo{}, nil, nil)

	if _, err := svc.Create(context.Background(), CreateInput{Name: "  ", PricePerKgPaise: 100}); err == nil {
		t.Fatal("expected name error")
	}
	if _, err := svc.Create(context.Background(), CreateInput{Name: "X", PricePerKgPaise: 0}); err == nil {
		t.Fatal("expected price error")
	}
	if _, err := svc.Create(context.Background(), CreateInput{Name: "X", PricePerKgPaise: 100, StockGrams: -1}); err == nil {
		t.Fatal("expected stock error")
	}
}

func TestCreatePublishesEvent(t *testing.T) {
	hub := realtime.NewHub(nil)
	events, cancel := hub.Subscribe()
	defer cancel()

	svc := New(&stubRepo{}, hub, nil)
	if _, err := svc.Create(context.Background(), CreateInput{Name: "Kaju Katli", PricePerKgPaise: 120000}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case ev := <-events:
		if ev.Name != realtime.EventSweetCreated {
			t.Fatalf("expected %s, got %s", realtime.EventSweetCreated, ev.Name)
		}
	default:
		t.Fatal("no event published")
	}
}

func TestRestockRejectsNonPositive(t *testing.T) {
	svc := New(&stubRepo{}, nil, nil)
	for _, grams := range []int64{0, -100} {
		if _, err := svc.Restock(context.Background(), "id", grams); !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Fatalf("expected invalid quantity for %d, got %v", grams, err)
		}
	}
}

func TestRestockPublishesStockEvents(t *testing.T) {
	hub := realtime.NewHub(nil)
	events, cancel := hub.Subscribe()
	defer cancel()

	repo := &stubRepo{restocked: &domain.Sweet{SweetID: 3, Name: "Kalakand", StockGrams: 1000, LowStockThresholdGrams: 5000}}
	svc := New(repo, hub, nil)

	if _, err := svc.Restock(context.Background(), "id", 2000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 3000g is still under the 5000g threshold: stock_changed then low_stock.
	first := <-events
	if first.Name != realtime.EventStockChanged {
		t.Fatalf("expected stock_changed first, got %s", first.Name)
	}
	select {
	case second := <-events:
		if second.Name != realtime.EventLowStock {
			t.Fatalf("expected low_stock, got %s", second.Name)
		}
	default:
		t.Fatal("low_stock not published")
	}
}
