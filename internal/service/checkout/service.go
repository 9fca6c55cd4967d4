package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/domain"
	"github.com/masoombaba16/Sweet-Shop-Management/internal/notify"
	"github.com/masoombaba16/Sweet-Shop-Management/internal/realtime"
)

type sweetRepo interface {
	Reserve(ctx context.Context, sweetID, grams int64) (*domain.Sweet, error)
	Release(ctx context.Context, sweetID, grams int64) (*domain.Sweet, error)
}

type cartRepo interface {
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Cart, error)
	Clear(ctx context.Context, userID primitive.ObjectID) error
}

type userRepo interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	AppendOrder(ctx context.Context, id primitive.ObjectID, snap domain.OrderSnapshot) error
}

type orderRepo interface {
	Insert(ctx context.Context, o domain.Order) (*domain.Order, error)
}

type customerRepo interface {
	UpsertFromOrder(ctx context.Context, email, name, address string) (*domain.Customer, error)
}

type challengeConsumer interface {
	Consume(ctx context.Context, userID primitive.ObjectID, purpose string, window time.Duration) error
}

// Hook runs after a placement has fully committed. Hook failures are the
// hook's own problem; they never unwind the order.
type Hook func(ctx context.Context, user *domain.User, snap domain.OrderSnapshot, stocks []*domain.Sweet)

// Service drives the cart-to-order transition: consume a verified OTP
// challenge, reserve stock line by line, snapshot the order, clear the cart.
// Reservation is all-or-nothing; a partial failure releases everything
// reserved so far before the error is returned.
type Service struct {
	sweets        sweetRepo
	carts         cartRepo
	users         userRepo
	orders        orderRepo
	customers     customerRepo
	challenges    challengeConsumer
	logger        *log.Logger
	consumeWindow time.Duration
	hooks         []Hook
}

func New(sweets sweetRepo, carts cartRepo, users userRepo, orders orderRepo, customers customerRepo, challenges challengeConsumer, consumeWindow time.Duration, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		sweets:        sweets,
		carts:         carts,
		users:         users,
		orders:        orders,
		customers:     customers,
		challenges:    challenges,
		logger:        logger,
		consumeWindow: consumeWindow,
	}
}

// AddHook registers a post-commit hook.
func (s *Service) AddHook(h Hook) {
	s.hooks = append(s.hooks, h)
}

// PlaceInput is the confirmation payload submitted after OTP verification.
type PlaceInput struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

type reservation struct {
	line  domain.CartLine
	sweet *domain.Sweet
}

// Place runs the order placement workflow for one user.
func (s *Service) Place(ctx context.Context, userID primitive.ObjectID, in PlaceInput) (*domain.OrderSnapshot, error) {
	address := strings.TrimSpace(in.Address)
	if address == "" {
		return nil, errors.New("address required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEmptyCart
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	// The challenge must have been verified within the current checkout
	// attempt, not at some point in the past. Consuming it here also makes
	// it useless for a second placement. The empty-cart check runs first so
	// a doomed placement does not burn the challenge.
	if err := s.challenges.Consume(ctx, userID, domain.PurposeOrderConfirm, s.consumeWindow); err != nil {
		return nil, err
	}

	reserved, err := s.reserveAll(ctx, cart.Items)
	if err != nil {
		return nil, err
	}

	var subtotal int64
	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, domain.OrderItem{
			SweetID:         line.SweetID,
			Name:            line.Name,
			Grams:           line.Grams,
			PricePerKgPaise: line.PricePerKgPaise,
			TotalPaise:      line.TotalPaise,
		})
		subtotal += line.TotalPaise
	}

	snap := domain.OrderSnapshot{
		OrderID:       fmt.Sprintf("ORD-%d", time.Now().UnixMilli()),
		Address:       address,
		Items:         items,
		SubtotalPaise: subtotal,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.users.AppendOrder(ctx, userID, snap); err != nil {
		s.rollback(ctx, reserved)
		return nil, err
	}

	// Committed. Everything below is cleanup and side effects; failures are
	// logged, never propagated, and never undo the order.
	if err := s.carts.Clear(ctx, userID); err != nil {
		s.logger.Printf("checkout: clear cart user=%s error=%v", userID.Hex(), err)
	}
	s.recordAdminOrder(ctx, user, snap, in.Name)

	stocks := make([]*domain.Sweet, 0, len(reserved))
	for _, r := range reserved {
		stocks = append(stocks, r.sweet)
	}
	for _, h := range s.hooks {
		h(ctx, user, snap, stocks)
	}

	s.logger.Printf("checkout: placed orderId=%s user=%s lines=%d subtotal=%d", snap.OrderID, userID.Hex(), len(items), subtotal)
	return &snap, nil
}

// reserveAll decrements stock for every line, or for none of them.
func (s *Service) reserveAll(ctx context.Context, lines []domain.CartLine) ([]reservation, error) {
	var reserved []reservation
	for _, line := range lines {
		sweet, err := s.sweets.Reserve(ctx, line.SweetID, line.Grams)
		if err != nil {
			s.rollback(ctx, reserved)
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%s: %w", line.Name, domain.ErrProductVanished)
			}
			return nil, err
		}
		reserved = append(reserved, reservation{line: line, sweet: sweet})
	}
	return reserved, nil
}

// rollback releases reservations in reverse order. A release that fails is
// logged loudly; there is nothing further to do inline.
func (s *Service) rollback(ctx context.Context, reserved []reservation) {
	for i := len(reserved) - 1; i >= 0; i-- {
		r := reserved[i]
		if _, err := s.sweets.Release(ctx, r.line.SweetID, r.line.Grams); err != nil {
			s.logger.Printf("checkout: CRITICAL release sweetId=%d grams=%d failed: %v", r.line.SweetID, r.line.Grams, err)
		}
	}
}

// recordAdminOrder mirrors the placement into the admin-tracked orders
// collection. Best effort; the user's history is the canonical record.
func (s *Service) recordAdminOrder(ctx context.Context, user *domain.User, snap domain.OrderSnapshot, name string) {
	if s.orders == nil || s.customers == nil {
		return
	}
	if name == "" {
		name = user.Name
	}
	cust, err := s.customers.UpsertFromOrder(ctx, user.Email, name, snap.Address)
	if err != nil {
		s.logger.Printf("checkout: upsert customer email=%s error=%v", user.Email, err)
		return
	}
	if _, err := s.orders.Insert(ctx, domain.Order{
		OrderID:       snap.OrderID,
		CustomerID:    cust.ID,
		Address:       snap.Address,
		Items:         snap.Items,
		SubtotalPaise: snap.SubtotalPaise,
		Status:        domain.StatusPending,
		CreatedAt:     snap.CreatedAt,
	}); err != nil {
		s.logger.Printf("checkout: insert admin order orderId=%s error=%v", snap.OrderID, err)
	}
}

// MailHook sends the confirmation mail after placement.
func MailHook(mailer notify.Sender, logger *log.Logger) Hook {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return func(_ context.Context, user *domain.User, snap domain.OrderSnapshot, _ []*domain.Sweet) {
		if err := mailer.Send(user.Email, "Sweet Shop - Order Confirmed", notify.OrderConfirmedBody(user.Name, snap)); err != nil {
			logger.Printf("checkout: confirmation mail orderId=%s error=%v", snap.OrderID, err)
		}
	}
}

// StockEventsHook pushes stock updates for every reserved sweet.
func StockEventsHook(hub *realtime.Hub) Hook {
	return func(_ context.Context, _ *domain.User, _ domain.OrderSnapshot, stocks []*domain.Sweet) {
		for _, sw := range stocks {
			realtime.PublishStock(hub, sw)
		}
	}
}
