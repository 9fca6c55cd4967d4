package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/domain"
)

// stubSweets keeps stock levels under a mutex so the concurrency test
// exercises the same compare-and-decrement contract the real repository
// provides.
type stubSweets struct {
	mu       sync.Mutex
	stock    map[int64]int64
	names    map[int64]string
	released []int64
	failOn   int64
	failErr  error
}

func newStubSweets(stock map[int64]int64) *stubSweets {
	names := make(map[int64]string, len(stock))
	for id := range stock {
		names[id] = "sweet"
	}
	return &stubSweets{stock: stock, names: names}
}

func (s *stubSweets) Reserve(_ context.Context, sweetID, grams int64) (*domain.Sweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn == sweetID && s.failErr != nil {
		return nil, s.failErr
	}
	available, ok := s.stock[sweetID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if available < grams {
		return nil, &domain.InsufficientStockError{
			SweetID:        sweetID,
			Name:           s.names[sweetID],
			RequestedGrams: grams,
			AvailableGrams: available,
		}
	}
	s.stock[sweetID] = available - grams
	return &domain.Sweet{SweetID: sweetID, Name: s.names[sweetID], StockGrams: s.stock[sweetID]}, nil
}

func (s *stubSweets) Release(_ context.Context, sweetID, grams int64) (*domain.Sweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock[sweetID] += grams
	s.released = append(s.released, sweetID)
	return &domain.Sweet{SweetID: sweetID, StockGrams: s.stock[sweetID]}, nil
}

type stubCarts struct {
	mu      sync.Mutex
	cart    *domain.Cart
	getErr  error
	cleared int
}

func (s *stubCarts) GetByUser(_ context.Context, _ primitive.ObjectID) (*domain.Cart, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.cart, nil
}

func (s *stubCarts) Clear(_ context.Context, _ primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleared++
	return nil
}

type stubUsers struct {
	mu        sync.Mutex
	user      *domain.User
	appendErr error
	appended  []domain.OrderSnapshot
}

func (s *stubUsers) GetByID(_ context.Context, _ primitive.ObjectID) (*domain.User, error) {
	return s.user, nil
}

func (s *stubUsers) AppendOrder(_ context.Context, _ primitive.ObjectID, snap domain.OrderSnapshot) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appended = append(s.appended, snap)
	return nil
}

type stubOrders struct {
	mu       sync.Mutex
	inserted []domain.Order
}

func (s *stubOrders) Insert(_ context.Context, o domain.Order) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserted = append(s.inserted, o)
	return &o, nil
}

type stubCustomers struct{}

func (stubCustomers) UpsertFromOrder(_ context.Context, email, name, address string) (*domain.Customer, error) {
	return &domain.Customer{ID: primitive.NewObjectID(), Email: email, Name: name, Address: address}, nil
}

// stubChallenges mimics single-use consumption: the first Consume wins, every
// later one fails.
type stubChallenges struct {
	mu       sync.Mutex
	verified bool
	err      error
}

func (s *stubChallenges) Consume(_ context.Context, _ primitive.ObjectID, _ string, _ time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.verified {
		return domain.ErrOtpNotVerified
	}
	s.verified = false
	return nil
}

func testCart(userID primitive.ObjectID, lines ...domain.CartLine) *domain.Cart {
	return &domain.Cart{UserID: userID, Items: lines}
}

func line(sweetID, grams, pricePerKg int64) domain.CartLine {
	return domain.CartLine{
		SweetID:         sweetID,
		Name:            "sweet",
		Grams:           grams,
		PricePerKgPaise: pricePerKg,
		TotalPaise:      grams * pricePerKg / 1000,
	}
}

func TestPlaceHappyPath(t *testing.T) {
	userID := primitive.NewObjectID()
	sweets := newStubSweets(map[int64]int64{1: 5000, 2: 2000})
	carts := &stubCarts{cart: testCart(userID, line(1, 1000, 100000), line(2, 500, 40000))}
	users := &stubUsers{user: &domain.User{ID: userID, Name: "Asha", Email: "asha@example.com"}}
	orders := &stubOrders{}
	challenges := &stubChallenges{verified: true}

	var hookStocks []*domain.Sweet
	svc := New(sweets, carts, users, orders, stubCustomers{}, challenges, 10*time.Minute, nil)
	svc.AddHook(func(_ context.Context, _ *domain.User, _ domain.OrderSnapshot, stocks []*domain.Sweet) {
		hookStocks = stocks
	})

	snap, err := svc.Place(context.Background(), userID, PlaceInput{Address: "12 MG Road"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 1000g at 100000/kg + 500g at 40000/kg = 100000 + 20000.
	if snap.SubtotalPaise != 120000 {
		t.Fatalf("expected subtotal 120000, got %d", snap.SubtotalPaise)
	}
	if sweets.stock[1] != 4000 || sweets.stock[2] != 1500 {
		t.Fatalf("stock not decremented: %+v", sweets.stock)
	}
	if carts.cleared != 1 {
		t.Fatalf("expected cart cleared once, got %d", carts.cleared)
	}
	if len(users.appended) != 1 || users.appended[0].OrderID != snap.OrderID {
		t.Fatalf("snapshot not appended to user history: %+v", users.appended)
	}
	if len(orders.inserted) != 1 || orders.inserted[0].Status != domain.StatusPending {
		t.Fatalf("admin order not recorded as pending: %+v", orders.inserted)
	}
	if len(hookStocks) != 2 {
		t.Fatalf("expected hook to see both reservations, got %d", len(hookStocks))
	}
}

func TestPlaceRequiresAddress(t *testing.T) {
	svc := New(newStubSweets(nil), &stubCarts{}, &stubUsers{user: &domain.User{}}, nil, nil, &stubChallenges{verified: true}, time.Minute, nil)
	if _, err := svc.Place(context.Background(), primitive.NewObjectID(), PlaceInput{Address: "   "}); err == nil {
		t.Fatal("expected error for blank address")
	}
}

func TestPlaceWithoutVerifiedOtp(t *testing.T) {
	userID := primitive.NewObjectID()
	carts := &stubCarts{cart: testCart(userID, line(1, 1000, 100000))}
	users := &stubUsers{user: &domain.User{ID: userID}}
	svc := New(newStubSweets(map[int64]int64{1: 5000}), carts, users, nil, nil, &stubChallenges{}, time.Minute, nil)

	_, err := svc.Place(context.Background(), userID, PlaceInput{Address: "12 MG Road"})
	if !errors.Is(err, domain.ErrOtpNotVerified) {
		t.Fatalf("expected otp not verified, got %v", err)
	}
}

func TestPlaceEmptyCart(t *testing.T) {
	userID := primitive.NewObjectID()
	users := &stubUsers{user: &domain.User{ID: userID}}
	for _, carts := range []*stubCarts{
		{getErr: domain.ErrNotFound},
		{cart: testCart(userID)},
	} {
		svc := New(newStubSweets(nil), carts, users, nil, nil, &stubChallenges{verified: true}, time.Minute, nil)
		_, err := svc.Place(context.Background(), userID, PlaceInput{Address: "12 MG Road"})
		if !errors.Is(err, domain.ErrEmptyCart) {
			t.Fatalf("expected empty cart, got %v", err)
		}
	}
}

// A placement doomed by an empty cart must not burn the verified challenge;
// the same challenge still gates a retry once the cart has lines.
func TestPlaceEmptyCartKeepsChallenge(t *testing.T) {
	userID := primitive.NewObjectID()
	users := &stubUsers{user: &domain.User{ID: userID}}
	challenges := &stubChallenges{verified: true}

	svc := New(newStubSweets(nil), &stubCarts{cart: testCart(userID)}, users, nil, nil, challenges, time.Minute, nil)
	if _, err := svc.Place(context.Background(), userID, PlaceInput{Address: "12 MG Road"}); !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected empty cart, got %v", err)
	}
	if !challenges.verified {
		t.Fatal("empty-cart placement consumed the challenge")
	}

	carts := &stubCarts{cart: testCart(userID, line(1, 1000, 100000))}
	svc = New(newStubSweets(map[int64]int64{1: 5000}), carts, users, nil, nil, challenges, time.Minute, nil)
	if _, err := svc.Place(context.Background(), userID, PlaceInput{Address: "12 MG Road"}); err != nil {
		t.Fatalf("retry with filled cart failed: %v", err)
	}
}

func TestPlaceRollsBackOnPartialFailure(t *testing.T) {
	userID := primitive.NewObjectID()
	sweets := newStubSweets(map[int64]int64{1: 5000, 2: 100})
	carts := &stubCarts{cart: testCart(userID, line(1, 1000, 100000), line(2, 500, 40000))}
	users := &stubUsers{user: &domain.User{ID: userID}}
	challenges := &stubChallenges{verified: true}
	svc := New(sweets, carts, users, nil, nil, challenges, time.Minute, nil)

	_, err := svc.Place(context.Background(), userID, PlaceInput{Address: "12 MG Road"})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if sweets.stock[1] != 5000 || sweets.stock[2] != 100 {
		t.Fatalf("stock not restored after rollback: %+v", sweets.stock)
	}
	if len(users.appended) != 0 {
		t.Fatal("order must not be recorded on failure")
	}
	if carts.cleared != 0 {
		t.Fatal("cart must survive a failed placement")
	}
}

func TestPlaceVanishedProduct(t *testing.T) {
	userID := primitive.NewObjectID()
	sweets := newStubSweets(map[int64]int64{1: 5000})
	carts := &stubCarts{cart: testCart(userID, line(1, 1000, 100000), line(99, 500, 40000))}
	users := &stubUsers{user: &domain.User{ID: userID}}
	svc := New(sweets, carts, users, nil, nil, &stubChallenges{verified: true}, time.Minute, nil)

	_, err := svc.Place(context.Background(), userID, PlaceInput{Address: "12 MG Road"})
	if !errors.Is(err, domain.ErrProductVanished) {
		t.Fatalf("expected vanished product, got %v", err)
	}
	if sweets.stock[1] != 5000 {
		t.Fatalf("first reservation not released, stock=%d", sweets.stock[1])
	}
}

func TestPlaceRollsBackWhenHistoryAppendFails(t *testing.T) {
	userID := primitive.NewObjectID()
	sweets := newStubSweets(map[int64]int64{1: 5000})
	carts := &stubCarts{cart: testCart(userID, line(1, 1000, 100000))}
	users := &stubUsers{user: &domain.User{ID: userID}, appendErr: errors.New("write failed")}
	svc := New(sweets, carts, users, nil, nil, &stubChallenges{verified: true}, time.Minute, nil)

	if _, err := svc.Place(context.Background(), userID, PlaceInput{Address: "12 MG Road"}); err == nil {
		t.Fatal("expected error from history append")
	}
	if sweets.stock[1] != 5000 {
		t.Fatalf("reservation not released, stock=%d", sweets.stock[1])
	}
}

// Two buyers race for 1000g with 800g each. Exactly one placement must win
// and the loser's attempt must leave stock untouched.
func TestPlaceConcurrentReservations(t *testing.T) {
	sweets := newStubSweets(map[int64]int64{1: 1000})

	userA := primitive.NewObjectID()
	userB := primitive.NewObjectID()

	place := func(userID primitive.ObjectID) error {
		carts := &stubCarts{cart: testCart(userID, line(1, 800, 100000))}
		users := &stubUsers{user: &domain.User{ID: userID}}
		svc := New(sweets, carts, users, nil, nil, &stubChallenges{verified: true}, time.Minute, nil)
		_, err := svc.Place(context.Background(), userID, PlaceInput{Address: "12 MG Road"})
		return err
	}

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, id := range []primitive.ObjectID{userA, userB} {
		wg.Add(1)
		go func(userID primitive.ObjectID) {
			defer wg.Done()
			errs <- place(userID)
		}(id)
	}
	wg.Wait()
	close(errs)

	var won, lost int
	for err := range errs {
		if err == nil {
			won++
		} else if errors.Is(err, domain.ErrInsufficientStock) {
			lost++
		} else {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if won != 1 || lost != 1 {
		t.Fatalf("expected exactly one winner, got won=%d lost=%d", won, lost)
	}
	if sweets.stock[1] != 200 {
		t.Fatalf("expected 200g remaining, got %d", sweets.stock[1])
	}
}
