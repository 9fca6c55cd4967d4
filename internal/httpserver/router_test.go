package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/domain"
	"github.com/masoombaba16/Sweet-Shop-Management/internal/notify"
	"github.com/masoombaba16/Sweet-Shop-Management/internal/realtime"
	authsvc "github.com/masoombaba16/Sweet-Shop-Management/internal/service/auth"
	cartsvc "github.com/masoombaba16/Sweet-Shop-Management/internal/service/cart"
)

type stubUsers struct {
	user *domain.User
}

func (s *stubUsers) Create(_ context.Context, u domain.User) (*domain.User, error) {
	u.ID = primitive.NewObjectID()
	return &u, nil
}

func (s *stubUsers) GetByID(_ context.Context, _ primitive.ObjectID) (*domain.User, error) {
	return s.user, nil
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, domain.ErrNotFound
	}
	return s.user, nil
}

func (s *stubUsers) UpdatePassword(_ context.Context, _ primitive.ObjectID, _ string) error {
	return nil
}

func (s *stubUsers) AppendOrder(_ context.Context, _ primitive.ObjectID, _ domain.OrderSnapshot) error {
	return nil
}

func (s *stubUsers) Orders(_ context.Context, _ primitive.ObjectID) ([]domain.OrderSnapshot, error) {
	return s.user.Orders, nil
}

type stubCarts struct {
	cart *domain.Cart
}

func (s *stubCarts) GetByUser(_ context.Context, _ primitive.ObjectID) (*domain.Cart, error) {
	if s.cart == nil {
		return nil, domain.ErrNotFound
	}
	return s.cart, nil
}

func (s *stubCarts) UpsertLine(_ context.Context, userID primitive.ObjectID, line domain.CartLine) (*domain.Cart, error) {
	return &domain.Cart{UserID: userID, Items: []domain.CartLine{line}}, nil
}

func (s *stubCarts) RemoveLine(_ context.Context, userID primitive.ObjectID, _ int64) (*domain.Cart, error) {
	return &domain.Cart{UserID: userID, Items: []domain.CartLine{}}, nil
}

func (s *stubCarts) Clear(_ context.Context, _ primitive.ObjectID) error { return nil }

type stubSweets struct {
	sweet *domain.Sweet
}

func (s *stubSweets) GetBySweetID(_ context.Context, _ int64) (*domain.Sweet, error) {
	if s.sweet == nil {
		return nil, domain.ErrNotFound
	}
	return s.sweet, nil
}

func testUser(role string) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	return &domain.User{
		ID:           primitive.NewObjectID(),
		Name:         "Asha",
		Email:        "asha@example.com",
		PasswordHash: string(hash),
		Role:         role,
	}
}

func testRouter(t *testing.T, user *domain.User) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := log.New(io.Discard, "", 0)
	users := &stubUsers{user: user}
	auth := authsvc.New(users, nil, notify.Discard{}, "test-secret", time.Hour, logger)
	cart := cartsvc.New(&stubCarts{}, &stubSweets{})

	router := buildRouter(logger, nil, Deps{
		Auth: auth,
		Cart: cart,
		Hub:  realtime.NewHub(logger),
	}, "*")

	token := ""
	if user != nil {
		var err error
		_, token, err = auth.Login(context.Background(), user.Email, "supersecret")
		if err != nil {
			t.Fatalf("login: %v", err)
		}
	}
	return router, token
}

func TestHealthz(t *testing.T) {
	router, _ := testRouter(t, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthRequired_MissingToken(t *testing.T) {
	router, _ := testRouter(t, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRequired_GarbageToken(t *testing.T) {
	router, _ := testRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRequired_ValidToken(t *testing.T) {
	router, token := testRouter(t, testUser(domain.RoleUser))
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Cart domain.Cart `json:"cart"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", body.Cart)
	}
}

func TestAdminRequired_RejectsUserRole(t *testing.T) {
	router, token := testRouter(t, testUser(domain.RoleUser))
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	router, _ := testRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Header().Get(headerRequestID) == "" {
		t.Fatal("expected generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(headerRequestID, "req-42")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get(headerRequestID); got != "req-42" {
		t.Fatalf("expected caller id to survive, got %q", got)
	}
}
