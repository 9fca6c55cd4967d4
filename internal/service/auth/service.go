package auth

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/domain"
	"github.com/masoombaba16/Sweet-Shop-Management/internal/notify"
	userrepo "github.com/masoombaba16/Sweet-Shop-Management/internal/repository/user"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the JWT payload issued at login.
type Claims struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.StandardClaims
}

type otpService interface {
	Issue(ctx context.Context, userID primitive.ObjectID, purpose string) error
	VerifyAndConsume(ctx context.Context, userID primitive.ObjectID, purpose, code string) error
}

// Service handles registration, login and the forgot-password flow.
type Service struct {
	users       userrepo.Repository
	otps        otpService
	mailer      notify.Sender
	secret      []byte
	tokenTTL    time.Duration
	passwordMin int
	logger      *log.Logger
}

func New(users userrepo.Repository, otps otpService, mailer notify.Sender, secret string, tokenTTL time.Duration, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		users:       users,
		otps:        otps,
		mailer:      mailer,
		secret:      []byte(secret),
		tokenTTL:    tokenTTL,
		passwordMin: 8,
		logger:      logger,
	}
}

// Register creates a user account and sends a welcome mail. The mail is best
// effort; registration succeeds without it.
func (s *Service) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" || email == "" {
		return nil, errors.New("name and email required")
	}
	if len(password) < s.passwordMin {
		return nil, errors.New("password too short")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Create(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         domain.RoleUser,
	})
	if err != nil {
		return nil, err
	}
	if err := s.mailer.Send(email, "Welcome to Sweet Shop", notify.WelcomeBody(name)); err != nil {
		s.logger.Printf("auth: welcome mail email=%s error=%v", email, err)
	}
	return user, nil
}

// Login validates credentials and returns a signed token plus the user.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	claims := Claims{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(s.tokenTTL).Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ParseToken validates a bearer token and returns its claims.
func (s *Service) ParseToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ForgotPassword issues a reset challenge for the account, if it exists.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return err
	}
	return s.otps.Issue(ctx, user.ID, domain.PurposePasswordReset)
}

// ResetPassword consumes a valid reset challenge and stores the new hash.
func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if len(newPassword) < s.passwordMin {
		return errors.New("password too short")
	}
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return err
	}
	if err := s.otps.VerifyAndConsume(ctx, user.ID, domain.PurposePasswordReset, code); err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, string(hashed))
}

// Orders returns the user's own order history.
func (s *Service) Orders(ctx context.Context, userID primitive.ObjectID) ([]domain.OrderSnapshot, error) {
	return s.users.Orders(ctx, userID)
}
