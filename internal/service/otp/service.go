package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log"
	"math/big"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/domain"
	"github.com/masoombaba16/Sweet-Shop-Management/internal/notify"
	otprepo "github.com/masoombaba16/Sweet-Shop-Management/internal/repository/otp"
)

type userRepo interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// Service issues and verifies one-time codes. A challenge is bound to one
// user and one purpose, holds only a bcrypt hash of the code, and is good for
// a single verification.
type Service struct {
	repo     otprepo.Repository
	users    userRepo
	mailer   notify.Sender
	logger   *log.Logger
	orderTTL time.Duration
	resetTTL time.Duration
}

func New(repo otprepo.Repository, users userRepo, mailer notify.Sender, orderTTL, resetTTL time.Duration, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		repo:     repo,
		users:    users,
		mailer:   mailer,
		logger:   logger,
		orderTTL: orderTTL,
		resetTTL: resetTTL,
	}
}

// Issue creates a fresh challenge, replacing any unconsumed one for the same
// purpose, and mails the plaintext code to the user.
func (s *Service) Issue(ctx context.Context, userID primitive.ObjectID, purpose string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	ttl := s.ttl(purpose)
	now := time.Now().UTC()
	if err := s.repo.Upsert(ctx, domain.OtpChallenge{
		UserID:    userID,
		Purpose:   purpose,
		CodeHash:  string(hash),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}); err != nil {
		return err
	}

	subject := "Sweet Shop - Order OTP"
	if purpose == domain.PurposePasswordReset {
		subject = "Sweet Shop - Password Reset OTP"
	}
	if err := s.mailer.Send(user.Email, subject, notify.OtpBody(code, int(ttl.Minutes()))); err != nil {
		return fmt.Errorf("send otp mail: %w", err)
	}
	s.logger.Printf("otp: issued purpose=%s user=%s", purpose, userID.Hex())
	return nil
}

// Verify checks the submitted code against the active challenge and marks it
// verified. The bcrypt comparison is constant time.
func (s *Service) Verify(ctx context.Context, userID primitive.ObjectID, purpose, code string) error {
	ch, err := s.check(ctx, userID, purpose, code)
	if err != nil {
		return err
	}
	if err := s.repo.MarkVerified(ctx, ch.ID, time.Now().UTC()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNoActiveChallenge
		}
		return err
	}
	return nil
}

// VerifyAndConsume validates the code and destroys the challenge in the same
// call. Used by flows that act immediately, such as password reset.
func (s *Service) VerifyAndConsume(ctx context.Context, userID primitive.ObjectID, purpose, code string) error {
	ch, err := s.check(ctx, userID, purpose, code)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, ch.ID)
}

// Consume claims a challenge verified within the given window, removing it so
// it cannot gate a second placement.
func (s *Service) Consume(ctx context.Context, userID primitive.ObjectID, purpose string, window time.Duration) error {
	_, err := s.repo.ConsumeVerified(ctx, userID, purpose, time.Now().UTC().Add(-window))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrOtpNotVerified
		}
		return err
	}
	return nil
}

func (s *Service) check(ctx context.Context, userID primitive.ObjectID, purpose, code string) (*domain.OtpChallenge, error) {
	ch, err := s.repo.GetActive(ctx, userID, purpose)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNoActiveChallenge
		}
		return nil, err
	}
	if ch.Expired(time.Now().UTC()) {
		_ = s.repo.Delete(ctx, ch.ID)
		return nil, domain.ErrOtpExpired
	}
	if bcrypt.CompareHashAndPassword([]byte(ch.CodeHash), []byte(code)) != nil {
		return nil, domain.ErrOtpMismatch
	}
	return ch, nil
}

func (s *Service) ttl(purpose string) time.Duration {
	if purpose == domain.PurposePasswordReset {
		return s.resetTTL
	}
	return s.orderTTL
}

// generateCode returns a 6-digit code from crypto/rand.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
