package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a unique key collision.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidQuantity is returned when a cart line mass is below the minimum.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrEmptyCart is returned when placement starts with no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrProductVanished is returned when a cart line references a sweet that
	// no longer exists.
	ErrProductVanished = errors.New("product no longer available")
	// ErrInsufficientStock is the sentinel matched by errors.Is against
	// InsufficientStockError.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrNoActiveChallenge is returned when verification runs without an
	// issued, unverified challenge.
	ErrNoActiveChallenge = errors.New("no active challenge")
	// ErrOtpExpired is returned when the challenge is past its expiry.
	ErrOtpExpired = errors.New("otp expired")
	// ErrOtpMismatch is returned when the submitted code does not match.
	ErrOtpMismatch = errors.New("otp mismatch")
	// ErrOtpNotVerified is returned when placement cannot consume a recently
	// verified challenge.
	ErrOtpNotVerified = errors.New("otp not verified")

	// ErrInvalidStatusTransition is returned for disallowed order status moves.
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

// InsufficientStockError names the offending sweet and carries enough detail
// for the caller to self-correct.
type InsufficientStockError struct {
	SweetID        int64
	Name           string
	RequestedGrams int64
	AvailableGrams int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %dg, available %dg", e.Name, e.RequestedGrams, e.AvailableGrams)
}

// Is makes errors.Is(err, ErrInsufficientStock) work for the typed error.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
