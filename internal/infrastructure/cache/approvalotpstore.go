// Package cache holds Redis-backed stores.
package cache

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "servit/internal/shared/errors"
)

const (
	approvalOTPPrefix      = "quotation:approval:"
	approvalOTPRatePrefix  = "quotation:approval:rate:"
	approvalOTPTTL         = 7 * 24 * time.Hour
	approvalOTPDigits      = 6
	approvalOTPMaxAttempts = 5
	approvalOTPLockoutTTL  = 15 * time.Minute
)

// ApprovalOTPStore keeps the one-time approval codes customers quote back
// when approving a quotation. Verify only checks the code; the caller
// consumes it with Consume after the approval has committed, so a failed
// approval does not burn it. Failed attempts are rate limited per quotation.
type ApprovalOTPStore struct {
	client *redis.Client
}

func NewApprovalOTPStore(client *redis.Client) *ApprovalOTPStore {
	return &ApprovalOTPStore{client: client}
}

// Generate issues a fresh 6-digit code for the quotation, replacing any
// earlier one. The code lives as long as the quotation can stay pending.
func (s *ApprovalOTPStore) Generate(ctx context.Context, quotationID string) (string, error) {
	code, err := randomDigits(approvalOTPDigits)
	if err != nil {
		return "", fmt.Errorf("failed to generate approval code: %w", err)
	}

	key := approvalOTPPrefix + quotationID
	if err := s.client.Set(ctx, key, code, approvalOTPTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store approval code: %w", err)
	}

	return code, nil
}

// Verify checks the code for the quotation without consuming it. An expired,
// unknown or mismatched code is an error; after too many failures further
// attempts are locked out for a while.
func (s *ApprovalOTPStore) Verify(ctx context.Context, quotationID, code string) error {
	if code == "" {
		return apperrors.NewValidationError("approval code is required")
	}

	rateKey := approvalOTPRatePrefix + quotationID
	attempts, err := s.client.Get(ctx, rateKey).Int()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("failed to check attempt counter: %w", err)
	}
	if attempts >= approvalOTPMaxAttempts {
		return apperrors.NewConflictError("too many failed approval attempts, try again later")
	}

	key := approvalOTPPrefix + quotationID
	stored, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			s.recordFailedAttempt(ctx, rateKey)
			return apperrors.NewValidationError("approval code not found or expired")
		}
		return fmt.Errorf("failed to read approval code: %w", err)
	}

	if stored != code {
		s.recordFailedAttempt(ctx, rateKey)
		return apperrors.NewValidationError("approval code does not match")
	}

	s.client.Del(ctx, rateKey)
	return nil
}

// Consume discards the code once the approval it guarded has committed.
func (s *ApprovalOTPStore) Consume(ctx context.Context, quotationID string) error {
	if err := s.client.Del(ctx, approvalOTPPrefix+quotationID).Err(); err != nil {
		return fmt.Errorf("failed to discard approval code: %w", err)
	}
	return nil
}

func (s *ApprovalOTPStore) recordFailedAttempt(ctx context.Context, rateKey string) {
	pipe := s.client.Pipeline()
	pipe.Incr(ctx, rateKey)
	pipe.Expire(ctx, rateKey, approvalOTPLockoutTTL)
	_, _ = pipe.Exec(ctx)
}

func randomDigits(n int) (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < n; i++ {
		limit.Mul(limit, big.NewInt(10))
	}
	v, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", n, v), nil
}
