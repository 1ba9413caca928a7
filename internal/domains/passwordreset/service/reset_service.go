package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"futsal-backend/internal/config"
	"futsal-backend/internal/domains/passwordreset"
	"futsal-backend/internal/domains/user"
	"futsal-backend/internal/infrastructure/email"
	"futsal-backend/pkg/cache"
	"futsal-backend/pkg/logger"
)

const bcryptCost = 12

// rateLimitKeyPrefix namespaces the per-email counters in Redis.
const rateLimitKeyPrefix = "password_reset:rate:"

// Service handles the forgot-password flow: request, validate, reset.
type Service interface {
	// Request sends a reset link if the email belongs to an active
	// account. It never discloses whether the email exists.
	Request(ctx context.Context, req passwordreset.RequestResetRequest) error

	// Validate checks a token without consuming it. Safe to call
	// repeatedly; the reset form uses it on page load.
	Validate(ctx context.Context, req passwordreset.ValidateTokenRequest) (*passwordreset.ValidateTokenResponse, error)

	// Reset consumes the token and sets the new password.
	Reset(ctx context.Context, req passwordreset.ResetPasswordRequest) error
}

type resetService struct {
	repo     passwordreset.Repository
	userRepo user.Repository
	cache    cache.Cache
	mailer   email.EmailService
	cfg      config.PasswordResetConfig

	frontendURL string

	// now is injectable for tests exercising expiry boundaries.
	now func() time.Time
}

func NewResetService(
	repo passwordreset.Repository,
	userRepo user.Repository,
	c cache.Cache,
	mailer email.EmailService,
	cfg config.PasswordResetConfig,
	frontendURL string,
) Service {
	return &resetService{
		repo:        repo,
		userRepo:    userRepo,
		cache:       c,
		mailer:      mailer,
		cfg:         cfg,
		frontendURL: frontendURL,
		now:         time.Now,
	}
}

// =====================================================
// REQUEST
// =====================================================

func (s *resetService) Request(ctx context.Context, req passwordreset.RequestResetRequest) error {
	// 1. Validate input
	if err := req.Validate(); err != nil {
		return err
	}

	// 2. Rate limit per email. Runs before the user lookup so the
	// limiter cannot be used to probe which emails exist.
	if err := s.checkRateLimit(ctx, req.Email); err != nil {
		return err
	}

	// 3. Look up the account. Unknown emails get the same success
	// response as known ones.
	u, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			logger.Debug("Reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("find user: %w", err)
	}
	if !u.IsActive {
		return passwordreset.ErrAccountInactive
	}

	// 4. Issue the token
	token, err := generateSecureToken(32)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	now := s.now()
	t := &passwordreset.Token{
		Token:     token,
		UserID:    u.ID,
		Email:     u.Email,
		Used:      false,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.TokenTTL),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return err
	}

	// 5. Deliver the link
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)
	err = s.mailer.SendResetPasswordEmail(ctx, email.ResetPasswordData{
		Email:     u.Email,
		UserName:  u.Name,
		ResetLink: resetLink,
		ExpiresIn: formatTTL(s.cfg.TokenTTL),
	})
	if err != nil {
		logger.Error("reset email delivery failed", err)
		return passwordreset.ErrDeliveryFailed
	}

	logger.Info("Password reset email sent", map[string]interface{}{
		"user_id": u.ID.String(),
	})
	return nil
}

func (s *resetService) checkRateLimit(ctx context.Context, emailAddr string) error {
	key := rateLimitKeyPrefix + emailAddr

	count, err := s.cache.Increment(ctx, key)
	if err != nil {
		// Redis being down should not take password resets with it.
		logger.Warn("Rate limit check failed, allowing request", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	if count == 1 {
		if err := s.cache.Expire(ctx, key, s.cfg.RateLimitWindow); err != nil {
			logger.Warn("Failed to set rate limit expiry", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	if count > int64(s.cfg.RateLimitMax) {
		return passwordreset.ErrTooManyRequests
	}
	return nil
}

// =====================================================
// VALIDATE
// =====================================================

func (s *resetService) Validate(ctx context.Context, req passwordreset.ValidateTokenRequest) (*passwordreset.ValidateTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t, err := s.lookupUsable(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	u, err := s.userRepo.FindByID(ctx, t.UserID)
	if err != nil {
		return nil, fmt.Errorf("find token owner: %w", err)
	}

	return &passwordreset.ValidateTokenResponse{
		Valid:     true,
		Email:     t.Email,
		UserID:    t.UserID,
		UserName:  u.Name,
		ExpiresAt: t.ExpiresAt,
	}, nil
}

// lookupUsable fetches the token and checks the state machine: expiry
// is reported independently of the used flag.
func (s *resetService) lookupUsable(ctx context.Context, token string) (*passwordreset.Token, error) {
	t, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if t.IsExpired(s.now()) {
		return nil, passwordreset.ErrTokenExpired
	}
	if t.Used {
		return nil, passwordreset.ErrTokenAlreadyUsed
	}
	return t, nil
}

// =====================================================
// RESET
// =====================================================

func (s *resetService) Reset(ctx context.Context, req passwordreset.ResetPasswordRequest) error {
	// 1. Validate input
	if err := req.Validate(); err != nil {
		return err
	}
	if req.Password != req.ConfirmPassword {
		return passwordreset.ErrPasswordMismatch
	}

	// 2. Token must be usable
	t, err := s.lookupUsable(ctx, req.Token)
	if err != nil {
		return err
	}

	// 3. Hash before consuming the token so a hashing failure leaves
	// the token intact
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	// 4. Burn the token and store the new password in one transaction.
	// A concurrent reset loses here; a failed password write leaves the
	// token usable.
	if err := s.repo.Consume(ctx, req.Token, s.now(), t.UserID, string(hash)); err != nil {
		return err
	}

	logger.Info("Password reset completed", map[string]interface{}{
		"user_id": t.UserID.String(),
	})
	return nil
}

// =====================================================
// HELPERS
// =====================================================

func generateSecureToken(byteLen int) (string, error) {
	buf := make([]byte, byteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func formatTTL(d time.Duration) string {
	if d >= time.Hour {
		hours := int(d.Hours())
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	return fmt.Sprintf("%d minutes", int(d.Minutes()))
}
