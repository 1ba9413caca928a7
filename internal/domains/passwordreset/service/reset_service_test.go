package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"futsal-backend/internal/config"
	"futsal-backend/internal/domains/passwordreset"
	"futsal-backend/internal/domains/user"
	"futsal-backend/internal/infrastructure/email"
)

// =====================================================
// FAKES
// =====================================================

type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*passwordreset.Token

	// passwords is shared with fakeUserRepo to mimic the transactional
	// consume writing both tables.
	passwords    map[uuid.UUID]string
	failPassword bool
}

func newFakeTokenRepo(passwords map[uuid.UUID]string) *fakeTokenRepo {
	return &fakeTokenRepo{
		tokens:    make(map[string]*passwordreset.Token),
		passwords: passwords,
	}
}

func (r *fakeTokenRepo) Create(ctx context.Context, t *passwordreset.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.tokens[t.Token] = &cp
	return nil
}

func (r *fakeTokenRepo) FindByToken(ctx context.Context, token string) (*passwordreset.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok {
		return nil, passwordreset.ErrInvalidToken
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTokenRepo) Consume(ctx context.Context, token string, now time.Time, userID uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok || t.Used || !now.Before(t.ExpiresAt) {
		return passwordreset.ErrTokenAlreadyUsed
	}
	if r.failPassword {
		// Rolled back: the token stays usable.
		return assert.AnError
	}
	t.Used = true
	r.passwords[userID] = passwordHash
	return nil
}

func (r *fakeTokenRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k, t := range r.tokens {
		if !now.Before(t.ExpiresAt) {
			delete(r.tokens, k)
			n++
		}
	}
	return n, nil
}

type fakeUserRepo struct {
	users     map[string]*user.User // keyed by email
	passwords map[uuid.UUID]string  // stored hashes
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *user.User) error { return nil }

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	r.passwords[userID] = passwordHash
	return nil
}

func (r *fakeUserRepo) UpdateStatus(ctx context.Context, userID uuid.UUID, isActive bool) error {
	return nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

type fakeCache struct {
	mu       sync.Mutex
	counters map[string]int64
}

func newFakeCache() *fakeCache {
	return &fakeCache{counters: make(map[string]int64)}
}

func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (c *fakeCache) Delete(ctx context.Context, keys ...string) error { return nil }
func (c *fakeCache) Ping(ctx context.Context) error                   { return nil }

func (c *fakeCache) Increment(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[key]++
	return c.counters[key], nil
}

func (c *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.counters[key]
	return ok, nil
}

func (c *fakeCache) Expire(ctx context.Context, key string, ttl time.Duration) error { return nil }
func (c *fakeCache) TTL(ctx context.Context, key string) (time.Duration, error)      { return 0, nil }

func (c *fakeCache) reset(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.counters, key)
}

type captureMailer struct {
	mu   sync.Mutex
	sent []email.ResetPasswordData
	fail bool
}

func (m *captureMailer) SendResetPasswordEmail(ctx context.Context, data email.ResetPasswordData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return assert.AnError
	}
	m.sent = append(m.sent, data)
	return nil
}

func (m *captureMailer) SendBookingConfirmationEmail(ctx context.Context, data email.BookingConfirmationData) error {
	return nil
}

// =====================================================
// FIXTURE
// =====================================================

type resetFixture struct {
	svc    *resetService
	repo   *fakeTokenRepo
	users  *fakeUserRepo
	cache  *fakeCache
	mailer *captureMailer
	userID uuid.UUID
	now    time.Time
}

const testEmail = "andi@example.com"

func newResetFixture(t *testing.T) *resetFixture {
	t.Helper()

	now := time.Date(2026, 9, 7, 8, 0, 0, 0, time.Local)
	clock := func() time.Time { return now }

	userID := uuid.New()
	passwords := make(map[uuid.UUID]string)
	users := &fakeUserRepo{
		users: map[string]*user.User{
			testEmail: {ID: userID, Email: testEmail, Name: "Andi", IsActive: true},
		},
		passwords: passwords,
	}

	repo := newFakeTokenRepo(passwords)
	c := newFakeCache()
	mailer := &captureMailer{}

	cfg := config.PasswordResetConfig{
		TokenTTL:        time.Hour,
		RateLimitMax:    3,
		RateLimitWindow: 5 * time.Minute,
	}

	svc := NewResetService(repo, users, c, mailer, cfg, "http://localhost:3000").(*resetService)
	svc.now = clock

	return &resetFixture{
		svc:    svc,
		repo:   repo,
		users:  users,
		cache:  c,
		mailer: mailer,
		userID: userID,
		now:    now,
	}
}

// issueToken runs the request flow and extracts the token from the
// emailed link.
func issueToken(t *testing.T, f *resetFixture) string {
	t.Helper()
	require.NoError(t, f.svc.Request(context.Background(), passwordreset.RequestResetRequest{Email: testEmail}))
	require.NotEmpty(t, f.mailer.sent)

	link := f.mailer.sent[len(f.mailer.sent)-1].ResetLink
	idx := strings.Index(link, "token=")
	require.Greater(t, idx, 0, "link %q missing token", link)
	return link[idx+len("token="):]
}

// =====================================================
// REQUEST
// =====================================================

func TestRequestReset(t *testing.T) {
	ctx := context.Background()

	t.Run("issues one-hour single-use token", func(t *testing.T) {
		f := newResetFixture(t)
		token := issueToken(t, f)

		stored, err := f.repo.FindByToken(ctx, token)
		require.NoError(t, err)
		assert.False(t, stored.Used)
		assert.Equal(t, f.userID, stored.UserID)
		assert.Equal(t, f.now.Add(time.Hour), stored.ExpiresAt)
		assert.GreaterOrEqual(t, len(token), 64, "token should be long and random")
	})

	t.Run("unknown email succeeds silently", func(t *testing.T) {
		f := newResetFixture(t)
		err := f.svc.Request(ctx, passwordreset.RequestResetRequest{Email: "nobody@example.com"})
		require.NoError(t, err)
		assert.Empty(t, f.mailer.sent)
	})

	t.Run("inactive account rejected", func(t *testing.T) {
		f := newResetFixture(t)
		f.users.users[testEmail].IsActive = false
		err := f.svc.Request(ctx, passwordreset.RequestResetRequest{Email: testEmail})
		assert.ErrorIs(t, err, passwordreset.ErrAccountInactive)
	})

	t.Run("delivery failure surfaces", func(t *testing.T) {
		f := newResetFixture(t)
		f.mailer.fail = true
		err := f.svc.Request(ctx, passwordreset.RequestResetRequest{Email: testEmail})
		assert.ErrorIs(t, err, passwordreset.ErrDeliveryFailed)
	})
}

func TestRequestRateLimit(t *testing.T) {
	f := newResetFixture(t)
	ctx := context.Background()
	req := passwordreset.RequestResetRequest{Email: testEmail}

	for i := 0; i < 3; i++ {
		require.NoError(t, f.svc.Request(ctx, req), "request %d within limit", i+1)
	}

	err := f.svc.Request(ctx, req)
	assert.ErrorIs(t, err, passwordreset.ErrTooManyRequests)

	// Counter also ticks for unknown emails, so existence cannot be
	// probed through the limiter.
	unknown := passwordreset.RequestResetRequest{Email: "nobody@example.com"}
	for i := 0; i < 3; i++ {
		require.NoError(t, f.svc.Request(ctx, unknown))
	}
	assert.ErrorIs(t, f.svc.Request(ctx, unknown), passwordreset.ErrTooManyRequests)

	// Window expiry clears the counter.
	f.cache.reset(rateLimitKeyPrefix + testEmail)
	assert.NoError(t, f.svc.Request(ctx, req))
}

// =====================================================
// VALIDATE
// =====================================================

func TestValidateToken(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		f := newResetFixture(t)
		token := issueToken(t, f)

		resp, err := f.svc.Validate(ctx, passwordreset.ValidateTokenRequest{Token: token})
		require.NoError(t, err)
		assert.True(t, resp.Valid)
		assert.Equal(t, testEmail, resp.Email)
		assert.Equal(t, f.userID, resp.UserID)
		assert.Equal(t, "Andi", resp.UserName)
		assert.Equal(t, f.now.Add(time.Hour), resp.ExpiresAt)

		// Validation does not consume the token.
		resp, err = f.svc.Validate(ctx, passwordreset.ValidateTokenRequest{Token: token})
		require.NoError(t, err)
		assert.True(t, resp.Valid)
	})

	t.Run("unknown token", func(t *testing.T) {
		f := newResetFixture(t)
		_, err := f.svc.Validate(ctx, passwordreset.ValidateTokenRequest{Token: "deadbeef"})
		assert.ErrorIs(t, err, passwordreset.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		f := newResetFixture(t)
		token := issueToken(t, f)

		f.svc.now = func() time.Time { return f.now.Add(time.Hour) }
		_, err := f.svc.Validate(ctx, passwordreset.ValidateTokenRequest{Token: token})
		assert.ErrorIs(t, err, passwordreset.ErrTokenExpired)
	})

	t.Run("expiry reported even for used tokens", func(t *testing.T) {
		f := newResetFixture(t)
		token := issueToken(t, f)
		f.repo.tokens[token].Used = true

		f.svc.now = func() time.Time { return f.now.Add(2 * time.Hour) }
		_, err := f.svc.Validate(ctx, passwordreset.ValidateTokenRequest{Token: token})
		assert.ErrorIs(t, err, passwordreset.ErrTokenExpired)
	})
}

// =====================================================
// RESET
// =====================================================

func TestResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("successful reset stores bcrypt hash", func(t *testing.T) {
		f := newResetFixture(t)
		token := issueToken(t, f)

		err := f.svc.Reset(ctx, passwordreset.ResetPasswordRequest{
			Token:           token,
			Password:        "newsecret",
			ConfirmPassword: "newsecret",
		})
		require.NoError(t, err)

		hash := f.users.passwords[f.userID]
		require.NotEmpty(t, hash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("newsecret")))

		stored, err := f.repo.FindByToken(ctx, token)
		require.NoError(t, err)
		assert.True(t, stored.Used)
	})

	t.Run("token is single use", func(t *testing.T) {
		f := newResetFixture(t)
		token := issueToken(t, f)

		req := passwordreset.ResetPasswordRequest{
			Token: token, Password: "newsecret", ConfirmPassword: "newsecret",
		}
		require.NoError(t, f.svc.Reset(ctx, req))

		err := f.svc.Reset(ctx, req)
		assert.ErrorIs(t, err, passwordreset.ErrTokenAlreadyUsed)
	})

	t.Run("password confirmation must match", func(t *testing.T) {
		f := newResetFixture(t)
		token := issueToken(t, f)

		err := f.svc.Reset(ctx, passwordreset.ResetPasswordRequest{
			Token: token, Password: "newsecret", ConfirmPassword: "other",
		})
		assert.ErrorIs(t, err, passwordreset.ErrPasswordMismatch)
	})

	t.Run("password minimum length enforced", func(t *testing.T) {
		f := newResetFixture(t)
		token := issueToken(t, f)

		err := f.svc.Reset(ctx, passwordreset.ResetPasswordRequest{
			Token: token, Password: "short", ConfirmPassword: "short",
		})
		assert.Error(t, err)
	})

	t.Run("failed password write leaves token usable", func(t *testing.T) {
		f := newResetFixture(t)
		token := issueToken(t, f)

		req := passwordreset.ResetPasswordRequest{
			Token: token, Password: "newsecret", ConfirmPassword: "newsecret",
		}

		f.repo.failPassword = true
		require.Error(t, f.svc.Reset(ctx, req))

		stored, err := f.repo.FindByToken(ctx, token)
		require.NoError(t, err)
		assert.False(t, stored.Used, "token must not burn when the password write fails")
		assert.Empty(t, f.users.passwords[f.userID])

		// Retry succeeds once the write goes through.
		f.repo.failPassword = false
		require.NoError(t, f.svc.Reset(ctx, req))
	})

	t.Run("expired token cannot reset", func(t *testing.T) {
		f := newResetFixture(t)
		token := issueToken(t, f)

		f.svc.now = func() time.Time { return f.now.Add(61 * time.Minute) }
		err := f.svc.Reset(ctx, passwordreset.ResetPasswordRequest{
			Token: token, Password: "newsecret", ConfirmPassword: "newsecret",
		})
		assert.ErrorIs(t, err, passwordreset.ErrTokenExpired)
	})
}
