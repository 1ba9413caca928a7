package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"futsal-backend/internal/domains/user"
	"futsal-backend/pkg/jwt"
)

// bcryptCost balances security and login latency.
const bcryptCost = 12

// userService implements user.Service
type userService struct {
	repo       user.Repository
	jwtManager *jwt.Manager
}

// NewUserService creates the service instance.
// Dependencies are injected through the constructor.
func NewUserService(repo user.Repository, jwtManager *jwt.Manager) user.Service {
	return &userService{
		repo:       repo,
		jwtManager: jwtManager,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

// Register creates a new customer account.
func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.UserDTO, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. BUSINESS RULE: email must be unique
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, user.ErrEmailAlreadyExists
	}

	// 3. HASH PASSWORD
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 4. CREATE USER ENTITY
	now := time.Now()
	newUser := &user.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Role:         user.RoleCustomer,
		Name:         req.Name,
		Phone:        stringPtr(req.Phone),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// 5. PERSIST TO DATABASE
	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	dto := newUser.ToDTO()
	return &dto, nil
}

// Login authenticates a user and returns JWT tokens.
func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. FIND USER BY EMAIL
	// Not found is reported as invalid credentials so an attacker cannot
	// probe which emails exist.
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}

	// 3. CHECK USER STATUS
	if !u.IsActive {
		return nil, user.ErrUserInactive
	}

	// 4. VERIFY PASSWORD (constant-time comparison)
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	// 5. GENERATE JWT TOKENS
	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Email, u.Role)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	dto := u.ToDTO()
	return &user.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(15 * time.Minute),
		User:         dto,
	}, nil
}

// ========================================
// USER PROFILE
// ========================================

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

// UpdateProfile updates only the fields present in the request.
func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req user.UpdateProfileRequest) (*user.UserDTO, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. GET CURRENT USER
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 3. APPLY CHANGES
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}

	// 4. PERSIST
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	dto := u.ToDTO()
	return &dto, nil
}

// ========================================
// ADMIN FUNCTIONS
// ========================================

func (s *userService) UpdateUserStatus(ctx context.Context, userID uuid.UUID, req user.UpdateStatusRequest) error {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return err
	}

	if err := s.repo.UpdateStatus(ctx, userID, req.IsActive); err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	return nil
}

// stringPtr converts a string to *string for nullable columns.
func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
