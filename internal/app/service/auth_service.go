package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"reviro_api/internal/common"
	"reviro_api/internal/common/security"
	"reviro_api/internal/domain/model"
	"reviro_api/internal/domain/repository"
)

// Usernames are restricted to word characters, dot and hyphen.
var usernamePattern = regexp.MustCompile(`^[\w.-]+$`)

type AuthService struct {
	userRepo    repository.UserRepository
	refreshRepo repository.RefreshTokenRepository
	codec       *security.TokenCodec
	accessTTL   time.Duration
	refreshTTL  time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	refreshRepo repository.RefreshTokenRepository,
	codec *security.TokenCodec,
	accessTTL, refreshTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		refreshRepo: refreshRepo,
		codec:       codec,
		accessTTL:   accessTTL,
		refreshTTL:  refreshTTL,
	}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type RegisterResponse struct {
	ID int64 `json:"id"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register creates a new user. The role defaults to "user" and must belong to
// the fixed role set. Registration does not log the user in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	if !usernamePattern.MatchString(req.Username) {
		return nil, common.Errorf("username must match %s: %w", usernamePattern.String(), common.ErrValidation)
	}
	if req.Password == "" {
		return nil, common.Errorf("password must not be empty: %w", common.ErrValidation)
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}
	if !model.ValidRole(role) {
		return nil, common.Errorf("unknown role %q: %w", role, common.ErrValidation)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, common.Errorf("failed to hash password: %w", err)
	}

	id, err := s.userRepo.Create(ctx, &model.User{
		Username:       req.Username,
		HashedPassword: hashedPassword,
		Role:           role,
	})
	if err != nil {
		return nil, err
	}
	return &RegisterResponse{ID: id}, nil
}

// Login authenticates the credentials, issues an access/refresh token pair
// and persists the refresh token in the ledger.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenPairResponse, error) {
	user, err := s.authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.codec.Sign(user.Username, user.ID, user.Role, s.accessTTL)
	if err != nil {
		return nil, common.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.codec.Sign(user.Username, user.ID, user.Role, s.refreshTTL)
	if err != nil {
		return nil, common.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.refreshRepo.Store(ctx, refreshToken, time.Now().Add(s.refreshTTL)); err != nil {
		return nil, common.Errorf("failed to store refresh token: %w", err)
	}

	return &TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

// Refresh exchanges a still-valid refresh token for a fresh access token.
// The ledger is consulted first: a token whose record is gone (never issued,
// revoked or swept) is rejected before its signature is even looked at. The
// consumed record is kept; refresh tokens are multi-use until they expire.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AccessTokenResponse, error) {
	if _, err := s.refreshRepo.Find(ctx, refreshToken); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.Errorf("refresh token lookup failed: %w", err)
	}

	claims, err := s.codec.Verify(refreshToken)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.codec.Sign(claims.Username, claims.UserID, claims.Role, s.accessTTL)
	if err != nil {
		return nil, common.Errorf("failed to generate access token: %w", err)
	}

	return &AccessTokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}, nil
}

// Logout revokes a refresh token by deleting its ledger record. Revocation is
// idempotent; deleting an unknown token is not an error.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.refreshRepo.Delete(ctx, refreshToken)
}

// authenticate collapses "user not found" and "wrong password" into the same
// failure so a caller cannot enumerate usernames.
func (s *AuthService) authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}
	return user, nil
}
