package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tutor-center/backend/internal/dto"
	"tutor-center/backend/internal/model"
	"tutor-center/backend/internal/repository"
	"tutor-center/backend/pkg/jwt"
	"tutor-center/backend/pkg/redis"
)

// AuthService the single identity/session module
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	// Logout revokes the access token id until it would have expired anyway.
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	Me(ctx context.Context, actor dto.Actor) (*dto.UserResponse, error)
	// EnsureAdmin creates the bootstrap admin account if the email is unused.
	EnsureAdmin(ctx context.Context, email, password string) error
}

type authService struct {
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService creates an AuthService. rdb may be nil, in which case logout
// does not revoke tokens.
func NewAuthService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. look up the account
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storeError(s.logger, "get user by email", err)
	}

	// 2. verify the password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	// 3. issue the token pair
	return s.issueTokens(user)
}

func (s *authService) Refresh(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(req.RefreshToken)
	if err != nil || claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrInvalidToken
	}

	if s.rdb != nil {
		revoked, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("blacklist check failed, accepting refresh token", zap.Error(err))
		} else if revoked {
			return nil, ErrInvalidToken
		}
	}

	// the account may have been deactivated since the token was issued
	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, storeError(s.logger, "get user", err, zap.String("user_id", claims.UserID))
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	// rotate: the old refresh token is single-use
	if s.rdb != nil && claims.ExpiresAt != nil {
		if err := s.rdb.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
			s.logger.Warn("revoke refresh token failed", zap.Error(err))
		}
	}

	return s.issueTokens(user)
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		return nil
	}
	if err := s.rdb.BlacklistToken(ctx, jti, time.Until(expiresAt)); err != nil {
		s.logger.Warn("revoke access token failed", zap.String("jti", jti), zap.Error(err))
	}
	return nil
}

func (s *authService) Me(ctx context.Context, actor dto.Actor) (*dto.UserResponse, error) {
	user, err := lookup(ctx, s.logger, "get user", ErrUserNotFound, func(ctx context.Context) (*model.User, error) {
		return s.repo.User.GetByID(ctx, actor.ID)
	}, zap.String("user_id", actor.ID))
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	if _, err := s.repo.User.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return storeError(s.logger, "get user by email", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := s.repo.User.Create(ctx, admin); err != nil {
		return storeError(s.logger, "create admin", err)
	}

	s.logger.Info("bootstrap admin created", zap.String("email", email))
	return nil
}

func (s *authService) issueTokens(user *model.User) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Role)
	if err != nil {
		s.logger.Error("generate access token failed", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Role)
	if err != nil {
		s.logger.Error("generate refresh token failed", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.jwtMgr.AccessTokenTTL().Seconds()),
		User:         toUserResponse(user),
	}, nil
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{ID: u.UserID, Email: u.Email, Role: u.Role}
}
