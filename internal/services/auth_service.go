package services

import (
	"context"
	"time"

	"github.com/dsaidinesh/influencerflow/internal/auth"
	"github.com/dsaidinesh/influencerflow/internal/logger"
	"github.com/dsaidinesh/influencerflow/internal/services/dto"
	"github.com/dsaidinesh/influencerflow/pkg/apperrors"
)

type AuthService interface {
	IssueToken(ctx context.Context, req *dto.TokenRequest) (*dto.TokenResponse, error)
}

// AuthConfig carries the single configured admin identity. The service has no
// user store; token issuance exists to protect administrative endpoints.
type AuthConfig struct {
	AdminEmail        string
	AdminPasswordHash string
	JWTSecret         string
	TokenTTL          time.Duration
}

type AuthServiceImpl struct {
	cfg AuthConfig
}

func NewAuthService(cfg AuthConfig) AuthService {
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = time.Hour
	}
	return &AuthServiceImpl{cfg: cfg}
}

func (s *AuthServiceImpl) IssueToken(ctx context.Context, req *dto.TokenRequest) (*dto.TokenResponse, error) {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPasswordHash == "" {
		logger.CtxWarn(ctx, "Token requested but no admin identity is configured")
		return nil, apperrors.ErrInvalidCredentials
	}

	if req.Email != s.cfg.AdminEmail || !auth.CheckPasswordHash(req.Password, s.cfg.AdminPasswordHash) {
		logger.CtxWarn(ctx, "Failed login attempt", "email", req.Email)
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(s.cfg.JWTSecret, s.cfg.AdminEmail, "admin", s.cfg.TokenTTL)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Admin token issued", "email", req.Email)
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(s.cfg.TokenTTL.Seconds()),
	}, nil
}
