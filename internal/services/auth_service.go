package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sjperalta/aml-lists-api/internal/config"
	"github.com/sjperalta/aml-lists-api/internal/models"
)

// AuthService handles the role-selection session
type AuthService struct {
	auditSvc *AuditService
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(auditSvc *AuditService, cfg *config.Config) *AuthService {
	return &AuthService{
		auditSvc: auditSvc,
		cfg:      cfg,
	}
}

// LoginResult represents the result of a login
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      models.Actor `json:"user"`
}

// Login starts a session for the chosen role. There are no passwords: each
// role maps to its fixed demo user.
func (s *AuthService) Login(ctx context.Context, role string) (*LoginResult, error) {
	if !models.IsValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	actor := models.Actor{Username: models.DefaultUserForRole(role), Role: role}
	expiresAt := time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour)

	token, err := s.generateJWT(actor, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if _, err := s.auditSvc.Record(ctx, AuditInput{
		Action:  models.AuditActionLogin,
		User:    actor.Username,
		Role:    actor.Role,
		Details: fmt.Sprintf("User logged in as %s", role),
	}); err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      actor,
	}, nil
}

// Logout records the end of the actor's session. Tokens are stateless and
// simply expire.
func (s *AuthService) Logout(ctx context.Context, actor models.Actor) error {
	_, err := s.auditSvc.Record(ctx, AuditInput{
		Action:  models.AuditActionLogout,
		User:    actor.Username,
		Role:    actor.Role,
		Details: "User logged out",
	})
	return err
}

// generateJWT creates a new JWT token for an actor
func (s *AuthService) generateJWT(actor models.Actor, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"username": actor.Username,
		"role":     actor.Role,
		"exp":      expiresAt.Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
