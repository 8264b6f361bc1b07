package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/audit"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/auth"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/user"
	"github.com/sensacion-hr/attendance-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	user.UserRepository
	jwt.Service
	auditService audit.AuditService
	limiter      *LoginLimiter
	cost         int
}

func NewAuthService(userRepository user.UserRepository, jwtService jwt.Service, auditService audit.AuditService, limiter *LoginLimiter) auth.AuthService {
	if limiter == nil {
		limiter = NewLoginLimiter(DefaultLoginMaxAttempts, DefaultLoginWindow)
	}
	return &AuthServiceImpl{
		UserRepository: userRepository,
		Service:        jwtService,
		auditService:   auditService,
		limiter:        limiter,
		cost:           bcrypt.DefaultCost,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, clientKey string) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	if a.limiter.Blocked(clientKey) {
		slog.Warn("login rate limit exceeded", "client", clientKey, "username", req.Username)
		return auth.TokenResponse{}, auth.ErrTooManyAttempts
	}

	userData, err := a.UserRepository.GetByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		return auth.TokenResponse{}, fmt.Errorf("failed to get operator: %w", err)
	}

	if err != nil || !userData.Active ||
		bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)) != nil {
		a.limiter.RecordFailure(clientKey)
		slog.Warn("login failed", "client", clientKey, "username", req.Username)
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(userData.ID, userData.Username, userData.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	slog.Info("login succeeded", "user_id", userData.ID, "username", userData.Username)
	a.auditService.Record(audit.WithActor(ctx, audit.Actor{Username: userData.Username, IP: audit.ActorFrom(ctx).IP}),
		audit.ActionLogin, "operator", userData.ID, userData.Username)

	return auth.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        user.ToResponse(userData),
	}, nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (user.UserResponse, error) {
	if !req.RequestedByAdmin {
		return user.UserResponse{}, user.ErrAdminPrivilegeRequired
	}
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	created, err := a.createOperator(ctx, req.Username, req.Password, req.Name, user.Role(req.Role))
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("operator registered", "user_id", created.ID, "username", created.Username, "role", created.Role)
	a.auditService.Record(ctx, audit.ActionRegister, "operator", created.ID,
		fmt.Sprintf("%s (%s)", created.Username, created.Role))

	return user.ToResponse(created), nil
}

// ChangePassword implements auth.AuthService.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	userData, err := a.UserRepository.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.ErrInvalidCredentials
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrInvalidCredentials
	}

	hash, err := a.hashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := a.UserRepository.UpdatePassword(ctx, userData.ID, hash); err != nil {
		return err
	}

	a.auditService.Record(ctx, audit.ActionChangePassword, "operator", userData.ID, userData.Username)
	return nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return auth.ErrInvalidToken
	}
	a.Service.RevokeToken(token)
	return nil
}

// EnsureAdmin implements auth.AuthService.
func (a *AuthServiceImpl) EnsureAdmin(ctx context.Context, username, password string) error {
	count, err := a.UserRepository.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if username == "" || password == "" {
		slog.Warn("no operators registered and no bootstrap admin configured")
		return nil
	}

	req := auth.RegisterRequest{Username: username, Password: password, Role: string(user.RoleAdmin)}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid bootstrap admin: %w", err)
	}

	created, err := a.createOperator(ctx, req.Username, req.Password, req.Name, user.RoleAdmin)
	if errors.Is(err, user.ErrUsernameExists) {
		// Another instance won the race
		return nil
	}
	if err != nil {
		return err
	}

	slog.Info("bootstrap admin created", "user_id", created.ID, "username", created.Username)
	return nil
}

func (a *AuthServiceImpl) createOperator(ctx context.Context, username, password, name string, role user.Role) (user.User, error) {
	hash, err := a.hashPassword(password)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return user.User{}, err
	}

	return a.UserRepository.Create(ctx, user.User{
		ID:           id.String(),
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		Active:       true,
	})
}
