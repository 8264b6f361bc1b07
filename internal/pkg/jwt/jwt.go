package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/user"
)

// maxRevokedTokens bounds the logout blacklist; entries expire with the token.
const maxRevokedTokens = 10000

// Claims is the operator identity carried by an access token.
type Claims struct {
	UserID   string
	Username string
	Role     user.Role
}

// IsAdmin reports whether the token belongs to an admin operator.
func (c Claims) IsAdmin() bool {
	return c.Role == user.RoleAdmin
}

type Service interface {
	GenerateAccessToken(userID, username string, role user.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	accessTokenTTL time.Duration
	tokenAuth      *jwtauth.JWTAuth
	revokedTokens  *expirable.LRU[string, int64]
	now            func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// NewJWTService parses accessTokenExpirationTime as a Go duration ("24h").
func NewJWTService(secretKey string, accessTokenExpirationTime string) (*JWTService, error) {
	ttl, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration %q: %w", accessTokenExpirationTime, err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("access token expiration must be positive, got %s", ttl)
	}
	return &JWTService{
		accessTokenTTL: ttl,
		tokenAuth:      jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:  expirable.NewLRU[string, int64](maxRevokedTokens, nil, ttl),
		now:            time.Now,
	}, nil
}

func (j *JWTService) GenerateAccessToken(userID, username string, role user.Role) (token string, expiresAt int64, err error) {
	now := j.now()
	expiresAt = now.Add(j.accessTokenTTL).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id":  userID,
		"username": username,
		"role":     string(role),
		"type":     "access",
		"iat":      now.Unix(),
		"exp":      expiresAt,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) RevokeToken(token string) {
	j.revokedTokens.Add(token, j.now().Unix())
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	return j.revokedTokens.Contains(token)
}

// ClaimsFromContext reads the operator claims verified by jwtauth.Verifier.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return Claims{}, jwt.ErrInvalidJWT()
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Claims{}, fmt.Errorf("user_id claim is missing or invalid")
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return Claims{
		UserID:   userID,
		Username: username,
		Role:     user.Role(role),
	}, nil
}
