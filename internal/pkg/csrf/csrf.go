// Package csrf issues the anti-forgery tokens browsers must echo in the
// X-CSRF-Token header on mutating requests.
package csrf

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	HeaderName = "X-CSRF-Token"

	DefaultTTL = 8 * time.Hour

	maxTokens  = 10000
	tokenBytes = 32
)

var ErrInvalidToken = errors.New("csrf token is invalid or expired")

// Store keeps issued tokens until they expire.
type Store interface {
	Issue() (string, error)
	Validate(token string) error
}

// MemoryStore is a Store held in process memory. The oldest tokens are
// dropped once maxTokens are outstanding.
type MemoryStore struct {
	tokens *expirable.LRU[string, struct{}]
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{tokens: expirable.NewLRU[string, struct{}](maxTokens, nil, ttl)}
}

// Issue returns a fresh 64 character hex token.
func (s *MemoryStore) Issue() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)
	s.tokens.Add(token, struct{}{})
	return token, nil
}

// Validate accepts any unexpired token issued by this store. Tokens are
// reusable for their whole lifetime.
func (s *MemoryStore) Validate(token string) error {
	if token == "" {
		return ErrInvalidToken
	}
	if _, ok := s.tokens.Get(token); !ok {
		return ErrInvalidToken
	}
	return nil
}
