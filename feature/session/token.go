package session

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for missing, malformed or expired member tokens.
var ErrInvalidToken = errors.New("invalid member token")

const tokenIssuer = "loot-splitter"

// Claims identify a member of a session.
type Claims struct {
	SessionID string `json:"sid"`
	MemberID  string `json:"mid"`
	Leader    bool   `json:"leader,omitempty"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies member tokens with HS256.
type Tokens struct {
	secret []byte
}

// NewTokens creates a signer. An empty secret is replaced by a random one, which
// invalidates issued tokens on restart.
func NewTokens(secret string) (*Tokens, error) {
	if secret != "" {
		return &Tokens{secret: []byte(secret)}, nil
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("failed to generate token secret: %w", err)
	}
	return &Tokens{secret: b}, nil
}

// Issue signs a token for member of s, valid until the session expires.
func (t *Tokens) Issue(s *Session, memberID string) (string, error) {
	claims := Claims{
		SessionID: s.ID,
		MemberID:  memberID,
		Leader:    s.IsLeader(memberID),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   memberID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Parse verifies a token and returns its claims.
func (t *Tokens) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.SessionID == "" || claims.MemberID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
