package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// The directory accepts exactly one credential pair. There is no user store,
// no lockout and no rate limiting; a mismatch simply reports the hint below.
const (
	AcceptedUsername = "testuser"
	acceptedPassword = "Test123"

	MismatchMessage = "Invalid credentials. Try testuser / Test123"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Claims struct {
	Username  string `json:"sub"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Gate performs the credential check behind the fixed artificial delay the
// login screen shows its spinner for.
type Gate struct {
	username string
	hash     []byte
	delay    time.Duration
}

func NewGate(delay time.Duration) (*Gate, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(acceptedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Gate{username: AcceptedUsername, hash: hash, delay: delay}, nil
}

// Verify waits out the artificial delay, then checks the pair. The delay is
// applied on failure as well so timing does not leak which field was wrong.
func (g *Gate) Verify(ctx context.Context, username, password string) error {
	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if username != g.username {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func GenerateToken(secret string, claims Claims, ttl time.Duration) (string, error) {
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
