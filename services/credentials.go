package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// Credentials hashes and verifies passwords and issues bearer tokens.
type Credentials struct {
	secret []byte
	cost   int
}

// TokenClaims is the claim set embedded in issued tokens.
type TokenClaims struct {
	UserID   uint
	Verified bool
}

func NewCredentials(secret string, cost int) *Credentials {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Credentials{secret: []byte(secret), cost: cost}
}

// HashPassword hashes a plaintext password with bcrypt.
func (s *Credentials) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches hash. A mismatch is not
// an error, just false.
func (s *Credentials) CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IssueToken signs a {id, verified} claim set with a 24h expiry.
func (s *Credentials) IssueToken(userID uint, verified bool) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrNoSigningSecret
	}

	claims := jwt.MapClaims{
		"id":       userID,
		"verified": verified,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken validates a signed token and returns its claims.
func (s *Credentials) ParseToken(tokenString string) (*TokenClaims, error) {
	if len(s.secret) == 0 {
		return nil, ErrNoSigningSecret
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["id"] == nil {
		return nil, fmt.Errorf("invalid token payload")
	}

	// JWT numeric claims decode as float64
	id, ok := claims["id"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid token payload")
	}
	verified, _ := claims["verified"].(bool)

	return &TokenClaims{UserID: uint(id), Verified: verified}, nil
}
