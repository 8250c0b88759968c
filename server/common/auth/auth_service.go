package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken   = errors.New("token is required")
	ErrMalformedToken = errors.New("token must be of form '<scheme> <jwt>'")
)

// RoleList accepts the role claim as either a single string or a list of
// strings, which is how upstream token issuers encode it.
type RoleList []string

func (r *RoleList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*r = RoleList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("role claim must be a string or a list of strings")
	}
	*r = RoleList(many)
	return nil
}

func (r RoleList) Contains(role string) bool {
	for _, item := range r {
		if item == role {
			return true
		}
	}
	return false
}

// ContainsAny reports whether the claim set intersects the required set.
func (r RoleList) ContainsAny(roles ...string) bool {
	for _, role := range roles {
		if r.Contains(role) {
			return true
		}
	}
	return false
}

type Claims struct {
	Roles RoleList `json:"role"`
	jwt.RegisteredClaims
}

type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttlMinutes int) *Service {
	return &Service{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

func (s *Service) GenerateToken(subject string, roles ...string) (string, error) {
	now := time.Now()
	claims := Claims{
		Roles: RoleList(roles),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

func (s *Service) ParseToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// ParseBearer verifies a credential of form "Bearer <jwt>" as carried in
// the request's token field.
func (s *Service) ParseBearer(credential string) (*Claims, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return nil, ErrMissingToken
	}
	scheme, token, found := strings.Cut(credential, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return nil, ErrMalformedToken
	}
	return s.ParseToken(strings.TrimSpace(token))
}
