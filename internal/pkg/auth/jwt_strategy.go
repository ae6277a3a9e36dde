package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kairos-ev/ordertrack/internal/domain/model"
)

// JWTStrategy issues signed JWTs as an alternative to the compact HMAC tokens.
type JWTStrategy struct {
	secret []byte
	ttl    time.Duration
}

type jwtClaims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"uid"`
	Role   string `json:"role"`
}

// NewJWTStrategy builds JWTStrategy with provided secret and options.
func NewJWTStrategy(secret string, opts Options) *JWTStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTStrategy{secret: []byte(secret), ttl: ttl}
}

// IssueToken generates an HS256-signed JWT carrying user ID and role.
func (s *JWTStrategy) IssueToken(userID int64, role model.Role) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID: userID,
		Role:   string(role),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken validates the JWT and returns the encoded user ID and role.
func (s *JWTStrategy) ParseToken(token string) (int64, model.Role, error) {
	var claims jwtClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return 0, "", ErrInvalidToken
	}

	role := model.Role(claims.Role)
	if claims.UserID == 0 || !role.Valid() {
		return 0, "", ErrInvalidToken
	}

	return claims.UserID, role, nil
}

func (s *JWTStrategy) Name() string {
	return "jwt"
}
