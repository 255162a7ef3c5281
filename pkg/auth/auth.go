package auth

import (
	"context"
	"time"

	jwt "github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

type Config struct {
	Secret string        `yaml:"secret" envconfig:"JWT_SECRET" default:"your_jwt_secret_key"`
	TTL    time.Duration `yaml:"ttl" envconfig:"JWT_TTL" default:"12h"`
}

// Profile is the identity carried inside an access token.
type Profile struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type Claims struct {
	Profile Profile `json:"profile"`
	jwt.RegisteredClaims
}

// NewToken signs an HS256 access token for the given profile.
func NewToken(cfg Config, profile Profile) (string, time.Time, error) {
	expiresAt := time.Now().Add(cfg.TTL)
	claims := &Claims{
		Profile: profile,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseToken validates the signature and expiry of an access token.
func ParseToken(cfg Config, tokenStr string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.ExpiresAt != nil && time.Now().After(claims.ExpiresAt.Time) {
		return nil, errors.New("token expired")
	}
	return claims, nil
}

type contextKey int

const profileKey contextKey = iota + 1

func SetAuthContext(ctx context.Context, profile Profile) context.Context {
	return context.WithValue(ctx, profileKey, profile)
}

func FromContext(ctx context.Context) (Profile, bool) {
	profile, ok := ctx.Value(profileKey).(Profile)
	return profile, ok
}
