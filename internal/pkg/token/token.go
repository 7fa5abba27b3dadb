package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/YouSangSon/ecommerce-service/internal/pkg/errors"
)

// Claims는 액세스 토큰에 담기는 클레임입니다
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Manager는 JWT 액세스 토큰의 발급과 검증을 담당합니다
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewManager는 새로운 토큰 매니저를 생성합니다
func NewManager(secret, issuer string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Generate는 사용자 ID와 역할로 액세스 토큰을 발급합니다
func (m *Manager) Generate(userID, role string) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Role: role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to sign access token")
	}

	return signed, nil
}

// Verify는 토큰을 검증하고 클레임을 반환합니다
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithExpirationRequired())

	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "invalid or expired token")
	}

	if !token.Valid {
		return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "invalid token")
	}

	return claims, nil
}
