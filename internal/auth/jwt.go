package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims adalah isi access token: identitas pengguna dan role-nya.
type Claims struct {
	UserID int    `json:"user_id"`
	Nama   string `json:"nama"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func NewAccessToken(secret string, ttl time.Duration, userID int, nama, role string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID: userID,
		Nama:   nama,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "bukutamu",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
