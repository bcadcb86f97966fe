package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kando-edu/piar-api/models"
)

var ErrInvalidSessionToken = errors.New("invalid session token")

// SessionClaims are the identity claims carried by a session token.
type SessionClaims struct {
	Cedula            string `json:"cedula"`
	CodigoUsuario     string `json:"codigo_usuario"`
	Nombres           string `json:"nombres"`
	Apellidos         string `json:"apellidos"`
	CodigoInstitucion string `json:"codigo_institucion"`
	jwt.RegisteredClaims
}

// SignSessionToken issues an HS256 token for the authenticated account.
func SignSessionToken(user *models.Usuario, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Cedula:            user.Cedula,
		CodigoUsuario:     user.CodigoUsuario,
		Nombres:           user.Nombres,
		Apellidos:         user.Apellidos,
		CodigoInstitucion: user.CodigoInstitucion,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifySessionToken parses and validates a session token, returning its
// claims. Expired or tampered tokens fail with ErrInvalidSessionToken.
func VerifySessionToken(tokenString, secret string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSessionToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidSessionToken
	}
	return claims, nil
}
