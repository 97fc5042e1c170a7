package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie carries the signed browser-session token.
const SessionCookie = "cym_session"

var (
	ErrMissingSecret = errors.New("session secret is not set")
	ErrInvalidToken  = errors.New("invalid session token")
)

// SessionClaims identifies a browser session. Subject is the session id; the
// token has no expiry, like the local storage it stands in for.
type SessionClaims struct {
	jwt.RegisteredClaims
}

type Issuer struct {
	key []byte
}

func NewIssuer(secret string) (*Issuer, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &Issuer{key: []byte(secret)}, nil
}

func (i *Issuer) Issue(sessionID string) (string, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  sessionID,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.key)
}

// Parse verifies the signature and returns the session id.
func (i *Issuer) Parse(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&SessionClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return i.key, nil
		},
	)
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

func ExtractSessionToken(r *http.Request) string {
	// cookie first, browsers send it on their own
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if cookie.Value != "" {
			return cookie.Value
		}
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}
