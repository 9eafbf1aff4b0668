package devserver

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var errInvalidToken = errors.New("invalid token")

// issueAccessToken mints a short-lived HS256 access token for the user.
func (s *Server) issueAccessToken(userID int64) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.AccessTTL)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.cfg.JWTSecret)
}

// issueRefreshToken registers an opaque refresh token for the user.
// Caller must hold s.mu.
func (s *Server) issueRefreshToken(userID int64) string {
	token := uuid.NewString()
	s.refreshTokens[token] = userID
	return token
}

// rotateRefreshToken invalidates the presented token and issues a new one.
// Caller must hold s.mu.
func (s *Server) rotateRefreshToken(token string) (int64, string, error) {
	userID, ok := s.refreshTokens[token]
	if !ok {
		return 0, "", errInvalidToken
	}
	delete(s.refreshTokens, token)
	return userID, s.issueRefreshToken(userID), nil
}

// parseAccessToken verifies signature and expiry and returns the user id.
func (s *Server) parseAccessToken(tokenString string) (int64, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return s.cfg.JWTSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, errInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, errInvalidToken
	}
	return userID, nil
}
