package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultSessionTTL = 30 * 24 * time.Hour
	MinSecretLength   = 32
	sessionIssuer     = "mycare"
)

var (
	ErrInvalidSessionToken = errors.New("invalid session token")
	ErrWeakSecret          = fmt.Errorf("secret key must be at least %d characters", MinSecretLength)
)

type sessionClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

// IssueSessionToken signs an HS256 token carrying the user ID.
func IssueSessionToken(secret []byte, userID uint, ttl time.Duration, now time.Time) (string, error) {
	if len(secret) < MinSecretLength {
		return "", ErrWeakSecret
	}
	if userID == 0 {
		return "", errors.New("user id is required")
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	claims := sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseSessionToken verifies the signature and expiry against now and returns the user ID.
func ParseSessionToken(secret []byte, raw string, now time.Time) (uint, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	},
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSessionToken, err)
	}
	if claims.UserID == 0 {
		return 0, ErrInvalidSessionToken
	}
	return claims.UserID, nil
}
