package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"

	"github.com/rocketscienceinc/matchsync/internal/apperror"
)

const (
	tokenIssuer     = "matchsync"
	DefaultTokenTTL = 24 * time.Hour
)

type AuthService interface {
	GenerateToken(participantID string) (string, error)
	VerifyToken(token string) (string, error)
}

// ParticipantClaims identifies the participant a match request acts for.
type ParticipantClaims struct {
	ParticipantID string `json:"participant_id"`
	jwt.RegisteredClaims
}

type authServiceImpl struct {
	secretKey []byte
	ttl       time.Duration
	clock     clockwork.Clock
}

func NewAuthService(secretKey string, ttl time.Duration, clock clockwork.Clock) AuthService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	return &authServiceImpl{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		clock:     clock,
	}
}

func (that *authServiceImpl) GenerateToken(participantID string) (string, error) {
	if participantID == "" {
		return "", fmt.Errorf("%w: empty participant id", apperror.ErrUnauthorized)
	}

	now := that.clock.Now()
	claims := ParticipantClaims{
		ParticipantID: participantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   participantID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(that.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(that.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// VerifyToken returns the participant the token was issued to.
func (that *authServiceImpl) VerifyToken(tokenString string) (string, error) {
	claims := &ParticipantClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return that.secretKey, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(that.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperror.ErrUnauthorized, err)
	}

	if claims.ParticipantID == "" {
		return "", fmt.Errorf("%w: token has no participant", apperror.ErrUnauthorized)
	}

	return claims.ParticipantID, nil
}
