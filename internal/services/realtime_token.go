package services

import (
	"fmt"
	"time"

	apperrors "markethub-messaging/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
)

// Realtime channel roles.
const (
	RealtimeRolePublisher  = "publisher"
	RealtimeRoleSubscriber = "subscriber"
)

// RealtimeTokenIssuer mints scoped, time-limited credentials for an
// audio/video channel. Stateless; credential presence is checked loudly here
// even though the caller gates on it first.
type RealtimeTokenIssuer struct{}

type RealtimeClaims struct {
	AppID   string `json:"app_id"`
	Channel string `json:"channel"`
	UID     string `json:"uid"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

func (RealtimeTokenIssuer) Issue(appID, appSecret, channel, uid, role string, expiresAt int64) (string, error) {
	if appID == "" || appSecret == "" {
		return "", fmt.Errorf("%w: realtime credentials not configured", apperrors.ErrServiceUnavailable)
	}
	if channel == "" || uid == "" {
		return "", fmt.Errorf("%w: channel and uid are required", apperrors.ErrInvalidInput)
	}

	now := time.Now()
	claims := RealtimeClaims{
		AppID:   appID,
		Channel: channel,
		UID:     uid,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(time.Unix(expiresAt, 0)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(appSecret))
	if err != nil {
		return "", err
	}
	return signed, nil
}
