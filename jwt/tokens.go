package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"attendance-backend/entity"
	"attendance-backend/log"
)

const (
	audienceAccess  = "access"
	audienceRefresh = "refresh"
)

var (
	ErrExpired = errors.New("token expired")
	ErrInvalid = errors.New("token invalid")
)

type RefreshClaims struct {
	UserID       string `json:"user_id"`
	TokenVersion int64  `json:"token_version"`
	jwt.RegisteredClaims
}

type AccessClaims struct {
	UserID string      `json:"user_id"`
	Email  string      `json:"email"`
	Role   entity.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and validates HS512 tokens with a single key.
type Issuer struct {
	key        []byte
	name       string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewIssuer(key []byte, name string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		key:        key,
		name:       name,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (i *Issuer) registered(ttl time.Duration, audience string) jwt.RegisteredClaims {
	now := i.now()
	return jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    i.name,
		Audience:  jwt.ClaimStrings{audience},
	}
}

func (i *Issuer) NewRefreshToken(id *entity.Identity) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, &RefreshClaims{
		UserID:           id.ID,
		TokenVersion:     id.TokenVersion,
		RegisteredClaims: i.registered(i.refreshTTL, audienceRefresh),
	})

	ss, err := token.SignedString(i.key)
	if err != nil {
		log.Logger.Error("signing failure", zap.Error(err))
		return "", err
	}

	return ss, nil
}

func (i *Issuer) NewAccessToken(u *entity.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, &AccessClaims{
		UserID:           u.ID,
		Email:            u.Email,
		Role:             u.Role,
		RegisteredClaims: i.registered(i.accessTTL, audienceAccess),
	})

	ss, err := token.SignedString(i.key)
	if err != nil {
		log.Logger.Error("signing failure", zap.Error(err))
		return "", err
	}

	return ss, nil
}

func (i *Issuer) parse(token string, claims jwt.Claims) error {
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS512 {
			return nil, ErrInvalid
		}
		return i.key, nil
	})
	if err != nil {
		log.Logger.Debug("parse failure", zap.Error(err))
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpired
		}
		return ErrInvalid
	}

	return nil
}

func (i *Issuer) ValidateRefreshToken(token string) (*RefreshClaims, error) {
	c := &RefreshClaims{}
	if err := i.parse(token, c); err != nil {
		return nil, err
	}
	if c.UserID == "" || !c.VerifyAudience(audienceRefresh, true) {
		return nil, ErrInvalid
	}

	return c, nil
}

func (i *Issuer) ValidateAccessToken(token string) (*AccessClaims, error) {
	c := &AccessClaims{}
	if err := i.parse(token, c); err != nil {
		return nil, err
	}
	if c.UserID == "" || !c.Role.Valid() || !c.VerifyAudience(audienceAccess, true) {
		return nil, ErrInvalid
	}

	return c, nil
}
