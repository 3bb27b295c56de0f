package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"attendance-backend/entity"
	"attendance-backend/errs"
	"attendance-backend/jwt"
	"attendance-backend/log"
	mailer "attendance-backend/mail"
	"attendance-backend/metrics"
	"attendance-backend/store"
)

// Limiter answers whether one more request under key may proceed.
type Limiter interface {
	Allow(key string) bool
}

type Session struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

type IdentityConfig struct {
	// ResetURL receives the reset token as its token query parameter.
	ResetURL string
	ResetTTL time.Duration
}

type Identity struct {
	deps    Deps
	tokens  *jwt.Issuer
	mail    mailer.Mailer
	limiter Limiter
	config  IdentityConfig
}

func NewIdentity(deps Deps, tokens *jwt.Issuer, m mailer.Mailer, limiter Limiter, config IdentityConfig) *Identity {
	if config.ResetTTL == 0 {
		config.ResetTTL = time.Hour
	}
	return &Identity{
		deps:    deps,
		tokens:  tokens,
		mail:    m,
		limiter: limiter,
		config:  config,
	}
}

func (s *Identity) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, errs.ErrEmailRequired
	}
	if password == "" {
		return nil, errs.ErrPasswordRequired
	}

	id, err := s.deps.Store.Identities().FindByEmail(ctx, email)
	if errors.Is(err, errs.ErrNotFound) {
		metrics.SignIns.WithLabelValues("failed").Inc()
		return nil, errs.ErrInvalidEmailOrPassword
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(id.PasswordHash), []byte(password)); err != nil {
		metrics.SignIns.WithLabelValues("failed").Inc()
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return nil, errs.ErrInvalidEmailOrPassword
		}
		log.Logger.Error("bcrypt failure", zap.Error(err))
		return nil, errs.ErrCryptographic
	}

	u, err := s.deps.lookupUser(ctx, id.ID)
	if err != nil {
		return nil, err
	}

	session, err := s.session(id, u)
	if err != nil {
		return nil, err
	}

	metrics.SignIns.WithLabelValues("ok").Inc()
	log.Logger.Info("signed in", zap.String("userID", u.ID), zap.String("role", string(u.Role)))
	return session, nil
}

func (s *Identity) session(id *entity.Identity, u *entity.User) (*Session, error) {
	refresh, err := s.tokens.NewRefreshToken(id)
	if err != nil {
		return nil, errs.ErrJWT
	}
	access, err := s.tokens.NewAccessToken(u)
	if err != nil {
		return nil, errs.ErrJWT
	}
	return &Session{AccessToken: access, RefreshToken: refresh, User: u}, nil
}

// SignOut ends every session of the user by invalidating issued refresh
// tokens.
func (s *Identity) SignOut(ctx context.Context, userID string) error {
	return s.deps.Store.Identities().BumpTokenVersion(ctx, userID)
}

func (s *Identity) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err == jwt.ErrExpired {
		return "", errs.ErrTokenExpired
	}
	if err != nil {
		return "", errs.ErrJWT
	}

	id, err := s.deps.Store.Identities().FindByID(ctx, claims.UserID)
	if errors.Is(err, errs.ErrNotFound) {
		return "", errs.ErrJWT
	}
	if err != nil {
		return "", err
	}
	if id.TokenVersion != claims.TokenVersion {
		return "", errs.ErrJWT.WithDetail("session ended")
	}

	u, err := s.deps.lookupUser(ctx, id.ID)
	if errors.Is(err, errs.ErrNotFound) {
		return "", errs.ErrJWT
	}
	if err != nil {
		return "", err
	}

	access, err := s.tokens.NewAccessToken(u)
	if err != nil {
		return "", errs.ErrJWT
	}
	return access, nil
}

func (s *Identity) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", errs.ErrEmailRequired
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return "", errs.ErrEmailAddressFormat
	}
	if s.limiter != nil && !s.limiter.Allow("reset:"+email) {
		return "", errs.ErrRateLimited
	}

	id, err := s.deps.Store.Identities().FindByEmail(ctx, email)
	if errors.Is(err, errs.ErrNotFound) {
		return "", errs.ErrNotFound.WithDetail("no account found with this email address")
	}
	if err != nil {
		return "", err
	}

	now := s.deps.now()
	reset := &entity.PasswordReset{
		ID:        uuid.NewString(),
		UserID:    id.ID,
		Token:     uuid.NewString(),
		TTL:       now.Add(s.config.ResetTTL),
		CreatedAt: now,
	}
	if err := s.deps.Store.Resets().Insert(ctx, reset); err != nil {
		return "", err
	}

	err = s.mail.Send(ctx, &mailer.Message{
		To:      email,
		Subject: "Reset your password",
		Text:    fmt.Sprintf("Open %s to choose a new password. The link expires at %s.", s.resetLink(reset.Token), reset.TTL.UTC().Format(time.RFC1123)),
	})
	if err != nil {
		log.Logger.Error("failed sending reset mail", zap.String("userID", id.ID), zap.Error(err))
		return "", errs.ErrMail
	}

	return fmt.Sprintf("Password reset email sent to %s", email), nil
}

func (s *Identity) resetLink(token string) string {
	sep := "?"
	if strings.Contains(s.config.ResetURL, "?") {
		sep = "&"
	}
	return s.config.ResetURL + sep + "token=" + token
}

func (s *Identity) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return errs.ErrInvalidResetToken
	}
	if len(newPassword) < minPasswordLength {
		return errs.ErrWeakPassword
	}

	reset, err := s.deps.Store.Resets().FindByToken(ctx, token)
	if errors.Is(err, errs.ErrNotFound) {
		return errs.ErrInvalidResetToken
	}
	if err != nil {
		return err
	}

	now := s.deps.now()
	if !now.Before(reset.TTL) {
		return errs.ErrInvalidResetToken
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.deps.Store.WithTransaction(ctx, func(ctx context.Context, tx store.Store) error {
		if err := tx.Identities().SetPassword(ctx, reset.UserID, hash, now); err != nil {
			return err
		}
		if _, err := tx.Resets().DeleteByUser(ctx, reset.UserID); err != nil {
			return err
		}
		return tx.Audit().Insert(ctx, &entity.CredentialEvent{
			ID:      uuid.NewString(),
			UserID:  reset.UserID,
			ActorID: reset.UserID,
			Kind:    entity.CredentialReset,
			At:      now,
		})
	})
}

func (s *Identity) ChangePassword(ctx context.Context, userID, current, newPassword string) error {
	id, err := s.deps.Store.Identities().FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(id.PasswordHash), []byte(current)); err != nil {
		return errs.ErrWrongPassword
	}
	if len(newPassword) < minPasswordLength {
		return errs.ErrWeakPassword
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	now := s.deps.now()
	return s.deps.Store.WithTransaction(ctx, func(ctx context.Context, tx store.Store) error {
		if err := tx.Identities().SetPassword(ctx, userID, hash, now); err != nil {
			return err
		}
		return tx.Audit().Insert(ctx, &entity.CredentialEvent{
			ID:      uuid.NewString(),
			UserID:  userID,
			ActorID: userID,
			Kind:    entity.CredentialChanged,
			At:      now,
		})
	})
}
