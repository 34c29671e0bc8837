package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mzhdanov/bugtrack/internal/events"
	"github.com/mzhdanov/bugtrack/internal/hash"
	"github.com/mzhdanov/bugtrack/internal/logging"
	"github.com/mzhdanov/bugtrack/internal/models"
	"github.com/mzhdanov/bugtrack/internal/repository"
	"github.com/mzhdanov/bugtrack/internal/revocation"
	"github.com/mzhdanov/bugtrack/internal/token"
)

type AuthService struct {
	Users    UserStore
	Codec    *token.Codec
	Revoked  revocation.Registry
	Producer *events.Producer
}

func sanitize(user *models.User) *models.User {
	u := *user
	u.PasswordHash = ""
	return &u
}

func (s *AuthService) publish(ctx context.Context, key string, event map[string]interface{}) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, events.TopicUserEvents, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}

// Login checks credentials, records last_login and issues a session token.
// Unknown usernames and wrong passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	user, err := s.Users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			l.Warn("login failed", "reason", "unknown username")
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !user.IsActive {
		l.Warn("login failed", "reason", "account inactive")
		return nil, "", ErrAccountInactive
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login failed", "reason", "wrong password")
		return nil, "", ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.Users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, "", err
	}
	user.LastLogin = &now

	raw, err := s.Codec.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, "", err
	}

	s.publish(ctx, fmt.Sprint(user.ID), map[string]interface{}{
		"type":     "user_logged_in",
		"user_id":  user.ID,
		"username": user.Username,
	})

	return sanitize(user), raw, nil
}

// ResolveSession turns a presented token into the current user. Revocation
// is checked first so a logged-out token never reaches signature handling.
func (s *AuthService) ResolveSession(ctx context.Context, raw string) (*models.User, error) {
	revoked, err := s.Revoked.IsRevoked(ctx, raw)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenInvalidated
	}

	claims, err := s.Codec.Verify(raw)
	if err != nil {
		return nil, err
	}

	user, err := s.Users.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	return sanitize(user), nil
}

// Logout never fails. The raw string is revoked whether or not it verifies,
// so retried and stale logouts stay benign no-ops.
func (s *AuthService) Logout(ctx context.Context, raw string) {
	if _, err := s.Codec.Verify(raw); err != nil {
		logging.FromContext(ctx).Info("logout with invalid token", "error", err)
	}
	if err := s.Revoked.Revoke(ctx, raw); err != nil {
		logging.FromContext(ctx).Error("revocation failed", "error", err)
	}
}

type RegisterInput struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	taken, err := s.Users.UsernameOrEmailTaken(ctx, in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUserExists
	}

	pwHash, err := hash.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     in.Username,
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: pwHash,
		Role:         models.RoleUser,
		IsActive:     true,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, fmt.Sprint(user.ID), map[string]interface{}{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	})

	return sanitize(user), nil
}
