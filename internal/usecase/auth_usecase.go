package usecase

import (
	"context"
	"crypto/subtle"
	"strings"

	"portfolio-api/internal/config"
	"portfolio-api/internal/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

type AuthUsecase interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Auth issues bearer tokens for the single configured admin identity.
// There is no user table and no refresh flow; a session is one token with
// a fixed lifetime.
type Auth struct {
	cfg config.AuthConfig
	jwt jwt.Service
}

func NewAuthUsecase(cfg config.AuthConfig, jwtSvc jwt.Service) *Auth {
	return &Auth{cfg: cfg, jwt: jwtSvc}
}

func (u *Auth) Login(_ context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	want := strings.TrimSpace(strings.ToLower(u.cfg.AdminEmail))

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(want)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(u.cfg.AdminPasswordHash), []byte(password))
	if !emailOK || passErr != nil {
		return "", ErrUnauthorized
	}

	token, err := u.jwt.Generate(email)
	if err != nil {
		return "", ErrInternal
	}
	return token, nil
}
