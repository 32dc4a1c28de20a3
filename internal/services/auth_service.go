package services

import (
	"context"
	"errors"

	"eduadmin/internal/domain"
)

var (
	ErrBadCreds = errors.New("invalid email or password")
	ErrNotAdmin = errors.New("this account is not an administrator")
)

type AuthService struct {
	API API
}

func NewAuthService(api API) *AuthService { return &AuthService{API: api} }

// Login signs in through the admin portal. Accounts without the admin role
// are refused even when the API accepts the credentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.LoginResult, error) {
	var res domain.LoginResult
	err := s.API.Post(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
		"portal":   "admin",
	}, &res)
	if err != nil {
		return domain.LoginResult{}, err
	}
	if res.AccessToken == "" {
		return domain.LoginResult{}, ErrBadCreds
	}
	if res.User.Role != domain.RoleAdmin {
		return domain.LoginResult{}, ErrNotAdmin
	}
	return res, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	return s.API.Post(ctx, "/auth/logout", nil, nil)
}

func (s *AuthService) Profile(ctx context.Context) (domain.Profile, error) {
	var p domain.Profile
	err := s.API.Get(ctx, "/auth/profile", &p)
	return p, err
}
