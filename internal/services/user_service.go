package services

import (
	"context"
	"fmt"

	"eduadmin/internal/domain"
)

type UserService struct {
	API API
}

func NewUserService(api API) *UserService { return &UserService{API: api} }

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return getList[domain.User](ctx, s.API, "/users")
}

func (s *UserService) SetRole(ctx context.Context, id string, role domain.Role) error {
	if !role.Valid() {
		return fmt.Errorf("unknown role %q", role)
	}
	return s.API.Patch(ctx, idPath("/users", id), map[string]any{"role": role}, nil)
}

func (s *UserService) SetActive(ctx context.Context, id string, active bool) error {
	return s.API.Patch(ctx, idPath("/users", id), map[string]any{"isActive": active}, nil)
}
