package services

import (
	"context"
	"errors"
	"fmt"

	"eduadmin/internal/domain"
	"eduadmin/internal/tree"
	"eduadmin/internal/validate"
)

var (
	// ErrInvalidParent wraps the tree package's reparent errors.
	ErrInvalidParent = errors.New("invalid parent")
	// ErrInvalidSlug: no slug was given and the name does not produce one.
	ErrInvalidSlug = errors.New("invalid slug")
)

type CategoryInput struct {
	Name        string
	Slug        string
	Description string
	Order       int
	ParentID    string
	// OrderParent is the parent Order was suggested for on a create form.
	// When it differs from ParentID the order is recomputed.
	OrderParent string
}

// SlugOrDefault is the slug that will be sent: the given one, or one
// generated from the name.
func (in CategoryInput) SlugOrDefault() string {
	if in.Slug != "" {
		return in.Slug
	}
	return validate.Slugify(in.Name)
}

func (in CategoryInput) payload() map[string]any {
	p := map[string]any{
		"name":        in.Name,
		"slug":        in.SlugOrDefault(),
		"description": in.Description,
		"order":       in.Order,
		"parent":      nil,
	}
	if in.ParentID != "" {
		p["parentId"] = in.ParentID
		p["parent"] = map[string]string{"id": in.ParentID}
	}
	return p
}

type CategoryService struct {
	API API
}

func NewCategoryService(api API) *CategoryService { return &CategoryService{API: api} }

// List is the flat list; parents arrive as embedded relations.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return getList[domain.Category](ctx, s.API, "/categories")
}

// Tree fetches the server-built nesting and flattens it so it can be
// handled as an arena like every other list.
func (s *CategoryService) Tree(ctx context.Context) ([]domain.Category, error) {
	nested, err := getList[domain.Category](ctx, s.API, "/categories/tree")
	if err != nil {
		return nil, err
	}
	return tree.Flatten(nested,
		func(c domain.Category) []domain.Category { return c.Children },
		func(c domain.Category, parent string) domain.Category {
			c.ParentID, c.Children = parent, nil
			return c
		},
	), nil
}

func (s *CategoryService) Load(ctx context.Context) (Snapshot[domain.Category], error) {
	display, err := s.Tree(ctx)
	if err != nil {
		return Snapshot[domain.Category]{}, err
	}
	flat, err := s.List(ctx)
	if err != nil {
		return Snapshot[domain.Category]{}, err
	}
	return Snapshot[domain.Category]{Display: tree.Build(display), All: tree.Build(flat), Flat: flat}, nil
}

// Save creates (id == "") or patches a category after checking that the
// chosen parent exists and is not the category or one of its descendants.
// A category that lands under a different parent gets the next order
// among its new siblings. It returns the id of the saved category.
func (s *CategoryService) Save(ctx context.Context, id string, in CategoryInput) (string, error) {
	if _, ok := validate.Slug(in.SlugOrDefault()); !ok {
		return "", ErrInvalidSlug
	}
	flat, err := s.List(ctx)
	if err != nil {
		return "", err
	}
	forest := tree.Build(flat)
	if err := forest.CanReparent(id, in.ParentID); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidParent, err)
	}
	in.Order = orderAfterMove(forest, flat, id, in.ParentID, in.OrderParent, in.Order)
	if id == "" {
		return create(ctx, s.API, "/categories", in.payload())
	}
	return id, s.API.Patch(ctx, idPath("/categories", id), in.payload(), nil)
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.API.Delete(ctx, idPath("/categories", id))
}

// Normalize asks the API to renumber every sibling group 1..n.
func (s *CategoryService) Normalize(ctx context.Context) error {
	return s.API.Post(ctx, "/categories/auto-increment", nil, nil)
}
