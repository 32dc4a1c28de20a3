package services

import (
	"context"
	"fmt"

	"eduadmin/internal/domain"
	"eduadmin/internal/tree"
)

type MenuInput struct {
	Label    string
	Link     string
	Icon     string
	Order    int
	ParentID string

	// OrderParent is the parent Order was suggested for on a create form.
	OrderParent string
}

func (in MenuInput) payload() map[string]any {
	p := map[string]any{
		"label":    in.Label,
		"link":     in.Link,
		"icon":     in.Icon,
		"order":    in.Order,
		"parentId": nil,
	}
	if in.ParentID != "" {
		p["parentId"] = in.ParentID
	}
	return p
}

type MenuService struct {
	API API
}

func NewMenuService(api API) *MenuService { return &MenuService{API: api} }

func (s *MenuService) List(ctx context.Context) ([]domain.Menu, error) {
	return getList[domain.Menu](ctx, s.API, "/menus")
}

func (s *MenuService) Tree(ctx context.Context) ([]domain.Menu, error) {
	nested, err := getList[domain.Menu](ctx, s.API, "/menus/tree")
	if err != nil {
		return nil, err
	}
	return tree.Flatten(nested,
		func(m domain.Menu) []domain.Menu { return m.Children },
		func(m domain.Menu, parent string) domain.Menu {
			m.ParentID, m.Children = parent, nil
			return m
		},
	), nil
}

func (s *MenuService) Load(ctx context.Context) (Snapshot[domain.Menu], error) {
	display, err := s.Tree(ctx)
	if err != nil {
		return Snapshot[domain.Menu]{}, err
	}
	flat, err := s.List(ctx)
	if err != nil {
		return Snapshot[domain.Menu]{}, err
	}
	return Snapshot[domain.Menu]{Display: tree.Build(display), All: tree.Build(flat), Flat: flat}, nil
}

// Save creates or patches a menu item; see CategoryService.Save for the
// parent and order rules.
func (s *MenuService) Save(ctx context.Context, id string, in MenuInput) (string, error) {
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
		return create(ctx, s.API, "/menus", in.payload())
	}
	return id, s.API.Patch(ctx, idPath("/menus", id), in.payload(), nil)
}

func (s *MenuService) Delete(ctx context.Context, id string) error {
	return s.API.Delete(ctx, idPath("/menus", id))
}

func (s *MenuService) Normalize(ctx context.Context) error {
	return s.API.Post(ctx, "/menus/auto-increment", nil, nil)
}

// LinkOption is one entry of the menu link picker.
type LinkOption struct {
	Value string
	Label string
}

// LinkOptions offers the home page and one link per category. A current
// link that matches none of them is kept as its own option.
func LinkOptions(cats []domain.Category, current string) []LinkOption {
	opts := []LinkOption{{Value: "/", Label: "Home"}}
	known := current == "" || current == "/"
	for _, c := range cats {
		v := "/categories/" + c.Slug
		opts = append(opts, LinkOption{Value: v, Label: c.Name})
		if v == current {
			known = true
		}
	}
	if !known {
		opts = append(opts, LinkOption{Value: current, Label: current + " (current)"})
	}
	return opts
}
