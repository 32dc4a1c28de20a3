package services

import (
	"context"

	"eduadmin/internal/domain"
)

type ContentBlockInput struct {
	Title      string
	Type       domain.BlockType
	Order      int
	IsVisible  bool
	Limit      int
	CategoryID string
}

func (in ContentBlockInput) payload() map[string]any {
	limit := in.Limit
	if limit <= 0 {
		limit = domain.DefaultBlockLimit
	}
	cfg := map[string]any{"limit": limit}
	if in.Type == domain.BlockCategory && in.CategoryID != "" {
		cfg["categoryId"] = in.CategoryID
	}
	return map[string]any{
		"title":     in.Title,
		"type":      in.Type,
		"order":     in.Order,
		"isVisible": in.IsVisible,
		"config":    cfg,
	}
}

type ContentBlockService struct {
	API API
}

func NewContentBlockService(api API) *ContentBlockService { return &ContentBlockService{API: api} }

func (s *ContentBlockService) List(ctx context.Context) ([]domain.ContentBlock, error) {
	return getList[domain.ContentBlock](ctx, s.API, "/content-blocks")
}

// Save creates (id == "") or patches a block and returns its id.
func (s *ContentBlockService) Save(ctx context.Context, id string, in ContentBlockInput) (string, error) {
	if id == "" {
		return create(ctx, s.API, "/content-blocks", in.payload())
	}
	return id, s.API.Patch(ctx, idPath("/content-blocks", id), in.payload(), nil)
}

func (s *ContentBlockService) Delete(ctx context.Context, id string) error {
	return s.API.Delete(ctx, idPath("/content-blocks", id))
}
