package services

import (
	"context"
	"sort"

	"eduadmin/internal/domain"
)

type DocumentService struct {
	API API
}

func NewDocumentService(api API) *DocumentService { return &DocumentService{API: api} }

// List returns every document, newest first.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	docs, err := getList[domain.Document](ctx, s.API, "/documents")
	if err != nil {
		return nil, err
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}

func (s *DocumentService) Approve(ctx context.Context, id string) error {
	return s.API.Patch(ctx, idPath("/documents", id)+"/approve", nil, nil)
}

func (s *DocumentService) Reject(ctx context.Context, id string) error {
	return s.API.Patch(ctx, idPath("/documents", id)+"/reject", nil, nil)
}

// FilterDocuments keeps the documents with the given status. An empty
// status keeps everything.
func FilterDocuments(docs []domain.Document, status domain.DocumentStatus) []domain.Document {
	if status == "" {
		return docs
	}
	out := make([]domain.Document, 0, len(docs))
	for _, d := range docs {
		if d.Status == status {
			out = append(out, d)
		}
	}
	return out
}

// CountByStatus tallies documents per status; the "" key is the total.
func CountByStatus(docs []domain.Document) map[domain.DocumentStatus]int {
	out := map[domain.DocumentStatus]int{"": len(docs)}
	for _, d := range docs {
		out[d.Status]++
	}
	return out
}
