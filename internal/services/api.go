package services

import (
	"context"
	"encoding/json"
	"net/url"

	"eduadmin/internal/apiclient"
	"eduadmin/internal/tree"
)

// API is the subset of *apiclient.Client the services call.
type API interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

func getList[T any](ctx context.Context, api API, path string) ([]T, error) {
	var raw json.RawMessage
	if err := api.Get(ctx, path, &raw); err != nil {
		return nil, err
	}
	var out []T
	if err := apiclient.DecodeList(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func idPath(base, id string) string { return base + "/" + url.PathEscape(id) }

// create posts body and returns the id of the created entity. An API that
// answers without the entity yields "".
func create(ctx context.Context, api API, path string, body any) (string, error) {
	var created struct {
		ID string `json:"id"`
	}
	if err := api.Post(ctx, path, body, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// orderAfterMove keeps order unless the node ends up under a parent other
// than the one order was chosen for: the stored parent for an update,
// orderParent for a create. Then it is the next order among the new
// siblings.
func orderAfterMove[T tree.Item](forest *tree.Forest[T], flat []T, id, parentID, orderParent string, order int) int {
	from := orderParent
	if id != "" {
		cur, ok := forest.Find(id)
		if !ok {
			return order
		}
		from = cur.ParentRef()
	}
	if from == parentID {
		return order
	}
	return tree.NextOrder(flat, parentID)
}

// Snapshot is everything a tree page needs from one load: the display
// forest (from the /tree endpoint) and the flat list used for parent
// candidates, order suggestions and reparent checks.
type Snapshot[T tree.Item] struct {
	Display *tree.Forest[T]
	All     *tree.Forest[T]
	Flat    []T
}

func (s Snapshot[T]) Rows() []tree.Row[T] {
	if s.Display == nil {
		return nil
	}
	return s.Display.Rows()
}

func (s Snapshot[T]) NextOrder(parentID string) int { return tree.NextOrder(s.Flat, parentID) }

func (s Snapshot[T]) ParentCandidates(editingID string) []T {
	if s.All == nil {
		return nil
	}
	return s.All.ParentCandidates(editingID)
}

func (s Snapshot[T]) Find(id string) (T, bool) {
	if s.All == nil {
		var zero T
		return zero, false
	}
	return s.All.Find(id)
}
