package domain

// Ref is a relation the API embeds as {id, ...}.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type Category struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Order       int        `json:"order"`
	ParentID    string     `json:"parentId,omitempty"`
	Parent      *Ref       `json:"parent,omitempty"`
	Children    []Category `json:"children,omitempty"`
}

func (c Category) NodeID() string { return c.ID }
func (c Category) SortOrder() int { return c.Order }

// ParentRef prefers the explicit parentId and falls back to the embedded
// parent relation.
func (c Category) ParentRef() string {
	if c.ParentID != "" {
		return c.ParentID
	}
	if c.Parent != nil {
		return c.Parent.ID
	}
	return ""
}

type Menu struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Link     string `json:"link"`
	Icon     string `json:"icon,omitempty"`
	Order    int    `json:"order"`
	ParentID string `json:"parentId,omitempty"`
	Parent   *Ref   `json:"parent,omitempty"`
	IsActive bool   `json:"isActive"`
	Children []Menu `json:"children,omitempty"`
}

func (m Menu) NodeID() string { return m.ID }
func (m Menu) SortOrder() int { return m.Order }

func (m Menu) ParentRef() string {
	if m.ParentID != "" {
		return m.ParentID
	}
	if m.Parent != nil {
		return m.Parent.ID
	}
	return ""
}
