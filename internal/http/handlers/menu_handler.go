package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"eduadmin/internal/domain"
	"eduadmin/internal/page"
	"eduadmin/internal/services"
	"eduadmin/internal/tree"
	"eduadmin/internal/validate"
)

type MenuDraft struct {
	Label       string
	Link        string
	Icon        string
	Order       int
	ParentID    string
	OrderParent string
}

func menuDraftOf(m domain.Menu) MenuDraft {
	return MenuDraft{
		Label:       m.Label,
		Link:        m.Link,
		Icon:        m.Icon,
		Order:       m.Order,
		ParentID:    m.ParentRef(),
		OrderParent: m.ParentRef(),
	}
}

// parseMenuDraft reads the edit form. A typed custom link wins over the
// picked one.
func parseMenuDraft(c *fiber.Ctx) (MenuDraft, string) {
	link := strings.TrimSpace(c.FormValue("link_custom"))
	if link == "" {
		link = strings.TrimSpace(c.FormValue("link"))
	}
	d := MenuDraft{
		Label:       strings.TrimSpace(c.FormValue("label")),
		Link:        link,
		Icon:        validate.Text(c.FormValue("icon"), 60),
		ParentID:    strings.TrimSpace(c.FormValue("parent_id")),
		OrderParent: strings.TrimSpace(c.FormValue("prefill_parent")),
	}
	order, okOrder := validate.Order(c.FormValue("order"))
	d.Order = order
	_, okLink := validate.Link(d.Link)
	switch {
	case !nameOK(d.Label):
		return d, "Label is required and must be at most 120 characters."
	case !okLink:
		return d, "Link must be a site path such as /categories/math or an http(s) URL."
	case !okOrder:
		return d, "Order must be a positive whole number."
	case d.ParentID != "" && !idOK(d.ParentID):
		return d, "Unknown parent menu."
	}
	return d, ""
}

type MenuHandler struct {
	Menus      *services.MenuService
	Categories *services.CategoryService
	auditor
}

func (h *MenuHandler) show(c *fiber.Ctx, status int, st *page.State[MenuDraft], snap services.Snapshot[domain.Menu]) error {
	rows := treeRows(snap.Rows(), func(m domain.Menu) treeRow {
		return treeRow{Label: m.Label, Detail: m.Link, Active: m.IsActive}
	})
	data := fiber.Map{
		"Title": "Menus",
		"State": st,
		"Rows":  rows,
	}
	if st.Editing() {
		data["Parents"] = parentOptions(snap.ParentCandidates(st.EditingID),
			func(m domain.Menu) string { return m.Label }, st.Draft.ParentID)
		// Without categories the picker keeps home and the custom link.
		cats, ok := pickerCategories(c, h.Categories, "menus.links.fail")
		if !ok {
			return reauth(c)
		}
		data["Links"] = linkOptions(services.LinkOptions(cats, st.Draft.Link), st.Draft.Link)
	}
	return render(c.Status(status), "menus", data)
}

func linkOptions(opts []services.LinkOption, selected string) []option {
	out := make([]option, 0, len(opts))
	for _, o := range opts {
		out = append(out, option{Value: o.Value, Label: o.Label, Selected: o.Value == selected})
	}
	return out
}

func (h *MenuHandler) reload(c *fiber.Ctx) services.Snapshot[domain.Menu] {
	snap, err := h.Menus.Load(c.UserContext())
	if err != nil {
		return services.Snapshot[domain.Menu]{}
	}
	return snap
}

// GET /menus
func (h *MenuHandler) List(c *fiber.Ctx) error {
	st := page.New[MenuDraft]()
	snap, err := h.Menus.Load(c.UserContext())
	if err != nil {
		return apiFailure(c, "menus.list.fail", err, func(status int, msg string) error {
			st.Err = msg
			return h.show(c, status, st, snap)
		})
	}
	_ = st.Loaded()
	st.Notice = notices[c.Query("notice")]
	if c.Query("new") == "1" {
		parent := c.Query("parent")
		if _, ok := snap.Find(parent); !ok {
			parent = ""
		}
		_ = st.Create(MenuDraft{Link: "/", Order: snap.NextOrder(parent), ParentID: parent, OrderParent: parent})
	}
	return h.show(c, fiber.StatusOK, st, snap)
}

// GET /menus/:id/edit
func (h *MenuHandler) EditForm(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Menu item not found")
	}
	snap, err := h.Menus.Load(c.UserContext())
	if err != nil {
		return apiFailure(c, "menus.list.fail", err, func(status int, msg string) error {
			st := page.New[MenuDraft]()
			st.Err = msg
			return h.show(c, status, st, snap)
		})
	}
	m, found := snap.Find(id)
	if !found {
		return notFound(c, "Menu item not found")
	}
	st := page.New[MenuDraft]()
	_ = st.Loaded()
	_ = st.Edit(id, menuDraftOf(m))
	return h.show(c, fiber.StatusOK, st, snap)
}

// GET /menus/next-order?parent=
func (h *MenuHandler) NextOrder(c *fiber.Ctx) error {
	flat, err := h.Menus.List(c.UserContext())
	if err != nil {
		return apiFailure(c, "menus.next_order.fail", err, func(status int, msg string) error {
			return c.Status(status).JSON(fiber.Map{"error": msg})
		})
	}
	return c.JSON(fiber.Map{"order": tree.NextOrder(flat, c.Query("parent"))})
}

// POST /menus and POST /menus/:id
func (h *MenuHandler) Save(c *fiber.Ctx) error {
	id := c.Params("id")
	if id != "" && !idOK(id) {
		return notFound(c, "Menu item not found")
	}
	draft, problem := parseMenuDraft(c)

	st := page.New[MenuDraft]()
	_ = st.Loaded()
	if id == "" {
		_ = st.Create(draft)
	} else {
		_ = st.Edit(id, draft)
	}
	_ = st.Submit(draft)

	if problem != "" {
		_ = st.Failed(problem)
		return h.show(c, fiber.StatusUnprocessableEntity, st, h.reload(c))
	}
	savedID, err := h.Menus.Save(c.UserContext(), id, services.MenuInput{
		Label:       draft.Label,
		Link:        draft.Link,
		Icon:        draft.Icon,
		Order:       draft.Order,
		ParentID:    draft.ParentID,
		OrderParent: draft.OrderParent,
	})
	if err != nil {
		return apiFailure(c, "menus.save.fail", err, func(status int, msg string) error {
			_ = st.Failed(msg)
			return h.show(c, status, st, h.reload(c))
		})
	}
	_ = st.Succeeded()

	action, notice := "menus.update", "updated"
	if id == "" {
		action, notice = "menus.create", "created"
	}
	h.record(c, action, "menu", savedID, map[string]any{"label": draft.Label, "link": draft.Link, "parent": draft.ParentID})
	return c.Redirect("/menus?notice=" + notice)
}

// POST /menus/:id/delete
func (h *MenuHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Menu item not found")
	}
	if err := h.Menus.Delete(c.UserContext(), id); err != nil {
		return apiFailure(c, "menus.delete.fail", err, func(status int, msg string) error {
			st := page.New[MenuDraft]()
			_ = st.Loaded()
			st.Err = msg
			return h.show(c, status, st, h.reload(c))
		})
	}
	h.record(c, "menus.delete", "menu", id, nil)
	return c.Redirect("/menus?notice=deleted")
}

// POST /menus/normalize
func (h *MenuHandler) Normalize(c *fiber.Ctx) error {
	if err := h.Menus.Normalize(c.UserContext()); err != nil {
		return apiFailure(c, "menus.normalize.fail", err, func(status int, msg string) error {
			st := page.New[MenuDraft]()
			_ = st.Loaded()
			st.Err = msg
			return h.show(c, status, st, h.reload(c))
		})
	}
	h.record(c, "menus.normalize", "menu", "", nil)
	return c.Redirect("/menus?notice=normalized")
}
