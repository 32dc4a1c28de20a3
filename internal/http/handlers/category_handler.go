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

type CategoryDraft struct {
	Name        string
	Slug        string
	Description string
	Order       int
	ParentID    string
	// OrderParent is the parent the Order field was filled in for.
	OrderParent string
}

func categoryDraftOf(cat domain.Category) CategoryDraft {
	return CategoryDraft{
		Name:        cat.Name,
		Slug:        cat.Slug,
		Description: cat.Description,
		Order:       cat.Order,
		ParentID:    cat.ParentRef(),
		OrderParent: cat.ParentRef(),
	}
}

// parseCategoryDraft reads the edit form. The second result is the
// first validation message, or "".
func parseCategoryDraft(c *fiber.Ctx) (CategoryDraft, string) {
	d := CategoryDraft{
		Name:        strings.TrimSpace(c.FormValue("name")),
		Slug:        strings.TrimSpace(c.FormValue("slug")),
		Description: validate.Text(c.FormValue("description"), 1000),
		ParentID:    strings.TrimSpace(c.FormValue("parent_id")),
		OrderParent: strings.TrimSpace(c.FormValue("prefill_parent")),
	}
	order, okOrder := validate.Order(c.FormValue("order"))
	d.Order = order
	switch {
	case !nameOK(d.Name):
		return d, "Name is required and must be at most 120 characters."
	case d.Slug != "" && !slugOK(d.Slug):
		return d, "Slug may only use lowercase letters, digits, dashes and underscores."
	case d.Slug == "" && !slugOK(validate.Slugify(d.Name)):
		return d, "Enter a slug. None can be made from this name."
	case !okOrder:
		return d, "Order must be a positive whole number."
	case d.ParentID != "" && !idOK(d.ParentID):
		return d, "Unknown parent category."
	}
	return d, ""
}

func nameOK(s string) bool {
	_, ok := validate.Name(s)
	return ok
}

func slugOK(s string) bool {
	_, ok := validate.Slug(s)
	return ok
}

func idOK(s string) bool {
	_, ok := validate.ID(s)
	return ok
}

type CategoryHandler struct {
	Categories *services.CategoryService
	auditor
}

func (h *CategoryHandler) show(c *fiber.Ctx, status int, st *page.State[CategoryDraft], snap services.Snapshot[domain.Category]) error {
	rows := treeRows(snap.Rows(), func(cat domain.Category) treeRow {
		return treeRow{Label: cat.Name, Detail: cat.Slug}
	})
	parents := parentOptions(snap.ParentCandidates(st.EditingID),
		func(cat domain.Category) string { return cat.Name }, st.Draft.ParentID)
	return render(c.Status(status), "categories", fiber.Map{
		"Title":   "Categories",
		"State":   st,
		"Rows":    rows,
		"Parents": parents,
	})
}

// reload fetches a fresh snapshot for a page that is about to show an
// error. A failing reload leaves the table empty.
func (h *CategoryHandler) reload(c *fiber.Ctx) services.Snapshot[domain.Category] {
	snap, err := h.Categories.Load(c.UserContext())
	if err != nil {
		return services.Snapshot[domain.Category]{}
	}
	return snap
}

// GET /categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	st := page.New[CategoryDraft]()
	snap, err := h.Categories.Load(c.UserContext())
	if err != nil {
		return apiFailure(c, "categories.list.fail", err, func(status int, msg string) error {
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
		_ = st.Create(CategoryDraft{Order: snap.NextOrder(parent), ParentID: parent, OrderParent: parent})
	}
	return h.show(c, fiber.StatusOK, st, snap)
}

// GET /categories/:id/edit
func (h *CategoryHandler) EditForm(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Category not found")
	}
	snap, err := h.Categories.Load(c.UserContext())
	if err != nil {
		return apiFailure(c, "categories.list.fail", err, func(status int, msg string) error {
			st := page.New[CategoryDraft]()
			st.Err = msg
			return h.show(c, status, st, snap)
		})
	}
	cat, found := snap.Find(id)
	if !found {
		return notFound(c, "Category not found")
	}
	st := page.New[CategoryDraft]()
	_ = st.Loaded()
	_ = st.Edit(id, categoryDraftOf(cat))
	return h.show(c, fiber.StatusOK, st, snap)
}

// GET /categories/next-order?parent=
func (h *CategoryHandler) NextOrder(c *fiber.Ctx) error {
	flat, err := h.Categories.List(c.UserContext())
	if err != nil {
		return apiFailure(c, "categories.next_order.fail", err, func(status int, msg string) error {
			return c.Status(status).JSON(fiber.Map{"error": msg})
		})
	}
	return c.JSON(fiber.Map{"order": tree.NextOrder(flat, c.Query("parent"))})
}

// POST /categories and POST /categories/:id
func (h *CategoryHandler) Save(c *fiber.Ctx) error {
	id := c.Params("id")
	if id != "" && !idOK(id) {
		return notFound(c, "Category not found")
	}
	draft, problem := parseCategoryDraft(c)

	st := page.New[CategoryDraft]()
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
	savedID, err := h.Categories.Save(c.UserContext(), id, services.CategoryInput{
		Name:        draft.Name,
		Slug:        draft.Slug,
		Description: draft.Description,
		Order:       draft.Order,
		ParentID:    draft.ParentID,
		OrderParent: draft.OrderParent,
	})
	if err != nil {
		return apiFailure(c, "categories.save.fail", err, func(status int, msg string) error {
			_ = st.Failed(msg)
			return h.show(c, status, st, h.reload(c))
		})
	}
	_ = st.Succeeded()

	action, notice := "categories.update", "updated"
	if id == "" {
		action, notice = "categories.create", "created"
	}
	h.record(c, action, "category", savedID, map[string]any{"name": draft.Name, "parent": draft.ParentID})
	return c.Redirect("/categories?notice=" + notice)
}

// POST /categories/:id/delete
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Category not found")
	}
	if err := h.Categories.Delete(c.UserContext(), id); err != nil {
		return apiFailure(c, "categories.delete.fail", err, func(status int, msg string) error {
			st := page.New[CategoryDraft]()
			_ = st.Loaded()
			st.Err = msg
			return h.show(c, status, st, h.reload(c))
		})
	}
	h.record(c, "categories.delete", "category", id, nil)
	return c.Redirect("/categories?notice=deleted")
}

// POST /categories/normalize
func (h *CategoryHandler) Normalize(c *fiber.Ctx) error {
	if err := h.Categories.Normalize(c.UserContext()); err != nil {
		return apiFailure(c, "categories.normalize.fail", err, func(status int, msg string) error {
			st := page.New[CategoryDraft]()
			_ = st.Loaded()
			st.Err = msg
			return h.show(c, status, st, h.reload(c))
		})
	}
	h.record(c, "categories.normalize", "category", "", nil)
	return c.Redirect("/categories?notice=normalized")
}
