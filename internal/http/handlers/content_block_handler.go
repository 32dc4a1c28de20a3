package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"eduadmin/internal/domain"
	"eduadmin/internal/page"
	"eduadmin/internal/services"
	"eduadmin/internal/validate"
)

type BlockDraft struct {
	Title      string
	Type       domain.BlockType
	Order      int
	IsVisible  bool
	Limit      int
	CategoryID string
}

func blockDraftOf(b domain.ContentBlock) BlockDraft {
	return BlockDraft{
		Title:      b.Title,
		Type:       b.Type,
		Order:      b.Order,
		IsVisible:  b.IsVisible,
		Limit:      b.Limit(),
		CategoryID: b.CategoryID(),
	}
}

func parseBlockDraft(c *fiber.Ctx) (BlockDraft, string) {
	d := BlockDraft{
		Title:      strings.TrimSpace(c.FormValue("title")),
		Type:       domain.BlockType(strings.TrimSpace(c.FormValue("type"))),
		IsVisible:  validate.Bool(c.FormValue("is_visible")),
		Limit:      validate.Limit(c.FormValue("limit"), domain.DefaultBlockLimit),
		CategoryID: strings.TrimSpace(c.FormValue("category_id")),
	}
	order, okOrder := validate.Order(c.FormValue("order"))
	d.Order = order
	if d.Type != domain.BlockCategory {
		d.CategoryID = ""
	}
	switch {
	case !nameOK(d.Title):
		return d, "Title is required and must be at most 120 characters."
	case !d.Type.Valid():
		return d, "Pick a block type."
	case !okOrder:
		return d, "Order must be a positive whole number."
	case d.Type == domain.BlockCategory && !idOK(d.CategoryID):
		return d, "Pick the category this block shows."
	}
	return d, ""
}

type blockRow struct {
	domain.ContentBlock
	CategoryName string
}

type ContentBlockHandler struct {
	Blocks     *services.ContentBlockService
	Categories *services.CategoryService
	auditor
}

func (h *ContentBlockHandler) show(c *fiber.Ctx, status int, st *page.State[BlockDraft], blocks []domain.ContentBlock) error {
	cats, ok := pickerCategories(c, h.Categories, "blocks.categories.fail")
	if !ok {
		return reauth(c)
	}
	names := make(map[string]string, len(cats))
	catOpts := make([]option, 0, len(cats))
	for _, cat := range cats {
		names[cat.ID] = cat.Name
		catOpts = append(catOpts, option{Value: cat.ID, Label: cat.Name, Selected: cat.ID == st.Draft.CategoryID})
	}
	rows := make([]blockRow, 0, len(blocks))
	for _, b := range blocks {
		rows = append(rows, blockRow{ContentBlock: b, CategoryName: names[b.CategoryID()]})
	}
	types := make([]option, 0, len(domain.BlockTypes))
	for _, t := range domain.BlockTypes {
		types = append(types, option{Value: string(t), Label: string(t), Selected: t == st.Draft.Type})
	}
	return render(c.Status(status), "content_blocks", fiber.Map{
		"Title":      "Content blocks",
		"State":      st,
		"Rows":       rows,
		"Types":      types,
		"Categories": catOpts,
	})
}

func (h *ContentBlockHandler) reload(c *fiber.Ctx) []domain.ContentBlock {
	blocks, _ := h.Blocks.List(c.UserContext())
	return blocks
}

// GET /content-blocks
func (h *ContentBlockHandler) List(c *fiber.Ctx) error {
	st := page.New[BlockDraft]()
	blocks, err := h.Blocks.List(c.UserContext())
	if err != nil {
		return apiFailure(c, "blocks.list.fail", err, func(status int, msg string) error {
			st.Err = msg
			return h.show(c, status, st, nil)
		})
	}
	_ = st.Loaded()
	st.Notice = notices[c.Query("notice")]
	if c.Query("new") == "1" {
		_ = st.Create(BlockDraft{
			Type:      domain.BlockLatest,
			Order:     len(blocks) + 1,
			IsVisible: true,
			Limit:     domain.DefaultBlockLimit,
		})
	}
	return h.show(c, fiber.StatusOK, st, blocks)
}

// GET /content-blocks/:id/edit
func (h *ContentBlockHandler) EditForm(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Content block not found")
	}
	blocks, err := h.Blocks.List(c.UserContext())
	if err != nil {
		return apiFailure(c, "blocks.list.fail", err, func(status int, msg string) error {
			st := page.New[BlockDraft]()
			st.Err = msg
			return h.show(c, status, st, nil)
		})
	}
	for _, b := range blocks {
		if b.ID == id {
			st := page.New[BlockDraft]()
			_ = st.Loaded()
			_ = st.Edit(id, blockDraftOf(b))
			return h.show(c, fiber.StatusOK, st, blocks)
		}
	}
	return notFound(c, "Content block not found")
}

// POST /content-blocks and POST /content-blocks/:id
func (h *ContentBlockHandler) Save(c *fiber.Ctx) error {
	id := c.Params("id")
	if id != "" && !idOK(id) {
		return notFound(c, "Content block not found")
	}
	draft, problem := parseBlockDraft(c)

	st := page.New[BlockDraft]()
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
	savedID, err := h.Blocks.Save(c.UserContext(), id, services.ContentBlockInput{
		Title:      draft.Title,
		Type:       draft.Type,
		Order:      draft.Order,
		IsVisible:  draft.IsVisible,
		Limit:      draft.Limit,
		CategoryID: draft.CategoryID,
	})
	if err != nil {
		return apiFailure(c, "blocks.save.fail", err, func(status int, msg string) error {
			_ = st.Failed(msg)
			return h.show(c, status, st, h.reload(c))
		})
	}
	_ = st.Succeeded()

	action, notice := "blocks.update", "updated"
	if id == "" {
		action, notice = "blocks.create", "created"
	}
	h.record(c, action, "content_block", savedID, map[string]any{"title": draft.Title, "type": string(draft.Type)})
	return c.Redirect("/content-blocks?notice=" + notice)
}

// POST /content-blocks/:id/delete
func (h *ContentBlockHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Content block not found")
	}
	if err := h.Blocks.Delete(c.UserContext(), id); err != nil {
		return apiFailure(c, "blocks.delete.fail", err, func(status int, msg string) error {
			st := page.New[BlockDraft]()
			_ = st.Loaded()
			st.Err = msg
			return h.show(c, status, st, h.reload(c))
		})
	}
	h.record(c, "blocks.delete", "content_block", id, nil)
	return c.Redirect("/content-blocks?notice=deleted")
}
