package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"eduadmin/internal/domain"
	"eduadmin/internal/services"
	"eduadmin/internal/validate"
)

type docRow struct {
	domain.Document
	PreviewKind string
	PreviewURL  string
}

type docTab struct {
	Status string
	Label  string
	Count  int
	Active bool
}

type DocumentHandler struct {
	Documents *services.DocumentService
	auditor
}

func statusFilter(s string) domain.DocumentStatus {
	st := domain.DocumentStatus(s)
	if !st.Valid() {
		return ""
	}
	return st
}

func (h *DocumentHandler) show(c *fiber.Ctx, status int, filter domain.DocumentStatus, docs []domain.Document, errMsg, notice string) error {
	counts := services.CountByStatus(docs)
	tabs := []docTab{{Status: "", Label: "All", Count: counts[""], Active: filter == ""}}
	for _, s := range []domain.DocumentStatus{domain.DocPending, domain.DocApproved, domain.DocRejected} {
		tabs = append(tabs, docTab{Status: string(s), Label: s.Label(), Count: counts[s], Active: filter == s})
	}
	shown := services.FilterDocuments(docs, filter)
	rows := make([]docRow, 0, len(shown))
	for _, d := range shown {
		kind, u := d.Preview()
		rows = append(rows, docRow{Document: d, PreviewKind: string(kind), PreviewURL: u})
	}
	return render(c.Status(status), "documents", fiber.Map{
		"Title":  "Documents",
		"Tabs":   tabs,
		"Rows":   rows,
		"Filter": string(filter),
		"Err":    errMsg,
		"Notice": notice,
	})
}

// GET /documents?status=
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	filter := statusFilter(c.Query("status"))
	docs, err := h.Documents.List(c.UserContext())
	if err != nil {
		return apiFailure(c, "documents.list.fail", err, func(status int, msg string) error {
			return h.show(c, status, filter, nil, msg, "")
		})
	}
	return h.show(c, fiber.StatusOK, filter, docs, "", notices[c.Query("notice")])
}

// POST /documents/:id/approve
func (h *DocumentHandler) Approve(c *fiber.Ctx) error {
	return h.review(c, domain.DocApproved)
}

// POST /documents/:id/reject
func (h *DocumentHandler) Reject(c *fiber.Ctx) error {
	return h.review(c, domain.DocRejected)
}

// review applies a moderation decision, then shows the list as the API
// now has it. Nothing is updated locally before the API answers.
func (h *DocumentHandler) review(c *fiber.Ctx, to domain.DocumentStatus) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Document not found")
	}
	filter := statusFilter(c.FormValue("status"))
	var err error
	if to == domain.DocApproved {
		err = h.Documents.Approve(c.UserContext(), id)
	} else {
		err = h.Documents.Reject(c.UserContext(), id)
	}
	if err != nil {
		return apiFailure(c, "documents."+string(to)+".fail", err, func(status int, msg string) error {
			docs, _ := h.Documents.List(c.UserContext())
			return h.show(c, status, filter, docs, msg, "")
		})
	}
	h.record(c, "documents."+string(to), "document", id, nil)

	q := url.Values{"notice": {string(to)}}
	if filter != "" {
		q.Set("status", string(filter))
	}
	return c.Redirect("/documents?" + q.Encode())
}
