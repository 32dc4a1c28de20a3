package domain

import (
	"encoding/json"
	"math"
	"net/url"
	"path"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type DocumentStatus string

const (
	DocPending  DocumentStatus = "pending"
	DocApproved DocumentStatus = "approved"
	DocRejected DocumentStatus = "rejected"
)

func (s DocumentStatus) Valid() bool {
	return s == DocPending || s == DocApproved || s == DocRejected
}

func (s DocumentStatus) Label() string {
	switch s {
	case DocApproved:
		return "Approved"
	case DocPending:
		return "Pending"
	case DocRejected:
		return "Rejected"
	}
	return string(s)
}

// Price.Amount accepts numbers and numeric strings (decimal columns come
// back quoted).
type Price struct {
	Amount   json.Number `json:"amount"`
	Currency string      `json:"currency"`
}

func (p *Price) value() float64 {
	if p == nil {
		return 0
	}
	f, err := p.Amount.Float64()
	if err != nil {
		return 0
	}
	return f
}

// currency is the ISO code, VND when unset.
func (p *Price) currency() string {
	if p == nil || strings.TrimSpace(p.Currency) == "" {
		return "VND"
	}
	return strings.ToUpper(strings.TrimSpace(p.Currency))
}

type Author struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type Document struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Status    DocumentStatus `json:"status"`
	Price     *Price         `json:"price,omitempty"`
	Author    *Author        `json:"author,omitempty"`
	Category  *Ref           `json:"category,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	FileURL   string         `json:"fileUrl"`
}

var (
	vnd  = message.NewPrinter(language.Vietnamese)
	intl = message.NewPrinter(language.English)
)

// PriceLabel renders the price, or "Free" when there is none. VND is
// whole dong with Vietnamese grouping; other currencies keep two
// decimals and their code.
func (d Document) PriceLabel() string {
	amount := d.Price.value()
	if amount == 0 {
		return "Free"
	}
	if cur := d.Price.currency(); cur != "VND" {
		return intl.Sprintf("%.2f", amount) + " " + cur
	}
	return vnd.Sprintf("%d", int64(math.Round(amount))) + " ₫"
}

func (d Document) AuthorName() string {
	if d.Author == nil || d.Author.FullName == "" {
		return "Unknown"
	}
	return d.Author.FullName
}

func (d Document) CategoryName() string {
	if d.Category == nil || d.Category.Name == "" {
		return "Uncategorized"
	}
	return d.Category.Name
}

func (d Document) CreatedLabel() string {
	if d.CreatedAt.IsZero() {
		return ""
	}
	return d.CreatedAt.Format("02/01/2006")
}

type PreviewKind string

const (
	PreviewPDF         PreviewKind = "pdf"
	PreviewImage       PreviewKind = "image"
	PreviewOffice      PreviewKind = "office"
	PreviewUnsupported PreviewKind = "unsupported"
)

// Preview picks how a viewer should show the file. Office files go
// through the Google viewer, which cannot reach files served from
// localhost; those come back as unsupported with the raw URL.
func (d Document) Preview() (PreviewKind, string) {
	raw := strings.SplitN(d.FileURL, "?", 2)[0]
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(raw)), ".")
	switch ext {
	case "pdf":
		return PreviewPDF, d.FileURL
	case "jpg", "jpeg", "png", "gif", "webp", "svg":
		return PreviewImage, d.FileURL
	case "doc", "docx", "xls", "xlsx", "ppt", "pptx":
		if isLocalURL(d.FileURL) {
			return PreviewUnsupported, d.FileURL
		}
		return PreviewOffice, "https://docs.google.com/viewer?url=" + url.QueryEscape(d.FileURL) + "&embedded=true"
	}
	return PreviewUnsupported, d.FileURL
}

func isLocalURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	h := u.Hostname()
	return h == "localhost" || h == "127.0.0.1"
}
