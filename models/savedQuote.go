package models

import (
	"strings"
	"time"
)

// SavedQuote is one persisted form snapshot. Immutable once created except
// for deletion.
type SavedQuote struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	FormData QuoteFormData `json:"formData"`
	SavedAt  time.Time     `json:"savedAt"`
}

// QuoteStore is the injectable persistence capability for saved quotes.
// Callers depend on this interface, never on a concrete bucket.
type QuoteStore interface {
	List() ([]SavedQuote, error)
	Save(formData QuoteFormData) (*SavedQuote, error)
	GetById(id string) (*SavedQuote, error)
	DeleteById(id string) (bool, error)
	DeleteAll() (bool, error)
}

const untitledQuoteName = "제목 없음"

// quoteDisplayName derives the list label: recipient company + project name,
// falling back to whichever is present.
func quoteDisplayName(formData *QuoteFormData) string {
	recipient := strings.TrimSpace(formData.Recipient.CompanyName)
	project := strings.TrimSpace(formData.ProjectName)

	switch {
	case recipient != "" && project != "":
		return recipient + " - " + project
	case recipient != "":
		return recipient
	case project != "":
		return project
	default:
		return untitledQuoteName
	}
}
