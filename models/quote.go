package models

import (
	"fmt"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/quotes_backend/utils"
	"github.com/shopspring/decimal"
)

type QuoteType string

const (
	QuoteTypeReceipt QuoteType = "receipt"
	QuoteTypeInvoice QuoteType = "invoice"
)

// QuoteItem is one billable row of the quotation. SupplyPrice and Tax are
// derived from Quantity and UnitPrice and are never editable on their own;
// BuildQuote rederives them no matter what the caller sent.
type QuoteItem struct {
	Name        string          `json:"name"`
	Spec        string          `json:"spec"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	SupplyPrice decimal.Decimal `json:"supplyPrice"`
	Tax         decimal.Decimal `json:"tax"`
	Note        string          `json:"note"`
}

// RecalculateAmounts rederives the two computed columns in place.
func (item *QuoteItem) RecalculateAmounts() {
	item.SupplyPrice, item.Tax = utils.CalculateLineAmounts(item.Quantity, item.UnitPrice)
}

type SupplierInfo struct {
	RegistrationNumber string `json:"registrationNumber"`
	CompanyName        string `json:"companyName"`
	Representative     string `json:"representative"`
	Address            string `json:"address"`
	BusinessType       string `json:"businessType"`
	BusinessItem       string `json:"businessItem"`
	Contact            string `json:"contact"`
}

type RecipientInfo struct {
	CompanyName    string `json:"companyName"`
	Representative string `json:"representative"`
}

// QuoteFormData is the editable form snapshot. It is what gets persisted to
// the saved-quotes bucket and what the export endpoint accepts.
type QuoteFormData struct {
	InvoiceNumber string        `json:"invoiceNumber"`
	QuoteType     QuoteType     `json:"quoteType"`
	Date          string        `json:"date" binding:"required"`
	ProjectName   string        `json:"projectName"`
	Recipient     RecipientInfo `json:"recipient"`
	Supplier      SupplierInfo  `json:"supplier"`
	Items         []QuoteItem   `json:"items" binding:"required"`
	StampImage    string        `json:"stampImage,omitempty"`
}

// QuoteData is the frozen document handed to the export pipeline. The date is
// already formatted and the totals already derived; it lives only for the
// duration of one export and is discarded after.
type QuoteData struct {
	InvoiceNumber    string
	Date             string
	Type             QuoteType
	ProjectName      string
	Recipient        RecipientInfo
	Supplier         SupplierInfo
	Items            []QuoteItem
	TotalSupplyPrice decimal.Decimal
	TotalTax         decimal.Decimal
	TotalAmount      decimal.Decimal
	StampImage       string
}

// ValidationError carries per-field messages for the form layer.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("quote validation failed on %d field(s)", len(e.Fields))
}

const quoteDateLayout = "2006-01-02"

// FormatQuoteDate freezes a date into the long Korean form printed on the
// document, e.g. "2026년 9월 1일".
func FormatQuoteDate(t time.Time) string {
	return fmt.Sprintf("%d년 %d월 %d일", t.Year(), int(t.Month()), t.Day())
}

// CalculateQuoteTotals aggregates rederived line amounts. Order-independent;
// an empty list yields zeros.
func CalculateQuoteTotals(items []QuoteItem) (decimal.Decimal, decimal.Decimal, decimal.Decimal) {
	totalSupplyPrice := decimal.Zero
	totalTax := decimal.Zero

	for _, item := range items {
		supplyPrice, tax := utils.CalculateLineAmounts(item.Quantity, item.UnitPrice)
		totalSupplyPrice = totalSupplyPrice.Add(supplyPrice)
		totalTax = totalTax.Add(tax)
	}

	return totalSupplyPrice, totalTax, totalSupplyPrice.Add(totalTax)
}

// validate input for building a document. Mirrors the export gating rules of
// the form layer so the server never trusts the client.
func (input *QuoteFormData) validate() (time.Time, error) {
	fields := make(map[string]string)

	issueDate, err := time.Parse(quoteDateLayout, strings.TrimSpace(input.Date))
	if err != nil {
		fields["date"] = "issue date is required in YYYY-MM-DD form"
	}
	if strings.TrimSpace(input.ProjectName) == "" {
		fields["projectName"] = "project name is required"
	}
	if strings.TrimSpace(input.Recipient.CompanyName) == "" {
		fields["recipient.companyName"] = "recipient company name is required"
	}
	if strings.TrimSpace(input.Supplier.RegistrationNumber) == "" {
		fields["supplier.registrationNumber"] = "supplier registration number is required"
	}
	if strings.TrimSpace(input.Supplier.CompanyName) == "" {
		fields["supplier.companyName"] = "supplier company name is required"
	}
	if strings.TrimSpace(input.Supplier.Representative) == "" {
		fields["supplier.representative"] = "supplier representative is required"
	}

	if len(input.Items) == 0 {
		fields["items"] = "at least one item is required"
	}
	for i, item := range input.Items {
		if strings.TrimSpace(item.Name) == "" {
			fields[fmt.Sprintf("items[%d].name", i)] = "item name is required"
		}
		if !item.UnitPrice.IsPositive() {
			fields[fmt.Sprintf("items[%d].unitPrice", i)] = "unit price must be greater than zero"
		}
	}

	if len(fields) > 0 {
		return time.Time{}, &ValidationError{Fields: fields}
	}
	return issueDate, nil
}

// BuildQuote assembles validated form state into a frozen document. Pure
// transform: per-line amounts and aggregate totals are always recomputed from
// quantity and unit price here, and the issue date is formatted exactly once.
func BuildQuote(input *QuoteFormData) (*QuoteData, error) {
	issueDate, err := input.validate()
	if err != nil {
		return nil, err
	}

	quoteType := input.QuoteType
	if quoteType != QuoteTypeReceipt {
		quoteType = QuoteTypeInvoice
	}

	items := make([]QuoteItem, len(input.Items))
	copy(items, input.Items)
	for i := range items {
		items[i].RecalculateAmounts()
	}

	totalSupplyPrice, totalTax, totalAmount := CalculateQuoteTotals(items)

	return &QuoteData{
		InvoiceNumber:    input.InvoiceNumber,
		Date:             FormatQuoteDate(issueDate),
		Type:             quoteType,
		ProjectName:      input.ProjectName,
		Recipient:        input.Recipient,
		Supplier:         input.Supplier,
		Items:            items,
		TotalSupplyPrice: totalSupplyPrice,
		TotalTax:         totalTax,
		TotalAmount:      totalAmount,
		StampImage:       input.StampImage,
	}, nil
}
