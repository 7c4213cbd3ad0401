// Package api - request and response shapes
package api

import (
	"github.com/shopspring/decimal"

	"dmc-quote/core/quote"
	"dmc-quote/core/tarification"
	"dmc-quote/core/types"
)

// QuoteRequest is the body of POST /quote
type QuoteRequest struct {
	// Label is an optional human-readable name stored with the quotation
	Label string `json:"label,omitempty"`

	// Persist stores the computed quotation when true
	Persist bool `json:"persist,omitempty"`

	quote.Input
}

// TarificationRequest is the body of POST /tarification
type TarificationRequest struct {
	Label string `json:"label,omitempty"`

	// SellingPrice is the price set by the seller
	SellingPrice decimal.Decimal `json:"selling_price"`

	// TotalCost is the cost the margin is measured against. When
	// QuotationID is set, the stored quotation's total cost is used
	// instead.
	TotalCost   decimal.Decimal `json:"total_cost,omitempty"`
	QuotationID string          `json:"quotation_id,omitempty"`

	Settings tarification.Settings `json:"settings"`
}

// QuotationSummary is one row of GET /quotations
type QuotationSummary struct {
	ID         string          `json:"id"`
	TenantID   string          `json:"tenant_id"`
	Label      string          `json:"label,omitempty"`
	Currency   types.Currency  `json:"currency"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	CreatedAt  string          `json:"created_at"`
}

// ListResponse is the body of GET /quotations
type ListResponse struct {
	Quotations []QuotationSummary `json:"quotations"`
	Count      int                `json:"count"`
}

// ErrorBody is the error envelope payload
type ErrorBody struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// ErrorResponse is the error envelope
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}
