// Package output renders quotations for humans and machines.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"dmc-quote/core/types"
)

// Format represents output format type
type Format string

const (
	// FormatTable is a human-readable terminal table
	FormatTable Format = "table"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the quotation
	Render(w io.Writer, q *types.Quotation) error
}

// New returns the formatter for a format, defaulting to the table
func New(format Format) Formatter {
	if format == FormatJSON {
		return jsonFormatter{}
	}
	return tableFormatter{}
}

type jsonFormatter struct{}

func (jsonFormatter) Format() Format { return FormatJSON }

func (jsonFormatter) Render(w io.Writer, q *types.Quotation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(q)
}

type tableFormatter struct{}

func (tableFormatter) Format() Format { return FormatTable }

func (tableFormatter) Render(w io.Writer, q *types.Quotation) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "QUOTATION %s\t(%s)\n", q.ID, q.Currency)
	fmt.Fprintf(tw, "SERVICE\tQTY\tUNITS\tRATE\tCOST\tSELL\n")

	for _, sub := range q.Subtotals {
		for _, idx := range sub.Lines {
			line := q.Lines[idx]
			fmt.Fprintf(tw, "%s %s\t%d\t%d\t%s\t%s\t%s\n",
				line.Nature, line.Name, line.Quantity, line.Multiplier,
				line.UnitRate.StringFixed(2), line.RawCost.StringFixed(2),
				line.SellPrice.StringFixed(2))
		}
		fmt.Fprintf(tw, "subtotal %s\t\t\t\t%s\t%s\n",
			sub.Nature, sub.Cost.StringFixed(2), sub.Sell.StringFixed(2))
	}

	fmt.Fprintf(tw, "TOTAL\t\t\t\t%s\t%s\n",
		q.TotalCost.StringFixed(2), q.GrandTotal.StringFixed(2))
	if q.PaxCounts.Total() > 0 {
		fmt.Fprintf(tw, "per person\t\t\t\t\t%s\n", q.PricePerPerson.StringFixed(2))
		fmt.Fprintf(tw, "per paying person\t\t\t\t\t%s\n", q.PricePerPayingPerson.StringFixed(2))
	}
	if q.VAT != nil {
		fmt.Fprintf(tw, "VAT (%s)\t\t\t\t\t%s\n", q.VAT.Mode, q.VAT.Net.StringFixed(2))
		fmt.Fprintf(tw, "price TTC\t\t\t\t\t%s\n", q.VAT.PriceTTC.StringFixed(2))
	}

	for _, warning := range q.Warnings {
		fmt.Fprintf(tw, "! %s\t%s\t%s\n", warning.Code, warning.ServiceRef, warning.Message)
	}

	return tw.Flush()
}
