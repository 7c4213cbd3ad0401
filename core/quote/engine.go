// Package quote - Quotation engine
package quote

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dmc-quote/core/commission"
	"dmc-quote/core/costline"
	"dmc-quote/core/margin"
	"dmc-quote/core/pax"
	"dmc-quote/core/season"
	"dmc-quote/core/temporal"
	"dmc-quote/core/types"
	"dmc-quote/core/vat"
	"dmc-quote/internal/logging"
)

// VATOptions configures the VAT forecast on a quotation
type VATOptions = vat.Config

// CommissionOptions configures the commission breakdown
type CommissionOptions = commission.Config

// Engine computes quotations. It is stateless: every computation
// allocates its own working data, so one Engine may serve concurrent
// callers without locking.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a quotation engine
func NewEngine() *Engine {
	return &Engine{logger: logging.Logger.Named("engine")}
}

// Calculate produces a full quotation from an input snapshot, or a
// typed failure. No partial quotation is ever returned on a fatal
// error; warnings ride along on the lines they concern.
func (e *Engine) Calculate(in *Input) (*types.Quotation, error) {
	start := time.Now()

	inputWarnings, err := in.Validate()
	if err != nil {
		return nil, err
	}

	tripDays, err := temporal.TripDuration(in.TripStart, in.TripEnd)
	if err != nil {
		return nil, err
	}

	counts, err := pax.Resolve(in.Manifest, in.Brackets, in.TripStart)
	if err != nil {
		return nil, err
	}

	lines := make([]types.CostLine, 0, len(in.Itinerary))
	for _, item := range in.Itinerary {
		line, err := e.evaluate(in, item, counts, tripDays)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	q, err := Aggregate(lines, counts)
	if err != nil {
		return nil, err
	}

	q.ID = uuid.NewString()
	q.TenantID = in.TenantID
	q.ComputedAt = time.Now().UTC()
	q.Warnings = append(inputWarnings, q.Warnings...)

	if in.VAT != nil {
		vatBreakdown, err := vat.Compute(q.TotalCost, q.GrandTotal, *in.VAT)
		if err != nil {
			return nil, err
		}
		q.VAT = vatBreakdown
	}
	if in.Commission != nil {
		q.Commissions = commission.Compute(q.GrandTotal, *in.Commission)
	}

	e.logger.Debug("quotation computed",
		zap.String("tenant_id", in.TenantID),
		zap.Int("lines", len(q.Lines)),
		zap.String("grand_total", q.GrandTotal.String()),
		zap.Int("warnings", len(q.Warnings)),
		zap.Duration("elapsed", time.Since(start)))

	return q, nil
}

// evaluate computes one cost line: ratio quantity, temporal
// multiplier, season rate, raw cost, margin.
func (e *Engine) evaluate(in *Input, item types.ServiceItem, counts types.CategoryCounts, tripDays int) (types.CostLine, error) {
	quantity := pax.ApplyRatio(counts, item.Ratio)

	multiplier, err := temporal.Resolve(item, tripDays)
	if err != nil {
		return types.CostLine{}, err
	}

	rate, currency, rateWarnings, err := season.SelectRate(item.Ref, item.StartDate, in.RateTables[item.Ref])
	if err != nil {
		return types.CostLine{}, err
	}

	line := costline.Compute(item, quantity, multiplier, rate, currency)

	rule, usedDefault := in.marginFor(item.Ref)
	sell, marginWarnings, err := margin.Apply(item.Ref, line.RawCost, rule)
	if err != nil {
		return types.CostLine{}, err
	}
	line.SellPrice = sell
	line.Margin = rule

	line.Warnings = append(line.Warnings, rateWarnings...)
	line.Warnings = append(line.Warnings, marginWarnings...)
	if usedDefault {
		line.Warnings = append(line.Warnings, types.Warning{
			Code:       types.WarnDefaultMargin,
			ServiceRef: item.Ref,
			Message:    "no margin rule configured; trip default applied",
		})
	}
	return line, nil
}
