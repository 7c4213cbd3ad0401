// Package catalog loads supplier catalogs from HCL files.
//
// A catalog file declares suppliers, their services, seasonal rate
// windows and margin rules:
//
//	supplier "hotel-royal" {
//	  currency = "EUR"
//
//	  service "htl-std-dbl" {
//	    name   = "Standard double room"
//	    nature = "HTL"
//	    mode   = "per_service_day"
//
//	    ratio {
//	      kind       = "ratio"
//	      categories = ["adult", "teen"]
//	      per        = 2
//	    }
//
//	    season {
//	      start = "2026-05-01"
//	      end   = "2026-09-30"
//	      rate  = "45.00"
//	    }
//
//	    margin {
//	      kind    = "margin"
//	      percent = "0.20"
//	    }
//	  }
//	}
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"

	"dmc-quote/core/types"
	"dmc-quote/internal/errors"
)

// Service is one catalog entry: an itinerary-ready service definition
// plus its rate windows and margin rule.
type Service struct {
	Ref      string
	Name     string
	Supplier string
	Nature   types.CostNature
	Mode     types.DurationMode
	Ratio    *types.RatioRule
	Currency types.Currency
	Seasons  []types.SeasonWindow
	Margin   *types.MarginRule

	fixedTimes int
}

// Catalog holds everything loaded from a supplier catalog directory
type Catalog struct {
	Services map[string]*Service
}

// RateTables returns the seasonal rate tables keyed by service ref,
// in the shape the quotation engine consumes.
func (c *Catalog) RateTables() map[string][]types.SeasonWindow {
	tables := make(map[string][]types.SeasonWindow, len(c.Services))
	for ref, svc := range c.Services {
		tables[ref] = svc.Seasons
	}
	return tables
}

// MarginRules returns the per-service margin rules keyed by service ref.
// Services without a margin block are absent from the map.
func (c *Catalog) MarginRules() map[string]types.MarginRule {
	rules := make(map[string]types.MarginRule)
	for ref, svc := range c.Services {
		if svc.Margin != nil {
			rules[ref] = *svc.Margin
		}
	}
	return rules
}

// Loader parses supplier catalog HCL files
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new catalog loader
func NewLoader() *Loader {
	return &Loader{
		parser: hclparse.NewParser(),
	}
}

// LoadDir loads every .hcl file under dir into a single catalog.
// Duplicate service refs across files are an error.
func (l *Loader) LoadDir(dir string) (*Catalog, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, ".hcl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.TypeCatalog, "failed to walk catalog directory", err)
	}
	if len(files) == 0 {
		return nil, errors.Newf(errors.TypeCatalog, "no catalog files found in %s", dir)
	}

	catalog := &Catalog{Services: make(map[string]*Service)}
	for _, file := range files {
		if err := l.loadFile(file, catalog); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// LoadFile loads a single catalog file
func (l *Loader) LoadFile(path string) (*Catalog, error) {
	catalog := &Catalog{Services: make(map[string]*Service)}
	if err := l.loadFile(path, catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

func (l *Loader) loadFile(path string, catalog *Catalog) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.TypeCatalog, "failed to read catalog file", err).
			WithContext("file", path)
	}

	hclFile, diags := l.parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return diagError(path, diags)
	}

	content, diags := hclFile.Body.Content(&hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "supplier", LabelNames: []string{"name"}},
		},
	})
	if diags.HasErrors() {
		return diagError(path, diags)
	}

	for _, block := range content.Blocks {
		if err := l.parseSupplier(path, block, catalog); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) parseSupplier(path string, block *hcl.Block, catalog *Catalog) error {
	supplierName := block.Labels[0]

	content, diags := block.Body.Content(&hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{
			{Name: "currency", Required: true},
		},
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "service", LabelNames: []string{"ref"}},
		},
	})
	if diags.HasErrors() {
		return diagError(path, diags)
	}

	currencyStr, err := stringAttr(content.Attributes["currency"])
	if err != nil {
		return catalogErr(path, supplierName, err)
	}
	currency := types.Currency(currencyStr)
	if !currency.IsValid() {
		return errors.Newf(errors.TypeCatalog, "supplier %q: unsupported currency %q", supplierName, currencyStr).
			WithContext("file", path)
	}

	for _, svcBlock := range content.Blocks {
		svc, err := l.parseService(path, supplierName, currency, svcBlock)
		if err != nil {
			return err
		}
		if _, exists := catalog.Services[svc.Ref]; exists {
			return errors.Newf(errors.TypeCatalog, "duplicate service ref %q", svc.Ref).
				WithContext("file", path)
		}
		catalog.Services[svc.Ref] = svc
	}
	return nil
}

func (l *Loader) parseService(path, supplier string, currency types.Currency, block *hcl.Block) (*Service, error) {
	ref := block.Labels[0]

	content, diags := block.Body.Content(&hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{
			{Name: "name", Required: true},
			{Name: "nature", Required: true},
			{Name: "mode", Required: true},
			{Name: "fixed_times"},
		},
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "ratio"},
			{Type: "season"},
			{Type: "margin"},
		},
	})
	if diags.HasErrors() {
		return nil, diagError(path, diags)
	}

	svc := &Service{
		Ref:      ref,
		Supplier: supplier,
		Currency: currency,
	}

	name, err := attrString(content, "name")
	if err != nil {
		return nil, catalogErr(path, ref, err)
	}
	svc.Name = name

	natureStr, err := attrString(content, "nature")
	if err != nil {
		return nil, catalogErr(path, ref, err)
	}
	svc.Nature = types.CostNature(natureStr)
	if !svc.Nature.IsValid() {
		return nil, errors.Newf(errors.TypeCatalog, "service %q: unknown nature %q", ref, natureStr).
			WithContext("file", path)
	}

	modeStr, err := attrString(content, "mode")
	if err != nil {
		return nil, catalogErr(path, ref, err)
	}
	svc.Mode = types.DurationMode(modeStr)
	if !svc.Mode.IsValid() {
		return nil, errors.Newf(errors.TypeCatalog, "service %q: unknown duration mode %q", ref, modeStr).
			WithContext("file", path)
	}

	if attr, ok := content.Attributes["fixed_times"]; ok {
		times, err := intAttr(attr)
		if err != nil {
			return nil, catalogErr(path, ref, err)
		}
		svc.FixedTimesSet(times)
	}

	for _, sub := range content.Blocks {
		switch sub.Type {
		case "ratio":
			rule, err := l.parseRatio(path, ref, sub)
			if err != nil {
				return nil, err
			}
			svc.Ratio = rule
		case "season":
			window, err := l.parseSeason(path, ref, currency, sub)
			if err != nil {
				return nil, err
			}
			svc.Seasons = append(svc.Seasons, *window)
		case "margin":
			rule, err := l.parseMargin(path, ref, sub)
			if err != nil {
				return nil, err
			}
			svc.Margin = rule
		}
	}

	if len(svc.Seasons) == 0 {
		return nil, errors.Newf(errors.TypeCatalog, "service %q has no season blocks", ref).
			WithContext("file", path)
	}
	return svc, nil
}

// FixedTimesSet records the fixed repetition count for fixed-mode services
func (s *Service) FixedTimesSet(times int) {
	s.fixedTimes = times
}

// FixedTimes returns the fixed repetition count (0 when unset)
func (s *Service) FixedTimes() int {
	return s.fixedTimes
}

// Item builds an itinerary item from the catalog entry for the given
// service dates.
func (s *Service) Item(start, end types.Date) types.ServiceItem {
	return types.ServiceItem{
		Ref:        s.Ref,
		Name:       s.Name,
		Supplier:   s.Supplier,
		Nature:     s.Nature,
		StartDate:  start,
		EndDate:    end,
		Mode:       s.Mode,
		FixedTimes: s.fixedTimes,
		Ratio:      s.Ratio,
	}
}

func (l *Loader) parseRatio(path, ref string, block *hcl.Block) (*types.RatioRule, error) {
	content, diags := block.Body.Content(&hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{
			{Name: "kind", Required: true},
			{Name: "categories"},
			{Name: "per", Required: true},
		},
	})
	if diags.HasErrors() {
		return nil, diagError(path, diags)
	}

	kindStr, err := attrString(content, "kind")
	if err != nil {
		return nil, catalogErr(path, ref, err)
	}
	rule := &types.RatioRule{Kind: types.RatioKind(kindStr)}
	if rule.Kind != types.RatioPerPax && rule.Kind != types.RatioSet {
		return nil, errors.Newf(errors.TypeCatalog, "service %q: unknown ratio kind %q", ref, kindStr).
			WithContext("file", path)
	}

	if rule.Per, err = intAttr(content.Attributes["per"]); err != nil {
		return nil, catalogErr(path, ref, err)
	}
	if rule.Per < 1 {
		return nil, errors.Newf(errors.TypeCatalog, "service %q: ratio per must be at least 1", ref).
			WithContext("file", path)
	}

	if attr, ok := content.Attributes["categories"]; ok {
		cats, err := stringListAttr(attr)
		if err != nil {
			return nil, catalogErr(path, ref, err)
		}
		for _, c := range cats {
			rule.Categories = append(rule.Categories, types.PaxCategory(c))
		}
	}
	return rule, nil
}

func (l *Loader) parseSeason(path, ref string, currency types.Currency, block *hcl.Block) (*types.SeasonWindow, error) {
	content, diags := block.Body.Content(&hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{
			{Name: "start", Required: true},
			{Name: "end", Required: true},
			{Name: "rate", Required: true},
			{Name: "currency"},
		},
	})
	if diags.HasErrors() {
		return nil, diagError(path, diags)
	}

	window := &types.SeasonWindow{Currency: currency}

	startStr, err := attrString(content, "start")
	if err != nil {
		return nil, catalogErr(path, ref, err)
	}
	if window.Start, err = types.ParseDate(startStr); err != nil {
		return nil, errors.Newf(errors.TypeCatalog, "service %q: invalid season start %q", ref, startStr).
			WithContext("file", path)
	}

	endStr, err := attrString(content, "end")
	if err != nil {
		return nil, catalogErr(path, ref, err)
	}
	if window.End, err = types.ParseDate(endStr); err != nil {
		return nil, errors.Newf(errors.TypeCatalog, "service %q: invalid season end %q", ref, endStr).
			WithContext("file", path)
	}

	rateStr, err := attrString(content, "rate")
	if err != nil {
		return nil, catalogErr(path, ref, err)
	}
	if window.Rate, err = decimal.NewFromString(rateStr); err != nil {
		return nil, errors.Newf(errors.TypeCatalog, "service %q: invalid season rate %q", ref, rateStr).
			WithContext("file", path)
	}

	if attr, ok := content.Attributes["currency"]; ok {
		curStr, err := stringAttr(attr)
		if err != nil {
			return nil, catalogErr(path, ref, err)
		}
		window.Currency = types.Currency(curStr)
		if !window.Currency.IsValid() {
			return nil, errors.Newf(errors.TypeCatalog, "service %q: unsupported currency %q", ref, curStr).
				WithContext("file", path)
		}
	}
	return window, nil
}

func (l *Loader) parseMargin(path, ref string, block *hcl.Block) (*types.MarginRule, error) {
	content, diags := block.Body.Content(&hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{
			{Name: "kind", Required: true},
			{Name: "percent"},
			{Name: "amount"},
		},
	})
	if diags.HasErrors() {
		return nil, diagError(path, diags)
	}

	kindStr, err := attrString(content, "kind")
	if err != nil {
		return nil, catalogErr(path, ref, err)
	}

	rule := &types.MarginRule{Kind: types.MarginKind(kindStr)}
	switch rule.Kind {
	case types.MarginOnSell, types.MarkupOnCost:
		attr, ok := content.Attributes["percent"]
		if !ok {
			return nil, errors.Newf(errors.TypeCatalog, "service %q: margin kind %q requires percent", ref, kindStr).
				WithContext("file", path)
		}
		pctStr, err := stringAttr(attr)
		if err != nil {
			return nil, catalogErr(path, ref, err)
		}
		if rule.Percent, err = decimal.NewFromString(pctStr); err != nil {
			return nil, errors.Newf(errors.TypeCatalog, "service %q: invalid margin percent %q", ref, pctStr).
				WithContext("file", path)
		}
	case types.FixedAmount:
		attr, ok := content.Attributes["amount"]
		if !ok {
			return nil, errors.Newf(errors.TypeCatalog, "service %q: margin kind %q requires amount", ref, kindStr).
				WithContext("file", path)
		}
		amtStr, err := stringAttr(attr)
		if err != nil {
			return nil, catalogErr(path, ref, err)
		}
		if rule.Amount, err = decimal.NewFromString(amtStr); err != nil {
			return nil, errors.Newf(errors.TypeCatalog, "service %q: invalid margin amount %q", ref, amtStr).
				WithContext("file", path)
		}
	default:
		return nil, errors.Newf(errors.TypeCatalog, "service %q: unknown margin kind %q", ref, kindStr).
			WithContext("file", path)
	}
	return rule, nil
}

func stringAttr(attr *hcl.Attribute) (string, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return "", fmt.Errorf("%s: %s", attr.Name, diags.Error())
	}
	if val.Type() != cty.String {
		return "", fmt.Errorf("%s: expected string", attr.Name)
	}
	return val.AsString(), nil
}

func attrString(content *hcl.BodyContent, name string) (string, error) {
	attr, ok := content.Attributes[name]
	if !ok {
		return "", fmt.Errorf("missing attribute %s", name)
	}
	return stringAttr(attr)
}

func intAttr(attr *hcl.Attribute) (int, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return 0, fmt.Errorf("%s: %s", attr.Name, diags.Error())
	}
	if val.Type() != cty.Number {
		return 0, fmt.Errorf("%s: expected number", attr.Name)
	}
	i, _ := val.AsBigFloat().Int64()
	return int(i), nil
}

func stringListAttr(attr *hcl.Attribute) ([]string, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%s: %s", attr.Name, diags.Error())
	}
	var out []string
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if elem.Type() != cty.String {
			return nil, fmt.Errorf("%s: expected list of strings", attr.Name)
		}
		out = append(out, elem.AsString())
	}
	return out, nil
}

func catalogErr(path, subject string, err error) error {
	return errors.Newf(errors.TypeCatalog, "%s: %v", subject, err).
		WithContext("file", path)
}

func diagError(path string, diags hcl.Diagnostics) error {
	var parts []string
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		msg := diag.Summary
		if diag.Detail != "" {
			msg += ": " + diag.Detail
		}
		if diag.Subject != nil {
			msg = fmt.Sprintf("%d: %s", diag.Subject.Start.Line, msg)
		}
		parts = append(parts, msg)
	}
	return errors.New(errors.TypeCatalog, strings.Join(parts, "; ")).
		WithContext("file", path)
}
