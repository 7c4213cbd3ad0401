// Package cmd - calculate command
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dmc-quote/adapters/catalog"
	"dmc-quote/adapters/storage"
	"dmc-quote/core/output"
	"dmc-quote/core/quote"
	"dmc-quote/core/types"
	"dmc-quote/internal/config"
	"dmc-quote/internal/logging"
)

var (
	outputFormat string
	catalogDir   string
	saveResult   bool
)

// calculateCmd represents the calculate command
var calculateCmd = &cobra.Command{
	Use:   "calculate [request-file]",
	Short: "Compute a quotation from a request file",
	Long: `Read a quotation request from a JSON file, price it against
seasonal supplier rates, and print the cost breakdown.

When --catalog points at a supplier catalog directory, rate tables and
margin rules missing from the request are filled in from the catalog.

Examples:
  dmc-quote calculate request.json
  dmc-quote calculate --format json request.json
  dmc-quote calculate --catalog ./suppliers request.json`,
	Args: cobra.ExactArgs(1),
	RunE: runCalculate,
}

func init() {
	calculateCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (table, json)")
	calculateCmd.Flags().StringVarP(&catalogDir, "catalog", "c", "", "supplier catalog directory")
	calculateCmd.Flags().BoolVarP(&saveResult, "save", "s", false, "persist the computed quotation")
}

func runCalculate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read request file: %w", err)
	}

	var input quote.Input
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("failed to parse request file: %w", err)
	}

	if catalogDir != "" {
		if err := mergeCatalog(&input, catalogDir); err != nil {
			return err
		}
	} else if dir := config.Get().Pricing.CatalogDir; dir != "" {
		// Configured catalog is optional; an explicit --catalog is not
		if _, err := os.Stat(dir); err == nil {
			if err := mergeCatalog(&input, dir); err != nil {
				return err
			}
		}
	}

	// Configured defaults back any gap the request leaves open
	cfg := config.Get()
	if input.DefaultMargin == nil {
		input.DefaultMargin = &types.MarginRule{
			Kind:    types.MarginOnSell,
			Percent: cfg.Pricing.DefaultMarginPct,
		}
	}
	if len(input.Brackets) == 0 {
		input.Brackets = cfg.Pax.Brackets
	}

	logging.Info("computing quotation")

	quotation, err := quote.NewEngine().Calculate(&input)
	if err != nil {
		return err
	}

	if saveResult {
		if err := persist(cmd.Context(), quotation, args[0]); err != nil {
			return err
		}
	}

	format := output.Format(outputFormat)
	if outputFormat == "" {
		format = output.Format(config.Get().Output.DefaultFormat)
	}
	return output.New(format).Render(os.Stdout, quotation)
}

// mergeCatalog fills rate tables and margin rules the request omits
// from the supplier catalog. Values present in the request win.
func mergeCatalog(input *quote.Input, dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("catalog directory does not exist: %s", dir)
	}

	cat, err := catalog.NewLoader().LoadDir(dir)
	if err != nil {
		return err
	}

	if input.RateTables == nil {
		input.RateTables = cat.RateTables()
	} else {
		for ref, windows := range cat.RateTables() {
			if _, ok := input.RateTables[ref]; !ok {
				input.RateTables[ref] = windows
			}
		}
	}

	if input.MarginRules == nil {
		input.MarginRules = cat.MarginRules()
	} else {
		for ref, rule := range cat.MarginRules() {
			if _, ok := input.MarginRules[ref]; !ok {
				input.MarginRules[ref] = rule
			}
		}
	}

	// Fill descriptive item fields from the catalog entry
	for i, item := range input.Itinerary {
		svc, ok := cat.Services[item.Ref]
		if !ok {
			continue
		}
		filled := svc.Item(item.StartDate, item.EndDate)
		if item.Name != "" {
			filled.Name = item.Name
		}
		if item.Mode != "" {
			filled.Mode = item.Mode
			filled.FixedTimes = item.FixedTimes
		}
		if item.Ratio != nil {
			filled.Ratio = item.Ratio
		}
		input.Itinerary[i] = filled
	}
	return nil
}

func persist(ctx context.Context, q *types.Quotation, label string) error {
	cfg := config.Get().Storage
	store, err := storage.New(storage.Backend(cfg.Backend), cfg.Directory)
	if err != nil {
		return err
	}
	defer store.Close()

	record := storage.NewRecord(q, label)
	if err := store.Save(ctx, record); err != nil {
		return fmt.Errorf("failed to persist quotation: %w", err)
	}
	fmt.Fprintf(os.Stderr, "saved quotation %s\n", record.ID)
	return nil
}
