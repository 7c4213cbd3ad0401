// Package cmd - tarification command
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"dmc-quote/core/commission"
	"dmc-quote/core/tarification"
)

var (
	sellingPrice  string
	totalCost     string
	commissionPct string
	vatRatePct    string
	vatMode       string
)

// tarificationCmd derives the real margin from a seller-chosen price
var tarificationCmd = &cobra.Command{
	Use:   "tarification",
	Short: "Analyze the margin behind a selling price",
	Long: `Given a selling price and the total cost of a quotation, derive
the real margin with commission and VAT forecasts.

Examples:
  dmc-quote tarification --price 1300 --cost 1000
  dmc-quote tarification --price 1300 --cost 1000 --commission 11.5 --vat 20`,
	RunE: runTarification,
}

func init() {
	tarificationCmd.Flags().StringVar(&sellingPrice, "price", "", "selling price (required)")
	tarificationCmd.Flags().StringVar(&totalCost, "cost", "", "total cost (required)")
	tarificationCmd.Flags().StringVar(&commissionPct, "commission", "0", "seller commission percent")
	tarificationCmd.Flags().StringVar(&vatRatePct, "vat", "0", "VAT rate percent (0 disables the forecast)")
	tarificationCmd.Flags().StringVar(&vatMode, "vat-mode", "on_margin", "VAT mode (on_margin, on_selling_price)")
	tarificationCmd.MarkFlagRequired("price")
	tarificationCmd.MarkFlagRequired("cost")
}

func runTarification(cmd *cobra.Command, args []string) error {
	price, err := decimal.NewFromString(sellingPrice)
	if err != nil {
		return fmt.Errorf("invalid price %q", sellingPrice)
	}
	cost, err := decimal.NewFromString(totalCost)
	if err != nil {
		return fmt.Errorf("invalid cost %q", totalCost)
	}
	commPct, err := decimal.NewFromString(commissionPct)
	if err != nil {
		return fmt.Errorf("invalid commission %q", commissionPct)
	}
	vatPct, err := decimal.NewFromString(vatRatePct)
	if err != nil {
		return fmt.Errorf("invalid vat rate %q", vatRatePct)
	}

	line, err := tarification.Analyze("", price, cost, tarification.Settings{
		Commission: commission.Config{
			PrimaryPct:   commPct,
			PrimaryLabel: "seller",
		},
		VATRatePct: vatPct,
		VATMode:    vatMode,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(line)
}
