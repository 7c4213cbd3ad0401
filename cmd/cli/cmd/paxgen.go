// Package cmd - paxgen command
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dmc-quote/core/pax"
)

var (
	minAdults int
	maxAdults int
	adults    int
	teens     int
	children  int
	babies    int
)

// paxgenCmd generates pax configurations with auto-provisioned crew
var paxgenCmd = &cobra.Command{
	Use:   "paxgen",
	Short: "Generate pax configurations with crew and rooming",
	Long: `Generate pax compositions with auto-provisioned guides, drivers
and room counts.

With --min/--max, one configuration per adult count in the range is
produced. With --adults (and optionally --teens, --children, --babies),
a single exact composition is produced.

Examples:
  dmc-quote paxgen --min 2 --max 20
  dmc-quote paxgen --adults 2 --children 1`,
	RunE: runPaxgen,
}

func init() {
	paxgenCmd.Flags().IntVar(&minAdults, "min", 0, "minimum adult count for range mode")
	paxgenCmd.Flags().IntVar(&maxAdults, "max", 0, "maximum adult count for range mode")
	paxgenCmd.Flags().IntVar(&adults, "adults", 0, "adult count for exact mode")
	paxgenCmd.Flags().IntVar(&teens, "teens", 0, "teen count for exact mode")
	paxgenCmd.Flags().IntVar(&children, "children", 0, "child count for exact mode")
	paxgenCmd.Flags().IntVar(&babies, "babies", 0, "baby count for exact mode")
}

func runPaxgen(cmd *cobra.Command, args []string) error {
	var configs []pax.Config

	switch {
	case minAdults > 0 && maxAdults >= minAdults:
		configs = pax.GenerateRange(minAdults, maxAdults)
	case adults > 0:
		configs = []pax.Config{pax.Custom(adults, teens, children, babies, 0, 0)}
	default:
		return fmt.Errorf("either --min/--max or --adults is required")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(configs)
}
