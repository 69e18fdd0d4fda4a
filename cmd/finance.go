package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/divestwatch/internal/model"
)

var financeCmd = &cobra.Command{
	Use:   "finance <company>",
	Short: "Print the event-window market data for a company",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := buildService()
		query := strings.Join(args, " ")

		fw, err := svc.Finance(cmd.Context(), query)
		if err != nil {
			return eris.Wrapf(err, "finance window for %q", query)
		}

		out := struct {
			Center  string                `json:"center_date"`
			Before  []model.PriceSample   `json:"before_stock_data"`
			After   []model.PriceSample   `json:"after_stock_data"`
			BTrend  model.Trend           `json:"before_trend"`
			ATrend  model.Trend           `json:"after_trend"`
			Revenue []model.RevenueSample `json:"revenue_data"`
			Errors  map[string]string     `json:"errors,omitempty"`
		}{
			Center:  fw.CenterDate.Format("2006-01-02"),
			Before:  fw.Before,
			After:   fw.After,
			BTrend:  fw.BeforeTrend,
			ATrend:  fw.AfterTrend,
			Revenue: fw.Revenue,
		}
		if len(fw.Notes) > 0 {
			out.Errors = fw.Notes
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	rootCmd.AddCommand(financeCmd)
}
