package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/divestwatch/internal/config"
	"github.com/sells-group/divestwatch/internal/dataset"
	"github.com/sells-group/divestwatch/internal/finance"
	"github.com/sells-group/divestwatch/internal/marketdata"
	"github.com/sells-group/divestwatch/internal/match"
	"github.com/sells-group/divestwatch/internal/service"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "divestwatch",
	Short: "Boycott and divestment company lookup service",
	Long:  "Resolves free-text company queries against the boycott/divestment reference dataset and computes event-window market performance from an external time-series source.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// buildService loads the reference dataset and wires the query service.
func buildService() *service.Service {
	ix := dataset.Load(cfg.Dataset.CSVPath)
	resolver := match.NewResolver(ix, cfg.Match)
	market := marketdata.New(cfg.Market)
	builder := finance.NewBuilder(market, time.Duration(cfg.Market.TimeoutSecs)*time.Second)
	return service.New(ix, resolver, builder)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
