package cmd

import (
	"fmt"
	"os"

	"vault-reconciler/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "vault-reconciler",
	Short: "Data Vault Reconciliation Service",
	Long: `Vault Reconciler validates that records survive every layer of a Data
Vault warehouse: from the raw sources through hubs, links and satellites
into the business views consumers read. It counts rows per layer, runs
set-difference queries between adjacent layers, and reports where records
went missing.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting.
		// Console format matches CLI expectations, and the debug level
		// configuration gives ISO8601 timestamps instead of epoch.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
