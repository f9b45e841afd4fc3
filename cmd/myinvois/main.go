package main

import (
	"fmt"
	"os"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/myinvois/internal/config"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "myinvois",
	Short: "LHDN MyInvois e-Invoice compliance validation engine",
	Long: `myinvois checks Malaysian e-Invoices against the LHDN MyInvois rules before
submission: TIN formats, MSIC industry eligibility, B2C consolidation policy and
invoice arithmetic.

Run "myinvois serve" for the HTTP API, or use the one-shot commands against the
built-in industry dataset.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func RegisterSnowflake(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.NodeID)
}
