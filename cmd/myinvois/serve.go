package main

import (
	"github.com/smallbiznis/myinvois/internal/clock"
	"github.com/smallbiznis/myinvois/internal/config"
	"github.com/smallbiznis/myinvois/internal/migration"
	"github.com/smallbiznis/myinvois/internal/observability"
	"github.com/smallbiznis/myinvois/internal/server"
	"github.com/smallbiznis/myinvois/pkg/db"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the compliance HTTP API",
	Long: `Start the HTTP API on HTTP_ADDR (default :8080).

Set DATABASE_TYPE to postgres, mysql or sqlite to load industry codes from a
database; the default "none" serves the built-in dataset. INDUSTRY_OVERRIDES_FILE
points at a YAML/JSON file whose "industries" list is layered on top and reloaded
on change.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		newApp().Run()
	},
}

func newApp() *fx.App {
	return fx.New(
		// Core Infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// HTTP surface and compliance domains
		server.Module,
	)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
