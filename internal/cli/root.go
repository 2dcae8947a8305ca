package cli

import (
	"context"
	"os"

	"github.com/labomak/dashboard/internal/bootstrap"
	"github.com/labomak/dashboard/internal/config"
	"github.com/spf13/cobra"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	envFile string
	offline bool
}

// NewRootCmd builds the labomak command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "labomak",
		Short: "Labomak teklif, ürün ve müşteri paneli",
		Long: `labomak manages the Labomak offers, products and customers tables
from the terminal: an interactive dashboard and XLSX exports of every list.`,
		// SilenceUsage is set to true to prevent printing usage message on errors
		// handled by us (e.g. an unreachable backend)
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env", ".env", "env file to read configuration from")
	cmd.PersistentFlags().BoolVar(&opts.offline, "offline", false, "keep every table in memory instead of PostgreSQL")

	cmd.AddCommand(newTUICmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	return cmd
}

// Execute runs the command tree. This is called by main.main().
func Execute(version string) {
	cmd := NewRootCmd()
	cmd.Version = version
	cmd.SetVersionTemplate(`{{printf "labomak version %s\n" .Version}}`)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func (o *rootOptions) open(cmd *cobra.Command) (context.Context, *config.Config, *bootstrap.Backend, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.LoadFile(o.envFile)
	backend, err := bootstrap.Open(ctx, cfg, o.offline)
	if err != nil {
		return nil, nil, nil, err
	}
	return ctx, cfg, backend, nil
}
