package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/labomak/dashboard/internal/application/dashboard"
	"github.com/labomak/dashboard/internal/application/service"
	"github.com/spf13/cobra"
)

type exportOptions struct {
	output  string
	search  string
	filters []string
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	eo := &exportOptions{}
	cmd := &cobra.Command{
		Use:       "export <teklifler|urunler|musteriler>",
		Short:     "Export a module list as an XLSX workbook",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{dashboard.ModuleOffers, dashboard.ModuleProducts, dashboard.ModuleCustomers},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, _, backend, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer backend.Close()
			return runExport(ctx, service.NewExportService(backend.Gateway), args[0], eo, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&eo.output, "output", "o", "", "file to write (default <module>-<date>.xlsx)")
	cmd.Flags().StringVarP(&eo.search, "search", "q", "", "free-text search over the list")
	cmd.Flags().StringArrayVar(&eo.filters, "filter", nil, "column=value filter, repeatable; ranges use column_min / column_max")
	return cmd
}

func runExport(ctx context.Context, svc *service.ExportService, module string, eo *exportOptions, out io.Writer) error {
	defs, err := svc.Filters(module)
	if err != nil {
		return err
	}
	values := map[string]string{"q": eo.search}
	for _, f := range eo.filters {
		column, value, ok := strings.Cut(f, "=")
		if !ok || column == "" {
			return fmt.Errorf("invalid filter %q, expected column=value", f)
		}
		values[column] = value
	}
	criteria, err := dashboard.CriteriaFromQuery(defs, func(k string) string { return values[k] })
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	name, err := svc.Export(ctx, module, criteria, &buf)
	if err != nil {
		return err
	}
	path := eo.output
	if path == "" {
		path = name
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(out, "%s yazıldı\n", path)
	return nil
}
