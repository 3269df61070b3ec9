package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"opportunity-finder/internal/export"
	"opportunity-finder/internal/storage/exportdir"
	"opportunity-finder/internal/storage/sqlstore"
)

var exportFilter filterFlags

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write matching opportunities to a CSV file under the export directory",
	RunE:  runExport,
}

func init() {
	exportFilter.register(exportCmd, false)
}

func runExport(cmd *cobra.Command, args []string) error {
	f, err := exportFilter.filter()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	f.Limit = cfg.Export.MaxRows
	f.Offset = 0

	dir, err := exportdir.NewFileSystemStorage(cfg.Export)
	if err != nil {
		return err
	}
	store, err := sqlstore.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), queryTimeout)
	defer cancel()
	page, err := store.ListOpportunities(ctx, f)
	if err != nil {
		return err
	}

	path, err := dir.SaveExport(func(w io.Writer) error {
		return export.WriteCSV(w, page.Opportunities)
	})
	if err != nil {
		return err
	}
	if page.Total > int64(len(page.Opportunities)) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s only %d of %d matching rows exported (export.maxRows)\n",
			scoreMid("warning:"), len(page.Opportunities), page.Total)
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
