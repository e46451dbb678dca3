package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"usecase-catalog-be/internal/bootstrap"
	"usecase-catalog-be/internal/config"
	"usecase-catalog-be/internal/dto"
	"usecase-catalog-be/internal/pkg/logger"
	"usecase-catalog-be/pkg/database"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var errRowFailures = errors.New("one or more rows failed to import")

type importOptions struct {
	filePath string
	dryRun   bool
}

func newRootCmd() *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load use cases from a CSV file into the catalog",
		Long: `Reads a CSV file with a header row and inserts every row whose use case
name is not already in the catalog. Running it twice over the same file
inserts nothing the second time.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.filePath, "file", "f", "", "CSV file to import (default IMPORT_FILE_PATH)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "validate and check duplicates without inserting")

	return cmd
}

func runImport(ctx context.Context, out io.Writer, opts *importOptions) error {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		return fmt.Errorf("DB_CONNECTION_STRING is not set")
	}

	path := opts.filePath
	if path == "" {
		path = cfg.Import.FilePath
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	importLogger := logger.NewIsolatedLogger(cfg.Import.LogFilePath)
	defer importLogger.Sync()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	container := bootstrap.NewContainer(ctx, db, cfg, importLogger)
	defer container.Close()

	if err := container.ConsumerService.Consume(ctx); err != nil {
		return fmt.Errorf("failed to start event consumer: %w", err)
	}

	importLogger.Info("IMPORT", "Import started", map[string]interface{}{"file": path, "dry_run": opts.dryRun})

	summary, err := container.ImportService.Import(ctx, file, opts.dryRun)
	if summary != nil {
		printSummary(out, path, summary, cfg.Import.LogFilePath)
	}
	if err != nil {
		return err
	}
	if summary.Errors > 0 {
		return errRowFailures
	}
	return nil
}

func printSummary(out io.Writer, path string, s *dto.ImportSummary, logPath string) {
	title := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	mode := ""
	if s.DryRun {
		mode = " (dry run)"
	}

	title.Fprintf(out, "\nImport summary for %s%s\n", path, mode)
	fmt.Fprintf(out, "  Total rows:  %d\n", s.Total)
	green.Fprintf(out, "  Inserted:    %d\n", s.Inserted)
	yellow.Fprintf(out, "  Skipped:     %d\n", s.Skipped)
	yellow.Fprintf(out, "  Duplicates:  %d\n", s.Duplicates)
	if s.Errors > 0 {
		red.Fprintf(out, "  Errors:      %d\n", s.Errors)
	} else {
		fmt.Fprintf(out, "  Errors:      %d\n", s.Errors)
	}

	if len(s.Diagnostics) == 0 {
		return
	}

	title.Fprintf(out, "\nRow diagnostics\n")
	for _, d := range s.Diagnostics {
		name := d.UseCase
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(out, "  line %d [%s]: %s\n", d.Line, name, d.Reason)
	}
	if s.DiagnosticsTruncated {
		yellow.Fprintf(out, "  ... more rows were not imported, see %s\n", logPath)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errRowFailures) {
			color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}
