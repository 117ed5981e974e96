package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bobimat/workshop-tasks/internal/export"
	"github.com/bobimat/workshop-tasks/internal/services"
)

var (
	exportFormat string
	exportRange  string
	exportDir    string
)

var exportLogsCmd = &cobra.Command{
	Use:   "export-logs",
	Short: "Write the audit log to a csv, xlsx or pdf file",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}
		dateRange, err := services.ParseDateRange(exportRange)
		if err != nil {
			return err
		}

		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		audit := services.NewAuditService(store.Logs, export.NewRenderer(cfg.ExportLocation()))
		artifact, err := audit.Export(cmd.Context(), format, dateRange)
		if err != nil {
			return err
		}

		path := filepath.Join(exportDir, artifact.FileName)
		if err := os.WriteFile(path, artifact.Body, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	exportLogsCmd.Flags().StringVar(&exportFormat, "format", string(export.FormatXLSX), "csv, xlsx or pdf")
	exportLogsCmd.Flags().StringVar(&exportRange, "range", "", "last7days, last30days or lastYear")
	exportLogsCmd.Flags().StringVar(&exportDir, "out", ".", "directory the file is written to")
	rootCmd.AddCommand(exportLogsCmd)
}
