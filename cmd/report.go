package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vinforge/forgedfate/internal/config"
	"github.com/vinforge/forgedfate/internal/models"
	"github.com/vinforge/forgedfate/internal/services"
)

const (
	formatText = "text"
	formatXLSX = "xlsx"
)

// latestResults serves the newest recorded results as the recent results of the report.
type latestResults map[models.DestinationKind]models.TestResult

func (l latestResults) LastResults() map[models.DestinationKind]models.TestResult {
	return l
}

func NewReportCommand(cfg *config.Configuration) *cobra.Command {
	var (
		outputDir string
		kindArg   string
		format    string
	)

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Download the connectivity diagnostic report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var kind *models.DestinationKind
			if kindArg != "" {
				k, err := parseKindArg(kindArg)
				if err != nil {
					return err
				}
				kind = &k
			}
			if format != formatText && format != formatXLSX {
				return fmt.Errorf("invalid format: %s", format)
			}

			ctx := cmd.Context()

			st, configSrv, err := loadConfigs(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			latest, err := services.NewHistoryService(st).Latest(ctx)
			if err != nil {
				return fmt.Errorf("failed to read recent results: %w", err)
			}

			client, err := newTesterClient(cfg)
			if err != nil {
				return err
			}

			diagnosticSrv := services.NewDiagnosticService(client, configSrv, latestResults(latest))
			doc := diagnosticSrv.GenerateReport(ctx, kind)

			var (
				name    string
				content []byte
			)
			switch format {
			case formatXLSX:
				name, content, err = diagnosticSrv.ExportXLSX(doc)
				if err != nil {
					return err
				}
			default:
				name, content = diagnosticSrv.ExportText(doc)
			}

			if err := os.MkdirAll(outputDir, 0o750); err != nil {
				return fmt.Errorf("failed to create output folder: %w", err)
			}
			path := filepath.Join(outputDir, name)
			if err := os.WriteFile(path, content, 0o600); err != nil {
				return fmt.Errorf("failed to write the report: %w", err)
			}

			out := cmd.OutOrStdout()
			if doc.Error != nil {
				color.New(color.FgRed, color.Bold).Fprintln(out, doc.Error.Message)
				fmt.Fprintln(out, doc.Error.Suggestion)
				fmt.Fprintf(out, "partial report written to %s\n", path)
				return errors.New("diagnostic report is incomplete")
			}

			color.New(color.FgGreen).Fprint(out, "report written to ")
			fmt.Fprintln(out, path)
			return nil
		},
	}

	reportCmd.Flags().StringVar(&outputDir, "output-dir", ".", "Folder the report is written to")
	reportCmd.Flags().StringVar(&kindArg, "kind", "", "Restrict the report to one destination kind")
	reportCmd.Flags().StringVar(&format, "format", formatText, "Report format: text or xlsx")
	registerStoreFlags(reportCmd, cfg)
	registerTesterFlags(reportCmd, cfg)

	return reportCmd
}
