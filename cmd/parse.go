package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pders01/tagger/internal/report"
	"github.com/pders01/tagger/internal/structured"
)

var parseFormat = report.FormatText

var parseCmd = &cobra.Command{
	Use:   "parse <path>...",
	Short: "Show how names are decomposed",
	Long: `Show the timestamp, filename, tags and extension found in each path,
along with the normalised name. Nothing is changed on disk.

Examples:
  tagger parse "2022_10_27 Some filename -- tag test.pdf"
  tagger parse --format json ~/Documents/*`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().VarP(&parseFormat, "format", "f", "Output format (text, json, yaml, toon)")
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}

	reports := make([]report.Report, 0, len(args))
	for _, path := range args {
		p := structured.ParsePath(path, cfg)
		slog.Debug("Parsed", "path", path, "name", p.Name.String())
		reports = append(reports, report.Build(p))
	}

	return report.Encode(cmd.OutOrStdout(), parseFormat, reports)
}
