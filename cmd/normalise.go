package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pders01/tagger/internal/edit"
	"github.com/pders01/tagger/internal/i18n"
	"github.com/pders01/tagger/internal/structured"
)

var normaliseApply bool

var normaliseCmd = &cobra.Command{
	Use:     "normalise <path>...",
	Aliases: []string{"normalize"},
	Short:   "Rewrite timestamps with the canonical format",
	Long: `Rewrite the timestamp of each name with the first configured format of
its kind. Filenames, tags and directories are left as they are.

Without --apply the new names are only printed.

Examples:
  tagger normalise "2022_10_27 scan.pdf"
  tagger normalise --apply ~/Scans/*`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNormalise,
}

func init() {
	rootCmd.AddCommand(normaliseCmd)

	normaliseCmd.Flags().BoolVar(&normaliseApply, "apply", false, "Rename the entries on disk")
}

func runNormalise(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}

	renamer := edit.NewRenamer(appFs, !normaliseApply, slog.Default())
	targets := make([]target, 0, len(args))
	for _, path := range args {
		p := structured.ParsePath(path, cfg)
		p.Normalise()
		targets = append(targets, target{from: path, to: p.String()})
	}

	return renameAll(cmd, renamer, targets)
}

type target struct {
	from, to string
}

// renameAll renames every target, reporting each outcome. Failures do not
// stop the remaining targets.
func renameAll(cmd *cobra.Command, renamer *edit.Renamer, targets []target) error {
	p := printer()
	out := cmd.OutOrStdout()

	failed := 0
	for _, t := range targets {
		res, err := renamer.Rename(t.from, t.to)
		if err != nil {
			slog.Warn("Skipping target", "path", t.from, "error", err)
			fmt.Fprintln(cmd.ErrOrStderr(), p.Sprintf(i18n.Skipped, t.from, err))
			failed++
			continue
		}

		switch {
		case !res.Changed:
			fmt.Fprintln(out, p.Sprintf(i18n.NoChange, t.from))
		case res.DryRun:
			fmt.Fprintln(out, p.Sprintf(i18n.WouldRename, t.from, t.to))
		default:
			fmt.Fprintln(out, p.Sprintf(i18n.Renamed, t.from, t.to))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d target(s) failed", failed, len(targets))
	}
	return nil
}
