package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pders01/tagger/internal/config"
	"github.com/pders01/tagger/internal/edit"
	"github.com/pders01/tagger/internal/report"
	"github.com/pders01/tagger/internal/structured"
)

var (
	tagsFormat = report.FormatText
	tagsRename string
	tagsDryRun bool
)

var tagsCmd = &cobra.Command{
	Use:   "tags <path>...",
	Short: "List or rename tags",
	Long: `List the tags used across the given names with usage counts.
Optionally rename a tag in every name that carries it.

Examples:
  tagger tags ~/Documents/*
  tagger tags --format toon ~/Documents/*
  tagger tags --rename draft=review ~/Documents/*`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTags,
}

func init() {
	rootCmd.AddCommand(tagsCmd)

	tagsCmd.Flags().VarP(&tagsFormat, "format", "f", "Output format (text, json, yaml, toon)")
	tagsCmd.Flags().StringVar(&tagsRename, "rename", "", "Rename a tag, as old=new")
	tagsCmd.Flags().BoolVarP(&tagsDryRun, "dry-run", "n", false, "Print the new names without renaming")
}

func runTags(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}

	if tagsRename != "" {
		from, to, ok := strings.Cut(tagsRename, "=")
		if !ok || from == "" || to == "" {
			return fmt.Errorf("invalid --rename %q: expected old=new", tagsRename)
		}
		return renameTag(cmd, cfg, args, from, to)
	}

	paths := make([]*structured.Path, 0, len(args))
	for _, path := range args {
		paths = append(paths, structured.ParsePath(path, cfg))
	}

	return report.EncodeTagCounts(cmd.OutOrStdout(), tagsFormat, report.CountTags(paths))
}

func renameTag(cmd *cobra.Command, cfg *structured.Configuration, args []string, from, to string) error {
	var targets []target
	for _, path := range args {
		p := structured.ParsePath(path, cfg)
		if !edit.RenameTag(p.Name, from, to) {
			continue
		}
		targets = append(targets, target{from: path, to: p.String()})
	}

	slog.Debug("Renaming tag", "from", from, "to", to, "targets", len(targets))

	dryRun := tagsDryRun || config.GetDryRun(viper.GetViper())
	return renameAll(cmd, edit.NewRenamer(appFs, dryRun, slog.Default()), targets)
}
