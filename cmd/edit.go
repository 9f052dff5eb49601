package cmd

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pders01/tagger/internal/config"
	"github.com/pders01/tagger/internal/edit"
	"github.com/pders01/tagger/internal/structured"
	"github.com/pders01/tagger/internal/timestamp"
)

var (
	editPrefix      string
	editSuffix      string
	editAddTags     []string
	editRemoveTags  []string
	editAddDate     bool
	editAddDateTime bool
	editAddTime     bool
	editDryRun      bool

	timeNow = time.Now
)

var editCmd = &cobra.Command{
	Use:   "edit [flags] <path>...",
	Short: "Change the file name, add date or time, add and/or remove tags",
	Long: `Change the file name, add date or time, add and/or remove tags.

Mirrors filetags, appendfilename and date2name:
  https://github.com/novoid/filetags
  https://github.com/novoid/appendfilename
  https://github.com/novoid/date2name

Examples:
  tagger edit -a work -a urgent report.pdf
  tagger edit -r draft -s " v2" "2022-10-27 report -- draft.pdf"
  tagger edit -d scan.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVarP(&editPrefix, "prefix", "p", "", "Add text after the date and before the file name")
	editCmd.Flags().StringVarP(&editSuffix, "suffix", "s", "", "Add text after the file name and before the tag separator")
	editCmd.Flags().StringArrayVarP(&editAddTags, "add-tag", "a", nil, "Add a tag after the tag separator")
	editCmd.Flags().StringArrayVarP(&editRemoveTags, "remove-tag", "r", nil, "Remove a tag if it's there")
	editCmd.Flags().BoolVarP(&editAddDate, "add-date", "d", false, "Add the date (without time) before the file name")
	editCmd.Flags().BoolVarP(&editAddDateTime, "add-datetime", "t", false, "Add the date and the time before the file name")
	editCmd.Flags().BoolVar(&editAddTime, "add-time", false, "Add the time (without the date) before the file name")
	editCmd.Flags().BoolVarP(&editDryRun, "dry-run", "n", false, "Print the new names without renaming")

	editCmd.MarkFlagsMutuallyExclusive("add-date", "add-datetime", "add-time")
}

func editOptions() edit.Options {
	opts := edit.Options{
		Prefix:     editPrefix,
		Suffix:     editSuffix,
		AddTags:    editAddTags,
		RemoveTags: editRemoveTags,
		Now:        timeNow(),
	}

	var kind timestamp.Kind
	switch {
	case editAddDate:
		kind = timestamp.KindDate
	case editAddDateTime:
		kind = timestamp.KindDateTime
	case editAddTime:
		kind = timestamp.KindTime
	default:
		return opts
	}
	opts.Stamp = &kind

	return opts
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}

	opts := editOptions()
	dryRun := editDryRun || config.GetDryRun(viper.GetViper())
	renamer := edit.NewRenamer(appFs, dryRun, slog.Default())

	targets := make([]target, 0, len(args))
	for _, path := range args {
		p := structured.ParsePath(path, cfg)
		if err := edit.Apply(p.Name, opts); err != nil {
			return err
		}
		slog.Debug("Edited", "path", path, "name", p.Name.String())
		targets = append(targets, target{from: path, to: p.String()})
	}

	return renameAll(cmd, renamer, targets)
}
