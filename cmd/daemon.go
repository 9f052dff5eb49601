package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pders01/tagger/internal/edit"
	"github.com/pders01/tagger/internal/i18n"
	"github.com/pders01/tagger/internal/watch"
)

var daemonNormalise bool

var daemonCmd = &cobra.Command{
	Use:   "daemon <dir>...",
	Short: "Keep a background presence and react to new files",
	Long: `Watch directories and report the decomposition of every entry that
appears in them. With --normalise new entries are renamed to their
normalised form.

Stop with Ctrl-C.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)

	daemonCmd.Flags().BoolVar(&daemonNormalise, "normalise", false, "Rename new entries to their normalised form")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watch.New(cfg, edit.NewRenamer(appFs, false, slog.Default()), daemonNormalise, slog.Default())

	fmt.Fprintln(cmd.OutOrStdout(), printer().Sprintf(i18n.Watching, len(args)))
	return w.Run(ctx, args)
}
