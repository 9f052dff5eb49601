package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/message"

	"github.com/pders01/tagger/internal/config"
	"github.com/pders01/tagger/internal/i18n"
	"github.com/pders01/tagger/internal/structured"
)

var (
	cfgFile string
	appFs   afero.Fs = afero.NewOsFs()
)

var rootCmd = &cobra.Command{
	Use:   "tagger",
	Short: "Read and rewrite dates and tags stored in file names",
	Long: `tagger treats file and directory names as metadata:
  - an optional leading timestamp (2022-10-27, 2022-10-27 15h35, ...)
  - a free-form filename
  - optional trailing tags (" -- tag other")
  - the extension

Names are parsed against configurable formats and written back either
exactly as they were or normalised to the canonical formats.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/tagger/config.toml)")
}

func initConfig() {
	viper.SetFs(appFs)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		path, err := config.DefaultPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	config.SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("Using config file", "path", viper.ConfigFileUsed())
	} else if !isNotExist(err) {
		slog.Warn("Ignoring config file", "path", viper.ConfigFileUsed(), "error", err)
	}
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// loadConfiguration compiles the active configuration
func loadConfiguration() (*structured.Configuration, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// printer returns a message printer for the user's language
func printer() *message.Printer {
	return i18n.NewPrinter(i18n.Requested())
}
