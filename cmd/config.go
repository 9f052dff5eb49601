package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pders01/tagger/internal/config"
	"github.com/pders01/tagger/internal/i18n"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create or check the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration file and report unknown keys",
	Args:  cobra.NoArgs,
	RunE:  runConfigCheck,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configCheckCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file")
}

// configPath returns --config or the default location
func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	return config.DefaultPath()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := config.WriteDefault(appFs, path, configForce); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), printer().Sprintf(i18n.ConfigWritten, path))
	return nil
}

func runConfigCheck(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	v := viper.New()
	v.SetFs(appFs)
	v.SetConfigFile(path)
	config.SetDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if _, err := config.Load(v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	p := printer()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		unknown, err := config.UnknownKeys(appFs, path)
		if err != nil {
			return err
		}
		for _, key := range unknown {
			fmt.Fprintln(cmd.ErrOrStderr(), p.Sprintf(i18n.UnknownKey, path, key))
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), p.Sprintf(i18n.ConfigValid, path))
	return nil
}
