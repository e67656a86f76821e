package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/searchbar/internal/config"
	"github.com/oakwood-commons/searchbar/internal/formatter"
	"github.com/oakwood-commons/searchbar/pkg/settings"
)

var configOutput string

// cliVersionString builds a human-readable version string for CLI output and Cobra's --version flag.
func cliVersionString() string {
	name, version := settings.CliBinaryName, settings.VersionInformation.BuildVersion
	if cfg, err := config.Default(); err == nil {
		if cfg.App.About.Name != "" {
			name = cfg.App.About.Name
		}
		if cfg.App.About.Version != "" {
			version = cfg.App.About.Version
		}
	}
	return fmt.Sprintf("%s %s (commit %s, built %s, %s)", name, version,
		settings.VersionInformation.Commit, settings.VersionInformation.BuildTime, runtime.Version())
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print searchbar version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), cliVersionString())
		return nil
	},
}

// configCmd groups configuration-related subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect searchbar configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the merged configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := configFromContext(cmd.Context())
		if err != nil {
			return err
		}
		return writeConfig(cmd.OutOrStdout(), cfg, config.ResolvePath(configFile), configOutput)
	},
}

var configThemesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := configFromContext(cmd.Context())
		if err != nil {
			return err
		}
		return writeThemes(cmd.OutOrStdout(), cfg)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file in use",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := config.ResolvePath(configFile)
		if path == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "(embedded defaults)")
			return nil
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("config file: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

// writeConfig prints cfg. The YAML form names its source in a head comment.
func writeConfig(w io.Writer, cfg config.File, path, output string) error {
	switch output {
	case "", "yaml":
		source := "embedded defaults"
		if path != "" {
			source = "embedded defaults + " + path
		}
		out, err := formatter.EncodeYAML(cfg, formatter.YAMLOptions{HeadComment: "source: " + source})
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		_, err := w.Write(buf.Bytes())
		return err
	default:
		return fmt.Errorf("invalid output format %q (expected one of: yaml, json, toml)", output)
	}
}

func writeThemes(w io.Writer, cfg config.File) error {
	def := cfg.UI.Theme.Default
	if def == "" {
		def = "dark"
	}
	if _, err := fmt.Fprintf(w, "Available themes (default: %s):\n", def); err != nil {
		return err
	}
	for _, name := range cfg.ThemeNames() {
		if _, err := fmt.Fprintf(w, " - %s\n", name); err != nil {
			return err
		}
	}
	return nil
}

func init() { //nolint:gochecknoinits
	configCmd.PersistentFlags().StringVarP(&configOutput, "output", "o", "yaml", "output format: yaml|json|toml")
	configCmd.AddCommand(configGetCmd, configThemesCmd, configPathCmd)
}
