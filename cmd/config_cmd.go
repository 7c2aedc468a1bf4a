package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/umlgarden/umlgarden/internal/ui"
	"github.com/umlgarden/umlgarden/types"
	"gopkg.in/yaml.v3"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage umlgarden configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file with the default settings",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configName + "." + configType
		if len(args) == 1 {
			path = args[0]
		}
		if err := writeConfigFile(afero.NewOsFs(), path, GetConfig(), configForce); err != nil {
			return err
		}
		ui.NewPrinter(cmd.OutOrStdout()).Success("Wrote %s", path)
		return nil
	},
}

// configShowCmd shows current configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return encodeConfig(cmd.OutOrStdout(), GetConfig())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd)
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing config file")
}

// configDocument mirrors types.AppConfig with durations spelled as strings,
// so the YAML reads "60s" rather than nanoseconds.
type configDocument struct {
	Output types.OutputConfig `yaml:"output"`
	Render struct {
		Enabled bool     `yaml:"enabled"`
		Command string   `yaml:"command"`
		Args    []string `yaml:"args"`
		Timeout string   `yaml:"timeout"`
	} `yaml:"render"`
	Scan  types.ScanConfig `yaml:"scan"`
	Log   types.LogConfig  `yaml:"log"`
	Watch struct {
		Debounce string `yaml:"debounce"`
	} `yaml:"watch"`
}

func newConfigDocument(cfg *types.AppConfig) configDocument {
	var doc configDocument
	doc.Output = cfg.Output
	doc.Render.Enabled = cfg.Render.Enabled
	doc.Render.Command = cfg.Render.Command
	doc.Render.Args = cfg.Render.Args
	if doc.Render.Args == nil {
		doc.Render.Args = []string{}
	}
	doc.Render.Timeout = cfg.Render.Timeout.String()
	doc.Scan = cfg.Scan
	doc.Log = cfg.Log
	doc.Watch.Debounce = cfg.Watch.Debounce.String()
	return doc
}

func encodeConfig(w io.Writer, cfg *types.AppConfig) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newConfigDocument(cfg)); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// writeConfigFile writes cfg as YAML to path. An existing file is only
// replaced when force is set.
func writeConfigFile(fs afero.Fs, path string, cfg *types.AppConfig, force bool) error {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return fmt.Errorf("check %s: %w", path, err)
	}
	if exists && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := io.WriteString(f, "# umlgarden configuration\n"); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := encodeConfig(f, cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
