package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path/filepath"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/admisi-dashboard/admisi/internal/config"
)

// Config command flags.
var (
	configGlobal bool
	configForce  bool
)

// configCmd is the parent command for config subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and modify admisi configuration",
	Long: `View and modify admisi configuration.

Admisi reads configuration from .admisi.yaml in the working directory (or
the file named by --config). A global config at ~/.config/admisi/config.yaml
provides defaults. ADMISI_DATA_FILE and ADMISI_ADDR, from the environment
or a .env file, override both; command-line flags override everything.

Note: config set does a YAML round-trip and will not preserve comments.`,
}

// configGetCmd retrieves a configuration value by dot-notation key path.
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a configuration value by dot-notation key path.

Examples:
  admisi config get data_file
  admisi config get columns.quota
  admisi config get columns
  admisi config get --global page`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

// configSetCmd sets a configuration value.
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the config file.

The value is parsed as the key's type: top_n takes an integer,
split_trend takes true or false, everything else is a string.
By default, writes to .admisi.yaml in the current directory.
Use --global to write to ~/.config/admisi/config.yaml.

Examples:
  admisi config set data_file data/snmptn_2022.xlsx
  admisi config set top_n 5
  admisi config set columns.quota kursi
  admisi config set --global output_format markdown`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

// configListCmd lists all configuration values with their source.
var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Long: `List all configuration values with their source annotation.

Shows every set configuration value, annotated with the layer it comes
from: global (~/.config/admisi/config.yaml), project (.admisi.yaml) or
env (ADMISI_DATA_FILE, ADMISI_ADDR). Later layers override earlier ones.`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

// configInitCmd writes a starter .admisi.yaml.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .admisi.yaml with the default settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configGetCmd.Flags().BoolVar(&configGlobal, "global", false, "use global config (~/.config/admisi/config.yaml)")
	configSetCmd.Flags().BoolVar(&configGlobal, "global", false, "write to global config (~/.config/admisi/config.yaml)")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing .admisi.yaml")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configInitCmd)
}

// projectConfigPath is the file config set and init write to.
func projectConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return filepath.Join(".", config.FileName)
}

// loadProject reads the project config, honoring --config.
func loadProject() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load(".")
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	keyPath := args[0]

	var cfg *config.Config
	if configGlobal {
		globalCfg, err := config.LoadGlobal()
		if err != nil {
			return fmt.Errorf("loading global config: %w", err)
		}
		cfg = globalCfg
	} else {
		projectCfg, err := loadProject()
		if err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		globalCfg, err := config.LoadGlobal()
		if err != nil {
			return fmt.Errorf("loading global config: %w", err)
		}
		merged := config.Merge(globalCfg, *projectCfg)
		cfg = &merged
	}

	val, err := config.GetValue(cfg, keyPath)
	if err != nil {
		return exitError(ExitInvalidArgs, "admisi: %v", err)
	}
	return printValue(cmd, val)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	path := projectConfigPath()
	if configGlobal {
		path = config.GlobalConfigPath()
	}
	doc, err := config.LoadRaw(path)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}
	if err := config.SetValue(doc, key, value); err != nil {
		return exitError(ExitInvalidArgs, "admisi: %v", err)
	}

	// Nothing is written unless the edited document still validates.
	edited, err := config.Decode(doc)
	if err != nil {
		return exitError(ExitInvalidArgs, "admisi: invalid config after set: %v", err)
	}
	if err := config.Validate(edited); err != nil {
		return exitError(ExitInvalidArgs, "admisi: %v", err)
	}
	if err := config.WriteFile(path, doc); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}

// configLayer is one source of settings shown by config list, lowest
// precedence first.
type configLayer struct {
	source string
	cfg    *config.Config
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	globalCfg, err := config.LoadGlobal()
	if err != nil {
		return fmt.Errorf("loading global config: %w", err)
	}
	projectCfg, err := loadProject()
	if err != nil {
		return fmt.Errorf("loading project config: %w", err)
	}
	envCfg := config.FromEnv()

	values := make(map[string]any)
	sources := make(map[string]string)
	for _, layer := range []configLayer{{"global", globalCfg}, {"project", projectCfg}, {"env", &envCfg}} {
		flat, err := config.Flatten(layer.cfg)
		if err != nil {
			return err
		}
		for k, v := range flat {
			values[k] = v
			sources[k] = layer.source
		}
	}

	if len(values) == 0 {
		_, _ = fmt.Fprintln(w, "No configuration set.")
		_, _ = fmt.Fprintln(w, "Run 'admisi config init' to create a config, or 'admisi config set <key> <value>' to set values.")
		return nil
	}

	globalColor := color.New(color.FgCyan)
	projectColor := color.New(color.FgGreen)
	for _, k := range slices.Sorted(maps.Keys(values)) {
		_, _ = fmt.Fprintf(w, "%s = %v %s\n", k, values[k], formatSource(sources[k], globalColor, projectColor))
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := projectConfigPath()
	if _, err := cmdFS.Stat(path); err == nil && !configForce {
		return exitError(ExitInvalidArgs, "admisi: %s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	defaults := config.Defaults()
	var buf bytes.Buffer
	if err := config.Write(&buf, &defaults); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := cmdFS.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

// printValue outputs a value: scalars as plain text, maps/slices as YAML.
func printValue(cmd *cobra.Command, val any) error {
	switch v := val.(type) {
	case map[string]any, []any:
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), string(data))
	default:
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), v)
	}
	return nil
}

// formatSource returns a colorized source annotation.
func formatSource(source string, globalColor, projectColor *color.Color) string {
	switch source {
	case "global":
		return globalColor.Sprintf("(global)")
	case "project":
		return projectColor.Sprintf("(project)")
	default:
		return fmt.Sprintf("(%s)", source)
	}
}
