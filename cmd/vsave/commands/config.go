package commands

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/vsave/internal/config"
	"github.com/thoreinstein/vsave/internal/errors"
	"github.com/thoreinstein/vsave/internal/paths"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage vsave configuration",
	Long: `Manage vsave configuration stored in the platform config directory.

Without a subcommand, lists all configuration values.`,
	Example: `  # List all configuration
  vsave config

  # Get a specific value
  vsave config get save-dir

  # Set the save directory explicitly
  vsave config set save-dir ~/my-saves`,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a single configuration value by key.

Keys: save-dir, backup-dir, retention, watch.debounce, watch.schedule.`,
	Example: `  # Show the configured save directory
  vsave config get save-dir`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and persist it to the config file.

Keys: save-dir, backup-dir, retention, watch.debounce, watch.schedule.
Setting save-dir validates that the directory exists.`,
	Example: `  # Override save directory detection
  vsave config set save-dir ~/my-saves

  # Keep the 50 most recent snapshots when pruning
  vsave config set retention 50

  # Capture 5s after the game stops writing
  vsave config set watch.debounce 5s`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration",
	Long:  `List all configuration values in YAML format.`,
	RunE:  runConfigList,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open the configuration file in your default editor.

Uses the $EDITOR environment variable, or falls back to vi.`,
	Example: `  # Open config in default editor
  vsave config edit

  # Open with a specific editor
  EDITOR=nano vsave config edit`,
	RunE: runConfigEdit,
}

func runConfigGet(_ *cobra.Command, args []string) error {
	switch args[0] {
	case "save-dir":
		printOrUnset(cfg.SaveDir)
	case "backup-dir":
		printOrUnset(cfg.BackupDir)
	case "retention":
		fmt.Println(cfg.Retention)
	case "watch.debounce":
		fmt.Println(cfg.Watch.Debounce)
	case "watch.schedule":
		printOrUnset(cfg.Watch.Schedule)
	default:
		return errors.NewUserError(errors.Newf("unknown key %q", args[0]),
			"Keys: save-dir, backup-dir, retention, watch.debounce, watch.schedule")
	}
	return nil
}

func printOrUnset(val string) {
	if val == "" {
		fmt.Println("not set")
		return
	}
	fmt.Println(val)
}

func runConfigSet(_ *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	switch key {
	case "save-dir":
		dir, err := paths.ExpandHome(value)
		if err != nil {
			return err
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return errors.NewUserError(errors.Newf("not a directory: %s", dir),
				"The save directory must exist before it can be set")
		}
		cfg.SaveDir = dir

	case "backup-dir":
		dir, err := paths.ExpandHome(value)
		if err != nil {
			return err
		}
		cfg.BackupDir = dir

	case "retention":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return errors.NewUserError(errors.Newf("invalid retention %q", value),
				"Retention must be a positive number")
		}
		cfg.Retention = n

	case "watch.debounce":
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return errors.NewUserError(errors.Newf("invalid duration %q", value),
				"Use a Go duration such as 2s or 500ms")
		}
		cfg.Watch.Debounce = d

	case "watch.schedule":
		cfg.Watch.Schedule = value

	default:
		return errors.NewUserError(errors.Newf("unknown key %q", key),
			"Keys: save-dir, backup-dir, retention, watch.debounce, watch.schedule")
	}

	if err := config.Save(cfg); err != nil {
		return errors.Wrap(err, "writing config file")
	}
	fmt.Printf("Set %s = %s\n", key, value)
	return nil
}

func runConfigList(_ *cobra.Command, _ []string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	fmt.Print(string(data))
	return nil
}

func runConfigEdit(_ *cobra.Command, _ []string) error {
	configPath := paths.ConfigFile()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return errors.Newf("config file not found at %s\nCreate it with: vsave config set <key> <value>", configPath)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	cmd := exec.Command(editor, configPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "running editor")
	}
	return nil
}
