package cli

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/casedocs/internal/adapters/driven/config/file"
	"github.com/custodia-labs/casedocs/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change configuration",
	Long: `View and change the values stored in the configuration file.

Keys use dot notation matching the TOML tables, for example:
  casedocs config set ai.llm_model llama3
  casedocs config set portal.requests_per_second 0.5`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func configServices() (*Services, error) {
	s, err := requireServices()
	if err != nil {
		return nil, err
	}
	if s.Config == nil {
		return nil, errors.New("config store not configured")
	}
	return s, nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	s, err := configServices()
	if err != nil {
		return err
	}

	stored := map[string]bool{}
	for _, k := range s.Config.Keys() {
		stored[k] = true
	}

	for _, key := range file.Keys {
		value, _ := file.SettingValue(s.Settings, key)
		marker := " "
		if stored[key] {
			marker = "*"
		}
		cmd.Printf("%s %-28s = %s\n", marker, key, value)
	}
	cmd.Println()
	cmd.Println("* set in " + s.Config.Path())
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	s, err := configServices()
	if err != nil {
		return err
	}
	cmd.Println(s.Config.Path())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	s, err := configServices()
	if err != nil {
		return err
	}

	key, raw := args[0], args[1]
	if !slices.Contains(file.Keys, key) {
		return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidInput, key)
	}

	if err := s.Config.Set(key, parseConfigValue(raw)); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	cmd.Printf("%s = %s\n", key, raw)
	return nil
}

// parseConfigValue keeps numbers and booleans typed in the TOML file.
func parseConfigValue(raw string) any {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}
