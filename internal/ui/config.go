package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/focusflow/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  focusflow config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), config.DefaultConfigPath())
		},
	}
}

func runConfigInteractive(in io.Reader, out io.Writer, configPath string) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	cfg.Owner.Name = promptValue(reader, out, "Owner name", cfg.Owner.Name)
	cfg.Time.Timezone = promptValue(reader, out, "Timezone (IANA name or Local)", cfg.Time.Timezone)
	cfg.Blocks.RejectOverlaps = promptBool(reader, out, "Reject overlapping blocks", cfg.Blocks.RejectOverlaps)
	workdays := promptValue(reader, out, "Workdays (comma separated)", strings.Join(cfg.Schedule.Workdays, ","))
	cfg.Schedule.Workdays = splitList(workdays)
	cfg.Schedule.DayStart = promptValue(reader, out, "Day start (HH:MM)", cfg.Schedule.DayStart)
	cfg.Schedule.DayEnd = promptValue(reader, out, "Day end (HH:MM)", cfg.Schedule.DayEnd)
	cfg.Log.Level = promptValue(reader, out, "Log level (debug, info, warn, error)", cfg.Log.Level)
	cfg.Log.Format = promptValue(reader, out, "Log format (text, json)", cfg.Log.Format)
	cfg.UI.Color = promptValue(reader, out, "Color (auto, always, never)", cfg.UI.Color)
	cfg.UI.Theme = promptValue(reader, out, "Dashboard theme", cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[storage]")
	fmt.Fprintf(out, "  db_path          = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(out, "\n[owner]")
	fmt.Fprintf(out, "  name             = %s\n", cfg.Owner.Name)
	fmt.Fprintln(out, "\n[time]")
	fmt.Fprintf(out, "  timezone         = %s\n", cfg.Time.Timezone)
	fmt.Fprintln(out, "\n[blocks]")
	fmt.Fprintf(out, "  reject_overlaps  = %t\n", cfg.Blocks.RejectOverlaps)
	fmt.Fprintln(out, "\n[schedule]")
	fmt.Fprintf(out, "  workdays         = %s\n", strings.Join(cfg.Schedule.Workdays, ", "))
	fmt.Fprintf(out, "  day_start        = %s\n", cfg.Schedule.DayStart)
	fmt.Fprintf(out, "  day_end          = %s\n", cfg.Schedule.DayEnd)
	fmt.Fprintln(out, "\n[log]")
	fmt.Fprintf(out, "  level            = %s\n", cfg.Log.Level)
	fmt.Fprintf(out, "  format           = %s\n", cfg.Log.Format)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  color            = %s\n", cfg.UI.Color)
	fmt.Fprintf(out, "  theme            = %s\n", cfg.UI.Theme)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToLower(part))
		}
	}
	return out
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptBool(reader *bufio.Reader, out io.Writer, label string, current bool) bool {
	for {
		value := promptValue(reader, out, label, strconv.FormatBool(current))
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
		fmt.Fprintf(out, "  Invalid value %q. Use true or false.\n", value)
	}
}
