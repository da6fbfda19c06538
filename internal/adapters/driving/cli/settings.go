package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kgraph/internal/core/domain"
)

var settingsJSON bool

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change kgraph settings. Settings live in config.toml in the
configuration directory and are addressed by dotted keys, e.g.

  kgraph settings set store.max_items 100`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

func init() {
	settingsCmd.PersistentFlags().BoolVar(&settingsJSON, "json", false, "output settings as JSON")
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsResetCmd, settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettings
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if settingsJSON {
		return printJSON(cmd, settings)
	}
	printSettings(cmd, settings)
	return nil
}

func printSettings(cmd *cobra.Command, s *domain.AppSettings) {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "Current Settings")
	fmt.Fprintln(w, "================")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "[Store]")
	fmt.Fprintf(w, "  Backend:        %s\n", s.Store.Backend.Description())
	fmt.Fprintf(w, "  Max items:      %d\n", s.Store.MaxItems)
	if s.Store.MaxBytes > 0 {
		fmt.Fprintf(w, "  Max size:       %s\n", formatBytes(s.Store.MaxBytes))
	} else {
		fmt.Fprintln(w, "  Max size:       unlimited")
	}
	fmt.Fprintf(w, "  Merge limit:    %d\n", s.Store.MergeLimit)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "[Layout]")
	fmt.Fprintf(w, "  Node radius:    %g\n", s.Layout.NodeRadius)
	fmt.Fprintf(w, "  Link distance:  %g\n", s.Layout.LinkDistance)
	fmt.Fprintf(w, "  Charge:         %g\n", s.Layout.ChargeStrength)
	fmt.Fprintf(w, "  Tick:           %dms\n", s.Layout.TickMillis)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "[Display]")
	fmt.Fprintf(w, "  Labels:         %s\n", onOff(s.Display.ShowLabels))
	fmt.Fprintf(w, "  Arrows:         %s\n", onOff(s.Display.ShowArrows))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "[Watch]")
	fmt.Fprintf(w, "  Rate:           %d files/s\n", s.Watch.RatePerSecond)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNoSettings
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettings
	}

	if err := settingsService.Reset(); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Settings restored to defaults.")
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettings
	}

	for _, key := range settingsService.Keys() {
		fmt.Fprintln(cmd.OutOrStdout(), key)
	}
	return nil
}
