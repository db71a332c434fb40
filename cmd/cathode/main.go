package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cathode/internal/app"
	"cathode/internal/config"
	"cathode/internal/display"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// loadConfig reads the config file, falling back to defaults when it does
// not exist.
func loadConfig() (*config.Config, map[string]string, error) {
	defaults, err := app.GetDefaults(app.OSEnv{})
	if err != nil {
		return nil, nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.Load(defaults["config_path"], defaultConfig(defaults))
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, defaults, nil
}

func defaultConfig(defaults map[string]string) *config.Config {
	return config.NewConfig(defaults["config_dir"], defaults["data_dir"], defaults["home_dir"])
}

// newApp reads the config and creates a CathodeApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "AddMode", "ApplyMode").
func newApp(cmd *cobra.Command, operation string) (*app.CathodeApp, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	filename, _ := cmd.Flags().GetString("filename")

	a, err := app.NewCathodeApp(cfg, operation, app.Options{
		Verbose:   verbose,
		ModesFile: filename,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	if imp, _ := cmd.Flags().GetBool("import"); imp {
		if _, err := a.ImportModes(); err != nil {
			a.Close()
			return nil, err
		}
	}
	return a, nil
}

var rootCmd = &cobra.Command{
	Use:   "cathode",
	Short: "Create, test and apply custom display modes with xrandr",
}

// add command
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Generate and register a display mode",
	Long: `Generate timings for a display mode with cvt and register it with xrandr.
Width, height, rate and display default to the active mode of the display,
or of the first connected display. The mode is saved unless --nosave is given.

--test applies the new mode for --timeout seconds (default 10) and then
switches back. Giving --timeout on its own also turns on --test.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		width, _ := flags.GetString("width")
		height, _ := flags.GetString("height")
		rate, _ := flags.GetString("rate")
		output, _ := flags.GetString("display")
		name, _ := flags.GetString("name")
		timeout, _ := flags.GetString("timeout")
		nosave, _ := flags.GetBool("nosave")

		a, err := newApp(cmd, "AddMode")
		if err != nil {
			return err
		}
		defer a.Close()

		mode, err := a.AddMode(cmd.Context(), display.AddOptions{
			Request: display.Request{
				Width:  width,
				Height: height,
				Rate:   rate,
				Output: output,
				Name:   name,
			},
			Test:    testRequested(cmd),
			Timeout: timeout,
			Save:    !nosave,
		})
		if err != nil {
			return fmt.Errorf("adding mode: %w", err)
		}

		if nosave {
			fmt.Printf("Registered mode %s\n", mode.Name)
		} else {
			fmt.Printf("Registered and saved mode %s in %s\n", mode.Name, a.ModesFile())
		}
		return nil
	},
}

// testRequested reports whether --test, or --timeout on its own, was given.
func testRequested(cmd *cobra.Command) bool {
	test, _ := cmd.Flags().GetBool("test")
	return test || cmd.Flags().Changed("timeout")
}

// apply command
var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Switch a display to a saved mode",
	Long: `Switch a display to a mode saved by "cathode add".

--test applies the mode for --timeout seconds (default 10), switches back to
the display's default mode and then asks whether to keep it. Giving --timeout
on its own also turns on --test.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		name, _ := flags.GetString("name")
		output, _ := flags.GetString("display")
		timeout, _ := flags.GetString("timeout")
		persist, _ := flags.GetBool("persist")

		a, err := newApp(cmd, "ApplyMode")
		if err != nil {
			return err
		}
		defer a.Close()

		applied, err := a.ApplyMode(cmd.Context(), display.ApplyOptions{
			Name:    name,
			Output:  output,
			Test:    testRequested(cmd),
			Timeout: timeout,
			Persist: persist,
		})
		if err != nil {
			return fmt.Errorf("applying mode: %w", err)
		}

		if !applied {
			fmt.Printf("Discarded mode %s, kept the current mode of %s\n", name, output)
			return nil
		}
		fmt.Printf("Applied mode %s to %s\n", name, output)
		return nil
	},
}

// list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved modes",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "ListModes")
		if err != nil {
			return err
		}
		defer a.Close()

		modes, err := a.ListModes()
		if err != nil {
			return err
		}

		if len(modes) == 0 {
			fmt.Println("No saved modes.")
			return nil
		}

		for _, m := range modes {
			fmt.Printf("%-20s  %s  %s\n", m.Name, strings.Join(m.Timings(), " "), m.Flags)
		}
		return nil
	},
}

// status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active and default mode of each display",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "Status")
		if err != nil {
			return err
		}
		defer a.Close()

		active, defaults, err := a.Status(cmd.Context())
		if err != nil {
			return err
		}

		if active.Degraded() {
			fmt.Printf("Display status unavailable: %s\n", active.Skipped)
			return nil
		}
		if len(active.Snapshots) == 0 && len(defaults.Snapshots) == 0 {
			fmt.Println("No connected displays.")
			return nil
		}

		def := make(map[string]display.Snapshot, len(defaults.Snapshots))
		for _, s := range defaults.Snapshots {
			def[s.Output] = s
		}
		for _, s := range active.Snapshots {
			d, ok := def[s.Output]
			defText := "-"
			if ok {
				defText = snapshotText(d)
			}
			fmt.Printf("%-10s  active %-16s  default %s\n", s.Output, snapshotText(s), defText)
		}
		return nil
	},
}

func snapshotText(s display.Snapshot) string {
	return fmt.Sprintf("%s@%s", s.ModeName(), s.Rate)
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View mode activation history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp(cmd, "GetHistory")
		if err != nil {
			return err
		}
		defer a.Close()

		activations, err := a.History(limit)
		if err != nil {
			return err
		}

		if len(activations) == 0 {
			fmt.Println("No activations recorded.")
			return nil
		}

		for _, act := range activations {
			fmt.Printf("%s  %-5s  %-20s  %-8s  %-9s  %s\n",
				act.StartedAt.Local().Format("2006-01-02 15:04:05"),
				act.Operation,
				act.ModeName,
				act.Output,
				act.Outcome,
				act.Duration().Truncate(time.Millisecond),
			)
		}
		return nil
	},
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults(app.OSEnv{})
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := defaultConfig(defaults)
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Modes File: %s\n", cfg.ModesFile)
		fmt.Printf("Data Dir:   %s\n", defaults["data_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, defaults, err := loadConfig()
		if err != nil {
			return err
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Modes File:      %s\n", cfg.ModesFile)
		fmt.Printf("Log Dir:         %s\n", cfg.LogDir)
		fmt.Printf("Profile:         %s\n", cfg.ProfilePath)
		fmt.Printf("Default Timeout: %d\n", effectiveTimeout(cfg))
		fmt.Printf("Tools:           xrandr=%s cvt=%s\n", cfg.Tools.Xrandr, cfg.Tools.CVT)
		fmt.Printf("History:         %s\n", cfg.History.Type)
		for _, r := range cfg.Remotes {
			fmt.Printf("Remote:          %s (%s)\n", r.Name, r.Type)
		}
		return nil
	},
}

func effectiveTimeout(cfg *config.Config) int {
	if cfg.DefaultTimeout > 0 {
		return cfg.DefaultTimeout
	}
	return display.DefaultTimeoutSeconds
}

// remote command
var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Share saved modes through a remote",
}

var remotePushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload saved modes to a remote",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("remote")

		a, err := newApp(cmd, "PushModes")
		if err != nil {
			return err
		}
		defer a.Close()

		remoteName, err := a.Push(cmd.Context(), name)
		if err != nil {
			return err
		}
		fmt.Printf("Pushed %s to %s\n", a.ModesFile(), remoteName)
		return nil
	},
}

var remotePullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Merge modes from a remote into the saved modes",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("remote")

		a, err := newApp(cmd, "PullModes")
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.Pull(cmd.Context(), name)
		if err != nil {
			return err
		}
		fmt.Printf("Merged %d mode(s) into %s\n", n, a.ModesFile())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print debug logs and the test countdown")
	rootCmd.PersistentFlags().BoolP("import", "i", false, "Load and log every saved mode first")
	rootCmd.PersistentFlags().StringP("filename", "f", "", "Mode store file (default <config dir>/modes.yml)")

	// add
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringP("width", "w", "", "Width in pixels")
	addCmd.Flags().StringP("height", "H", "", "Height in pixels")
	addCmd.Flags().StringP("rate", "r", "", "Refresh rate in Hz")
	addCmd.Flags().StringP("display", "d", "", "Output to add the mode to, e.g. HDMI-1")
	addCmd.Flags().StringP("name", "n", "", "Mode name (default <width>x<height>_<rate>)")
	addCmd.Flags().StringP("timeout", "t", "", "Seconds to test the mode for; implies --test")
	addCmd.Flags().Bool("test", false, "Apply the mode temporarily, then revert")
	addCmd.Flags().Bool("nosave", false, "Do not save the mode")

	// apply
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().StringP("name", "n", "", "Saved mode to apply")
	applyCmd.Flags().StringP("display", "d", "", "Output to apply the mode to, e.g. HDMI-1")
	applyCmd.Flags().StringP("timeout", "t", "", "Seconds to test the mode for; implies --test")
	applyCmd.Flags().Bool("test", false, "Apply the mode temporarily, revert, then ask whether to keep it")
	applyCmd.Flags().BoolP("persist", "p", false, "Apply the mode again at every X login")
	applyCmd.MarkFlagRequired("name")
	applyCmd.MarkFlagRequired("display")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statusCmd)

	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of activations to show")

	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)

	// remote subcommands
	remoteCmd.PersistentFlags().String("remote", "", "Remote name (default the first configured remote)")
	remoteCmd.AddCommand(remotePushCmd)
	remoteCmd.AddCommand(remotePullCmd)
	rootCmd.AddCommand(remoteCmd)
}
