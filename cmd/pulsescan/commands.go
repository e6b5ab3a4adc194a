package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/pulsescan/internal/catalog"
	"github.com/muurk/pulsescan/internal/config"
	"github.com/muurk/pulsescan/internal/discovery"
	"github.com/muurk/pulsescan/internal/logging"
	"github.com/muurk/pulsescan/internal/probe"
	"github.com/muurk/pulsescan/internal/report"
	"github.com/muurk/pulsescan/internal/scan"
	"github.com/muurk/pulsescan/internal/ui"
)

// Sweep command flags
var (
	networkFlag  string
	macFilter    string
	timeoutSecs  float64
	displayLevel int
	langCode     string
	devicePort   int
	logFile      string
	verbose      bool
	noTUI        bool

	browseTimeout int
)

func init() {
	rootCmd.Flags().StringVarP(&networkFlag, "network", "i", config.DefaultNetwork, "IPv4 network block to sweep, CIDR notation")
	rootCmd.Flags().StringVarP(&macFilter, "mac-filter", "m", "", "Stop at the first device whose MAC contains this substring")
	rootCmd.Flags().Float64VarP(&timeoutSecs, "timeout", "t", config.DefaultTimeoutSecs, "Per-operation timeout in seconds")
	rootCmd.Flags().IntVarP(&displayLevel, "display-level", "d", config.DefaultDisplayLevel, "Attribute depth per device, 0-9")
	rootCmd.Flags().StringVarP(&langCode, "language", "l", config.DefaultLanguage, "Report label language, EN or ES")
	rootCmd.Flags().IntVar(&devicePort, "port", probe.DefaultPort, "Device WebSocket port")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Append a session trace of every probe to this file")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log scan progress to stdout")
	rootCmd.Flags().BoolVar(&noTUI, "no-tui", false, "Plain text output even on a terminal")

	rootCmd.AddCommand(discoverCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	registry, err := config.LoadRegistry()
	if err != nil {
		// A corrupt registry must not block a sweep; fall back to defaults.
		fmt.Fprintf(os.Stderr, "Warning: could not load config: %v\n", err)
		registry = config.NewRegistry()
	}
	prefs := registry.Preferences

	// Saved preferences fill in any flag the user did not set explicitly.
	flags := cmd.Flags()
	network := networkFlag
	if !flags.Changed("network") && prefs.Network != "" {
		network = prefs.Network
	}
	if !flags.Changed("timeout") && prefs.TimeoutSecs > 0 {
		timeoutSecs = prefs.TimeoutSecs
	}
	if timeoutSecs <= 0 {
		return fmt.Errorf("timeout must be positive, got %g", timeoutSecs)
	}
	if !flags.Changed("display-level") {
		displayLevel = prefs.DisplayLevel
	}
	if displayLevel < 0 || displayLevel > catalog.MaxDisplayLevel {
		return fmt.Errorf("display level must be 0-%d, got %d", catalog.MaxDisplayLevel, displayLevel)
	}
	if !flags.Changed("language") && prefs.Language != "" {
		langCode = prefs.Language
	}
	lang, ok := catalog.ParseLanguage(langCode)
	if !ok {
		return fmt.Errorf("unknown language %q (want EN or ES)", langCode)
	}

	logOpts := logging.Options{File: logFile, Console: verbose}
	if verbose {
		logOpts.Level = "debug"
	}
	if err := logging.Initialize(logOpts); err != nil {
		return fmt.Errorf("logging setup: %w", err)
	}
	defer logging.Sync()

	scanner := scan.NewScanner(network)
	scanner.Port = devicePort
	scanner.Timeout = time.Duration(timeoutSecs * float64(time.Second))
	scanner.DisplayLevel = displayLevel
	scanner.MACFilter = macFilter

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var summary scan.Summary
	if ui.IsTerminal() && !noTUI {
		summary, err = ui.RunScan(ctx, scanner, lang)
	} else {
		summary, err = runConsoleSweep(ctx, scanner, lang)
	}
	if err != nil {
		if errors.Is(err, scan.ErrInvalidNetwork) {
			return fmt.Errorf("invalid network %q: %w", network, err)
		}
		return err
	}

	rememberDevices(registry, summary)
	return nil
}

// runConsoleSweep runs a sweep with plain text output, for pipes and
// terminals where the live display is unwanted.
func runConsoleSweep(ctx context.Context, scanner *scan.Scanner, lang catalog.Language) (scan.Summary, error) {
	targets, err := scanner.Targets()
	if err != nil {
		return scan.Summary{}, err
	}

	console := report.NewConsole(os.Stdout, lang)
	console.Banner(scanner.Network, targets)
	scanner.Reporter = console

	summary, err := scanner.Scan(ctx)
	if err != nil {
		return scan.Summary{}, err
	}

	console.Finish(summary, scanner.MACFilter != "")
	return summary, nil
}

// rememberDevices records each found device in the config registry so later
// sweeps can hint at where devices last lived. Persistence is best effort.
func rememberDevices(registry *config.Registry, summary scan.Summary) {
	changed := false
	for _, o := range summary.Devices {
		if mac := deviceMAC(o); mac != "" {
			registry.RememberDevice(mac, o.Addr.String())
			changed = true
		}
	}
	if !changed {
		return
	}
	if err := config.SaveRegistry(registry); err != nil {
		logging.Warn("Could not save device registry", zap.Error(err))
	}
}

// deviceMAC extracts the device identity (MAC and unit name) from a
// completed session's fields.
func deviceMAC(o probe.Outcome) string {
	for _, f := range o.Fields {
		if f.Query.Key == catalog.IdentityKey {
			return f.Value
		}
	}
	return ""
}

// discoverCmd finds nPoint devices via mDNS instead of a network sweep,
// for networks where multicast reaches the devices.
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover nPoint devices via mDNS",
	Long: `Discover nGeniusPULSE nPoint devices using mDNS/DNS-SD.

This listens for service broadcasts instead of sweeping a network block,
so it only finds devices on the local link but needs no address range.`,
	Example: `  # Browse for 10 seconds (default)
  pulsescan discover

  # Quick 3-second browse
  pulsescan discover --timeout 3`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVar(&browseTimeout, "timeout", 10, "Browse timeout in seconds")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return fmt.Errorf("logging setup: %w", err)
	}
	defer logging.Sync()

	fmt.Printf("Browsing for nPoint devices (timeout: %ds)...\n\n", browseTimeout)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	devices, err := discovery.Browse(ctx, time.Duration(browseTimeout)*time.Second)
	if err != nil {
		return fmt.Errorf("browse failed: %w", err)
	}

	if len(devices) == 0 {
		fmt.Println("No devices found.")
		fmt.Println("\nmDNS only reaches the local link. For devices on a routed")
		fmt.Println("network, run a sweep instead: pulsescan -i <network/prefix>")
		return nil
	}

	fmt.Printf("Found %d device(s):\n\n", len(devices))
	for i, device := range devices {
		fmt.Printf("%d. %s\n", i+1, device.Hostname)
		fmt.Printf("   Serial: %s\n", device.Serial)
		fmt.Printf("   IP:     %s:%d\n", device.IP, device.Port)
		fmt.Println()
	}

	fmt.Println("Use 'pulsescan -i <network/prefix>' to query device attributes")
	return nil
}
