// Pulsescan is a network census utility for nGeniusPULSE nPoint devices.
//
// It sweeps an IPv4 network block, probing every usable host address over
// the device WebSocket control channel, and reports each responding nPoint
// with the attributes it serves. A MAC filter turns the sweep into a hunt
// for a single physical device.
//
// Usage:
//
//	pulsescan [command] [flags]
//
// Running without a subcommand starts a sweep of the configured network.
// See 'pulsescan --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/pulsescan/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pulsescan",
	Short: "nGeniusPULSE nPoint network census utility",
	Long: `Sweep an IPv4 network block for nGeniusPULSE nPoint devices.

Every usable host address in the block is probed concurrently over the
device WebSocket control channel. Responding devices are reported with
the attributes they serve; the display level controls how many
attributes each device is asked for.

If no command is specified, the sweep starts immediately.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSweep,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pulsescan %s (commit: %s)\n", version.Version, version.Commit)
	},
}
