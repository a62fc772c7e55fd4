// Package main provides the CLI entrypoint for doxsim.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/doxsim/internal/config"
	"github.com/verte-zerg/doxsim/internal/generator"
	"github.com/verte-zerg/doxsim/internal/metadata"
	"github.com/verte-zerg/doxsim/internal/model"
	"github.com/verte-zerg/doxsim/internal/report"
	"github.com/verte-zerg/doxsim/internal/tui"
)

const (
	defaultSpeed     = 1.0
	defaultTimeoutMs = 5000
	defaultBreaches  = 4
	dotEnvPath       = ".env"
)

var (
	simSpeed     float64
	simOffline   bool
	simEndpoint  string
	simTimeoutMs int
	simUserAgent string
	simCountdown int

	profileBreaches int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "doxsim",
		Short:         "Educational doxxing simulation for the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runSimulationCmd,
	}

	rootCmd.PersistentFlags().BoolVar(&simOffline, "offline", false, "skip the metadata request and use the fallback record")
	rootCmd.PersistentFlags().StringVar(&simEndpoint, "endpoint", metadata.DefaultEndpoint, "ipapi-compatible metadata endpoint")
	rootCmd.PersistentFlags().IntVar(&simTimeoutMs, "timeout-ms", defaultTimeoutMs, "metadata request timeout in milliseconds")
	rootCmd.PersistentFlags().StringVar(&simUserAgent, "user-agent", "", "user agent used for browser/OS detection")
	rootCmd.Flags().Float64Var(&simSpeed, "speed", defaultSpeed, "pacing multiplier (2 runs twice as fast)")
	rootCmd.Flags().IntVar(&simCountdown, "countdown", model.DefaultPacing().CountdownFrom, "countdown start value")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newProfileCmd())
	rootCmd.AddCommand(newWhoamiCmd())

	return rootCmd
}

func runSimulationCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("doxsim needs an interactive terminal (try: doxsim whoami)")
	}

	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	session := uuid.NewString()
	log.Printf("session %s: start (speed %.2f, offline %v)", session, cfg.Speed, cfg.Offline)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := metadata.NewClient(cfg.Endpoint, cfg.Timeout, cfg.UserAgent)
	m := tui.NewModel(tui.Options{
		Context:   ctx,
		Pacing:    cfg.Pacing,
		Load:      bundleLoader(client, cfg.Offline),
		SessionID: session,
	})
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	log.Printf("session %s: exit", session)
	return nil
}

func bundleLoader(client *metadata.Client, offline bool) func(context.Context) model.Bundle {
	return func(ctx context.Context) model.Bundle {
		var md model.Metadata
		if offline {
			md = client.Offline()
		} else {
			md = client.Resolve(ctx)
		}
		return model.Bundle{Metadata: md, Profile: generator.Profile(md.IPAddress)}
	}
}

// setupLogging routes the standard logger away from the screen while the TUI
// runs. With DEBUG set, logs go to the state directory.
func setupLogging() (func(), error) {
	if os.Getenv("DEBUG") == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	path := config.DefaultLogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := tea.LogToFile(path, "doxsim")
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}, nil
}

// resolveConfig merges defaults, the config file, the environment and flags,
// in increasing order of precedence.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	if err := config.LoadDotEnv(dotEnvPath); err != nil {
		return model.Config{}, err
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.ApplyEnv(&fileCfg.Simulation, nil); err != nil {
		return model.Config{}, err
	}
	return mergeConfig(cmd, fileCfg), nil
}

func mergeConfig(cmd *cobra.Command, fileCfg config.FileConfig) model.Config {
	sim := fileCfg.Simulation
	applyFloatConfig(cmd, "speed", &simSpeed, sim.Speed)
	applyBoolConfig(cmd, "offline", &simOffline, sim.Offline)
	applyStringConfig(cmd, "endpoint", &simEndpoint, sim.Endpoint)
	applyIntConfig(cmd, "timeout-ms", &simTimeoutMs, sim.TimeoutMs)
	applyStringConfig(cmd, "user-agent", &simUserAgent, sim.UserAgent)

	pacing := model.DefaultPacing()
	fileCfg.Pacing.Apply(&pacing)
	if cmd.Flags().Changed("countdown") || fileCfg.Pacing.CountdownFrom == nil {
		pacing.CountdownFrom = simCountdown
	}
	pacing.Speed = simSpeed

	return model.Config{
		Speed:     simSpeed,
		Offline:   simOffline,
		Endpoint:  simEndpoint,
		Timeout:   time.Duration(simTimeoutMs) * time.Millisecond,
		UserAgent: simUserAgent,
		Pacing:    pacing,
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile <seed>",
		Short: "Print the simulated profile for a seed (usually an IP address)",
		Args:  cobra.ExactArgs(1),
		RunE:  runProfileCmd,
	}
	cmd.Flags().IntVar(&profileBreaches, "breaches", defaultBreaches, "number of random breach events to print")
	return cmd
}

func runProfileCmd(cmd *cobra.Command, args []string) error {
	seed := strings.TrimSpace(args[0])
	if seed == "" {
		return fmt.Errorf("seed must not be empty")
	}
	if profileBreaches < 0 {
		return fmt.Errorf("--breaches must be >= 0")
	}
	out := cmd.OutOrStdout()
	if err := report.RenderProfile(out, generator.Profile(seed)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if profileBreaches == 0 {
		return nil
	}
	if err := report.RenderBreaches(out, generator.New().Breaches(profileBreaches)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Resolve and print what a website can learn about this session",
		Args:  cobra.NoArgs,
		RunE:  runWhoamiCmd,
	}
}

func runWhoamiCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	log.SetOutput(io.Discard)
	client := metadata.NewClient(cfg.Endpoint, cfg.Timeout, cfg.UserAgent)

	var md model.Metadata
	if cfg.Offline {
		md = client.Offline()
	} else {
		fetched, err := client.Fetch(cmd.Context())
		if err != nil {
			logErrf("metadata request failed, showing fallback: %v\n", err)
			md = client.Offline()
		} else {
			md = fetched
		}
	}
	if err := report.RenderMetadata(cmd.OutOrStdout(), md); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	p := model.DefaultPacing()
	return fmt.Sprintf(`# doxsim configuration
# Uncomment a value to enable it. Environment (DOXSIM_*) and CLI flags
# override config values.

[simulation]
# speed = %.1f                  # Pacing multiplier
# offline = false              # Skip the metadata request
# endpoint = %q
# timeout-ms = %d             # Metadata request timeout
# user-agent = ""              # Used for browser/OS detection

[pacing]
# scan-settle-ms = %d
# extraction-reveal-ms = %d
# extraction-hold-ms = %d
# map-load-ms = %d
# location-hold-ms = %d
# countdown-from = %d
# countdown-delay-ms = %d
# countdown-settle-ms = %d
# warnings-delay-ms = %d
# disclosure-delay-ms = %d
`,
		defaultSpeed,
		metadata.DefaultEndpoint,
		defaultTimeoutMs,
		p.ScanSettle.Milliseconds(),
		p.ExtractionReveal.Milliseconds(),
		p.ExtractionHold.Milliseconds(),
		p.MapLoad.Milliseconds(),
		p.LocationHold.Milliseconds(),
		p.CountdownFrom,
		p.CountdownDelay.Milliseconds(),
		p.CountdownSettle.Milliseconds(),
		p.WarningsDelay.Milliseconds(),
		p.DisclosureDelay.Milliseconds(),
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Speed <= 0 {
		return fmt.Errorf("--speed must be > 0")
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("--timeout-ms must be > 0")
	}
	if cfg.Endpoint == "" {
		return fmt.Errorf("--endpoint must not be empty")
	}
	if cfg.Pacing.CountdownFrom <= 0 {
		return fmt.Errorf("--countdown must be > 0")
	}
	p := cfg.Pacing
	for _, d := range []time.Duration{
		p.ScanSettle, p.ExtractionReveal, p.ExtractionHold, p.MapLoad, p.LocationHold,
		p.CountdownDelay, p.CountdownSettle, p.WarningsDelay, p.DisclosureDelay,
	} {
		if d < 0 {
			return fmt.Errorf("pacing values must be >= 0")
		}
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
