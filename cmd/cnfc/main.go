package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/npillmayer/chomsky"
	"github.com/npillmayer/chomsky/config"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	traceLevel string

	// Configuration, loaded before any command runs
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:     "cnfc",
	Short:   "cnfc converts context-free grammars to Chomsky Normal Form",
	Version: chomsky.Version,
	Long: `cnfc converts context-free grammars to Chomsky Normal Form (CNF).

Conversion runs the stages START, DEL, UNIT, TERM and BIN. Grammars are read
from files, entered interactively, or posted to an HTTP service.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return err
		}
		if traceLevel != "" {
			cfg.Tracing.Level = traceLevel
		}
		initTracing(cfg.TraceLevel())
		tracer().Debugf("configuration loaded from %q", configFile)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "configuration file (YAML)")
	rootCmd.PersistentFlags().StringVarP(&traceLevel, "trace", "t", "", "trace level [Debug|Info|Error]")
}

// initTracing routes all tracers to a Go logger.
func initTracing(level tracing.TraceLevel) {
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	tracer().SetTraceLevel(level)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func main() {
	initDisplay()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}
