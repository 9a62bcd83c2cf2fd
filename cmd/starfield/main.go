// Command starfield shows an interactive parallax starfield in a window or
// a terminal, renders headless snapshots and benchmarks the simulation.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/plus3/starfield/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// options are the flags shared by every subcommand.
type options struct {
	configFile string
	logLevel   string

	dots       int
	color      string
	background string
	stretch    bool
	jitter     string
	seed       uint64
}

var opts = &options{}

var rootCmd = &cobra.Command{
	Use:   "starfield",
	Short: "Interactive parallax starfield",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := parseLevel(opts.logLevel)
		if err != nil {
			return err
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", valueFromEnvString("CONFIG", ""), "YAML or JSON settings file.")
	flags.StringVar(&opts.logLevel, "log-level", valueFromEnvString("LOG_LEVEL", "info"), "log level: debug, info, warn or error.")
	bindConfigOverrides(flags, opts)
}

// bindConfigOverrides registers flags that override single settings. They
// only apply when given explicitly.
func bindConfigOverrides(flags *pflag.FlagSet, o *options) {
	def := config.Default()
	flags.IntVar(&o.dots, "dots", valueFromEnvInt("DOTS", def.NumDots), "number of points.")
	flags.StringVar(&o.color, "color", valueFromEnvString("COLOR", def.DotColor), "dot colour.")
	flags.StringVar(&o.background, "background", valueFromEnvString("BACKGROUND", def.BackgroundColor), "background colour, or transparent.")
	flags.BoolVar(&o.stretch, "stretch", valueFromEnvBool("STRETCH", def.DotStretch), "stretch fast points along their heading.")
	flags.StringVar(&o.jitter, "jitter", valueFromEnvString("JITTER", string(def.Jitter)), "random drift: uniform or perlin.")
	flags.Uint64Var(&o.seed, "seed", uint64(valueFromEnvInt("SEED", 0)), "random seed, 0 seeds from the clock.")
}

// loadConfig reads the settings file, if any, and applies the override
// flags that were set on the command line or through the environment.
func loadConfig(flags *pflag.FlagSet, o *options) (config.Config, error) {
	cfg := config.Default()
	if o.configFile != "" {
		loaded, err := config.Load(o.configFile)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	var p config.Patch
	if overridden(flags, "dots", "DOTS") {
		p.NumDots = &o.dots
	}
	if overridden(flags, "color", "COLOR") {
		p.DotColor = &o.color
	}
	if overridden(flags, "background", "BACKGROUND") {
		p.BackgroundColor = &o.background
	}
	if overridden(flags, "stretch", "STRETCH") {
		p.DotStretch = &o.stretch
	}
	if overridden(flags, "jitter", "JITTER") {
		mode := config.JitterMode(o.jitter)
		p.Jitter = &mode
	}
	if overridden(flags, "seed", "SEED") {
		p.Seed = &o.seed
	}

	next, _, err := cfg.Apply(p)
	return next, err
}

func overridden(flags *pflag.FlagSet, name, env string) bool {
	if flags.Changed(name) {
		return true
	}
	_, ok := os.LookupEnv(envPrefix + env)
	return ok
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return level, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
