package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/plus3/starfield"
	"github.com/plus3/starfield/config"
	"github.com/plus3/starfield/driver"
	"github.com/plus3/starfield/render"
	"github.com/spf13/cobra"
)

type stressConfig struct {
	duration       time.Duration
	width          int
	height         int
	gcPauseMetrics bool
}

// runStress advances the field as fast as possible against a surface that
// discards every drawing command, then writes a report.
func runStress(ctx context.Context, cfg config.Config, sc *stressConfig, w io.Writer) (*Report, error) {
	rec := &render.Recorder{Discard: true}
	engine, err := starfield.New(cfg, starfield.FixedSize{Width: float64(sc.width), Height: float64(sc.height)}, rec)
	if err != nil {
		return nil, err
	}

	d := driver.New()
	d.Register(engine)
	defer d.Stop()

	report := &Report{
		Duration:       sc.duration,
		Points:         cfg.NumDots,
		Width:          sc.width,
		Height:         sc.height,
		Stretch:        cfg.DotStretch,
		Jitter:         string(cfg.Jitter),
		GCPauseMetrics: sc.gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	slog.Info("running stress test", slog.Duration("duration", sc.duration), slog.Int("points", cfg.NumDots))
	ctx, cancel := context.WithTimeout(ctx, sc.duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := startTime

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			elapsed := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			frameStart := time.Now()
			d.Once(elapsed)
			report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(frameStart))
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalFrames = d.GetStats().FrameCount
	report.Systems = d.GetStats().Systems
	report.Circles = engine.LastRender().Circles
	report.Ellipses = engine.LastRender().Ellipses
	report.Resets = engine.Resets()
	report.FrameTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	if err := report.Generate(w); err != nil {
		return report, fmt.Errorf("generate report: %w", err)
	}
	return report, nil
}

var stress = &stressConfig{}

var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Benchmark the simulation and print a report",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Flags(), opts)
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true

		_, err = runStress(cmd.Context(), cfg, stress, cmd.OutOrStdout())
		return err
	},
}

func init() {
	flags := stressCmd.Flags()
	flags.DurationVar(&stress.duration, "duration", valueFromEnvDuration("DURATION", 10*time.Second), "how long the test runs.")
	flags.IntVar(&stress.width, "width", valueFromEnvInt("WIDTH", 1920), "surface width.")
	flags.IntVar(&stress.height, "height", valueFromEnvInt("HEIGHT", 1080), "surface height.")
	flags.BoolVar(&stress.gcPauseMetrics, "gc-pause-metrics", false, "include GC pause totals in the report.")

	rootCmd.AddCommand(stressCmd)
}
