package main

import (
	"errors"
	"log/slog"

	"github.com/plus3/starfield"
	"github.com/plus3/starfield/config"
	"github.com/plus3/starfield/driver"
	"github.com/plus3/starfield/surface/raster"
	"github.com/spf13/cobra"
)

type snapshotConfig struct {
	width        int
	height       int
	warmup       int
	count        int
	outputPrefix string
}

func (s *snapshotConfig) check() error {
	if s.outputPrefix == "" {
		return errors.New("output prefix should be set")
	}
	if s.count < 1 {
		return errors.New("count should be at least 1")
	}
	if s.warmup < 0 {
		return errors.New("warmup should not be negative")
	}
	return nil
}

// runSnapshot simulates at a steady 60 Hz and saves count consecutive
// frames after warmup frames.
func runSnapshot(cfg config.Config, sc *snapshotConfig) ([]string, error) {
	surface, err := raster.NewSurface(sc.width, sc.height)
	if err != nil {
		return nil, err
	}
	engine, err := starfield.New(cfg, surface, surface)
	if err != nil {
		return nil, err
	}
	defer engine.Destroy()

	for i := 0; i < sc.warmup; i++ {
		if err := engine.Step(driver.FramePeriod); err != nil {
			return nil, err
		}
	}

	filer := raster.NewFiler(surface, sc.outputPrefix, 4)
	files := make([]string, 0, sc.count)
	for i := 0; i < sc.count; i++ {
		if _, err := engine.Frame(driver.FramePeriod); err != nil {
			return files, err
		}
		name, err := filer.Save()
		if err != nil {
			return files, err
		}
		files = append(files, name)
	}

	slog.Info("snapshot written", slog.Int("frames", len(files)), slog.String("prefix", sc.outputPrefix))
	return files, nil
}

var snapshot = &snapshotConfig{}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render frames to PNG files without a display",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := snapshot.check(); err != nil {
			return err
		}
		cfg, err := loadConfig(cmd.Flags(), opts)
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true

		_, err = runSnapshot(cfg, snapshot)
		return err
	},
}

func init() {
	flags := snapshotCmd.Flags()
	flags.IntVar(&snapshot.width, "width", valueFromEnvInt("WIDTH", 1280), "image width.")
	flags.IntVar(&snapshot.height, "height", valueFromEnvInt("HEIGHT", 720), "image height.")
	flags.IntVar(&snapshot.warmup, "warmup", 120, "frames simulated before the first image.")
	flags.IntVar(&snapshot.count, "count", 1, "number of consecutive frames to save.")
	flags.StringVarP(&snapshot.outputPrefix, "output-prefix", "o", valueFromEnvString("OUTPUT_PREFIX", "starfield-"), "output file prefix.")

	rootCmd.AddCommand(snapshotCmd)
}
