package main

import (
	"github.com/plus3/starfield/surface/window"
	"github.com/spf13/cobra"
)

var windowOpts = &window.Options{}

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Show the starfield in a desktop window",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Flags(), opts)
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true

		return window.Run(cmd.Context(), cfg, *windowOpts)
	},
}

func init() {
	flags := windowCmd.Flags()
	flags.StringVar(&windowOpts.Title, "title", valueFromEnvString("TITLE", "Starfield"), "window title.")
	flags.IntVar(&windowOpts.Width, "width", valueFromEnvInt("WIDTH", 1280), "window width.")
	flags.IntVar(&windowOpts.Height, "height", valueFromEnvInt("HEIGHT", 720), "window height.")
	flags.BoolVar(&windowOpts.Debug, "debug", valueFromEnvBool("DEBUG", false), "show the settings and performance panels.")

	rootCmd.AddCommand(windowCmd)
}
