package main

import (
	"github.com/plus3/starfield/surface/term"
	"github.com/spf13/cobra"
)

var termOpts = &term.Options{}

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Show the starfield in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Flags(), opts)
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true

		return term.Run(cmd.Context(), cfg, *termOpts)
	},
}

func init() {
	flags := termCmd.Flags()
	flags.IntVar(&termOpts.FPS, "fps", valueFromEnvInt("FPS", 30), "frames per second.")
	flags.Float64Var(&termOpts.Scale, "scale", term.DefaultScale, "surface units per terminal pixel.")

	rootCmd.AddCommand(termCmd)
}
