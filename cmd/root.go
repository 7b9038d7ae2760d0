package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "contactsheet",
		Short: "Lay out folders of photos as contact sheet pages",
		Long: `Contactsheet places every image of a folder into a grid of cells on
fixed-size pages, turning portrait images to landscape, scaling each one
to fit its cell and centering it.

Pages are A4 landscape at 300 DPI unless a config file says otherwise.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newPlanCmd())
	cmd.AddCommand(newInspectCmd())

	return cmd
}
