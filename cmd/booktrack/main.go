package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ainamardhia/book-tracking-app/internal/app"
	"github.com/ainamardhia/book-tracking-app/internal/ui"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "booktrack: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:           "booktrack",
		Short:         "Track your reading from the terminal",
		Long:          "booktrack is a terminal client for a reading tracker backend:\nmanage your library, reading progress, ratings, and AI recommendations.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return app.Run(ctx, opts)
		},
	}

	root.Flags().StringVar(&opts.ConfigPath, "config", "", "override config path (optional)")
	root.Flags().StringVar(&opts.APIURL, "api", "", "backend base URL (overrides config)")
	root.Flags().StringVar(&opts.Theme, "theme", "",
		"theme for this run: "+strings.Join(ui.ThemeNames(), ", ")+" (overrides saved preference)")
	return root
}
