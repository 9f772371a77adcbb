package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/decker502/gallery/pkg/app"
	"github.com/decker502/gallery/pkg/embedded"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var cfg app.Config

	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Image gallery with cascading mover transitions",
		Long: `gallery shows a sectioned image grid. Clicking an image plays a cascade of
clipped copies ("movers") travelling from the grid cell to a detail panel.

Keys: Esc closes the panel, F11 toggles fullscreen, F5 reloads the config,
M toggles reduced motion.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.ConfigPath, "config", "c", "", "gallery YAML config (default: embedded assets/config/gallery.yaml)")
	cmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().BoolVar(&cfg.Fullscreen, "fullscreen", false, "start in fullscreen")
	cmd.Flags().BoolVar(&cfg.ReducedMotion, "reduced-motion", false, "disable mover cascades for this run")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", 0, "random seed for path wobble and mover rotation (0 = time based)")

	return cmd
}

func run(cfg app.Config) error {
	embedded.Init(assetsFS)

	galleryApp, err := app.NewApp(cfg)
	if err != nil {
		return err
	}
	defer galleryApp.Shutdown()

	if err := ebiten.RunGame(galleryApp); err != nil {
		return fmt.Errorf("game loop: %w", err)
	}
	log.Debug("[Main] Game loop finished")
	return nil
}
