//go:build !headless

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"wireframe-rasterizer/internal/config"
	"wireframe-rasterizer/internal/display"
	"wireframe-rasterizer/internal/raster"
	"wireframe-rasterizer/internal/scene"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	sceneName := flag.String("scene", "", "Scene file (.json/.obj) or built-in name: triangle, cube")
	scale := flag.Int("scale", 0, "Window pixels per frame pixel (default: 1)")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	if *verbose {
		raster.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{Scene: *sceneName, Scale: *scale})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var sc scene.Scene
	if cfg.SceneIsFile() {
		var err error
		sc, err = scene.Load(cfg.Scene)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
			os.Exit(1)
		}
	} else {
		var ok bool
		sc, ok = scene.Builtin(cfg.Scene)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown built-in scene %q\n", cfg.Scene)
			os.Exit(1)
		}
	}

	fmt.Println("A/D rotate, Esc quits")

	err := display.Run(display.Settings{
		Title:      "Wireframe - " + sc.Name,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Scale:      cfg.Scale,
		Camera:     cfg.Camera(),
		DepthRange: cfg.Depth(),
		Angle:      cfg.Angle,
		AngleStep:  cfg.AngleStep,
	}, sc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
