package main

import (
	"flag"
	"image"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/automoto/steadystep/assets"
	"github.com/automoto/steadystep/config"
	"github.com/automoto/steadystep/headless"
	"github.com/automoto/steadystep/logger"
	"github.com/automoto/steadystep/scenes"
)

type Scene interface {
	Update() error
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

func NewGame(level string) *Game {
	return &Game{
		bounds: image.Rectangle{},
		scene:  scenes.NewSandboxScene(level),
	}
}

func (g *Game) Update() error {
	return g.scene.Update()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.Render.Width, config.Render.Height)
	return config.Render.Width, config.Render.Height
}

func main() {
	configPath := flag.String("config", "", "YAML file overriding the built-in constants")
	level := flag.String("level", "", "level to load (default: last used, then "+assets.DefaultLevel+")")
	headlessFor := flag.Duration("headless", 0, "run without a window for this long, steering the agent in a circle")
	logLevel := flag.String("log-level", "", "override the configured log level")
	flag.Parse()

	log := logger.Init(logger.Config{Level: config.Log.Level, Format: config.Log.Format})

	// Saved settings first so an explicit config file wins over them.
	if err := scenes.InitPersistence(); err != nil {
		log.Warn("settings will not persist", "err", err)
	}
	saved, _ := scenes.LoadSettings()
	scenes.ApplySavedSettings(saved)

	if *configPath != "" {
		if err := config.Load(*configPath); err != nil {
			log.Error("could not load config", "path", *configPath, "err", err)
			os.Exit(1)
		}
	}
	if *logLevel != "" {
		config.Log.Level = *logLevel
	}
	log = logger.Init(logger.Config{Level: config.Log.Level, Format: config.Log.Format})

	if *level == "" {
		*level = assets.DefaultLevel
		if saved != nil && saved.Level != "" {
			*level = saved.Level
		}
	}

	if *headlessFor > 0 {
		runner, err := headless.New(*level, log)
		if err != nil {
			log.Error("headless run failed", "err", err)
			os.Exit(1)
		}
		runner.Run(*headlessFor)
		return
	}

	ebiten.SetWindowTitle("steadystep")
	ebiten.SetWindowSize(config.Render.Width, config.Render.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	if err := ebiten.RunGame(NewGame(*level)); err != nil {
		log.Error("game exited", "err", err)
		os.Exit(1)
	}
}
