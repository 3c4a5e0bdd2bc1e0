package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"svw.info/minesweeper/internal/adapters/tui"
	"svw.info/minesweeper/internal/config"
	"svw.info/minesweeper/internal/game"
	"svw.info/minesweeper/internal/generator"
	"svw.info/minesweeper/internal/hint"
	"svw.info/minesweeper/internal/sound"
)

func main() {
	cfgPath := flag.String("config", "", "TOML config file (default ./"+config.DefaultFile+" if present)")
	size := flag.Int("size", 0, "board side length")
	bombs := flag.Int("bombs", 0, "number of bombs")
	seed := flag.Int64("seed", 0, "board generator seed, 0 seeds from the clock")
	mute := flag.Bool("mute", false, "disable sound")
	logFile := flag.String("log-file", "", "write logs here; the terminal is busy drawing")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "size":
			cfg.Game.Size = *size
		case "bombs":
			cfg.Game.Bombs = *bombs
		case "seed":
			cfg.Game.Seed = *seed
		case "mute":
			cfg.Sound.Enabled = !*mute
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		logger.SetOutput(f)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	}
	lvl, _ := logrus.ParseLevel(cfg.Server.LogLevel)
	logger.SetLevel(lvl)

	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Error("tui exited")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *logrus.Logger) error {
	gen := generator.NewUniformFromClock()
	if cfg.Game.Seed != 0 {
		gen = generator.NewUniform(cfg.Game.Seed)
	}
	g := game.New(game.WithGenerator(gen), game.WithLogger(logger))

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	app := tui.New(screen, g, cfg.Params())
	app.Hinter = hint.NewSingles()
	app.Log = logger

	if cfg.Sound.Enabled {
		player := sound.NewPlayer(cfg.Sound.Volume)
		if err := player.Init(); err != nil {
			// The game works without audio.
			logger.WithError(err).Warn("audio unavailable")
		} else {
			defer player.Close()
			app.Sounds = player
		}
	}

	if err := app.NewGame(); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.WithField("board", cfg.Params()).Info("tui started")
	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
