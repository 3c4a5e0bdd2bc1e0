package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"svw.info/minesweeper/internal/domain"
	"svw.info/minesweeper/internal/validator"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "minesweeper.toml"

type Config struct {
	Server Server `toml:"server"`
	Game   Game   `toml:"game"`
	Sound  Sound  `toml:"sound"`
}

type Server struct {
	Addr        string `toml:"addr"`
	LogLevel    string `toml:"log_level"`
	PersistPath string `toml:"persist_path"`
	MaxGames    int    `toml:"max_games"`
}

type Game struct {
	Size    int   `toml:"size"`
	Bombs   int   `toml:"bombs"`
	MaxSize int   `toml:"max_size"`
	Seed    int64 `toml:"seed"` // 0 seeds from the clock
}

type Sound struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // 0 to 1
}

func Default() Config {
	return Config{
		Server: Server{
			Addr:        ":8080",
			LogLevel:    "info",
			PersistPath: "./data",
			MaxGames:    1024,
		},
		Game: Game{
			Size:    10,
			Bombs:   20,
			MaxSize: validator.DefaultMaxSize,
		},
		Sound: Sound{Enabled: true, Volume: 0.6},
	}
}

// Load decodes path over the defaults. A missing DefaultFile is not an
// error; any other missing path is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultFile
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

func (c Config) Params() domain.Params {
	return domain.Params{Size: c.Game.Size, Bombs: c.Game.Bombs}
}

// Validate checks the default board against the size limit and the
// server settings.
func (c Config) Validate() error {
	var problems []string
	if c.Game.MaxSize < validator.MinSize {
		problems = append(problems, fmt.Sprintf("game.max_size must be at least %d", validator.MinSize))
	}
	if c.Server.MaxGames < 0 {
		problems = append(problems, "server.max_games must not be negative")
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		problems = append(problems, "sound.volume must be between 0 and 1")
	}
	if _, err := logrus.ParseLevel(c.Server.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("server.log_level %q is not a level", c.Server.LogLevel))
	}
	var pe *validator.ParamError
	if err := validator.New(c.Game.MaxSize).Validate(context.Background(), c.Params()); errors.As(err, &pe) {
		for _, p := range pe.Problems {
			problems = append(problems, "game: "+p)
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
