package main

import (
	"flag"
	"html/template"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	httpadapter "svw.info/minesweeper/internal/adapters/http"
	"svw.info/minesweeper/internal/config"
	"svw.info/minesweeper/internal/generator"
	"svw.info/minesweeper/internal/hint"
	"svw.info/minesweeper/internal/infrastructure/storage"
	"svw.info/minesweeper/internal/solver"
	"svw.info/minesweeper/internal/usecase"
	"svw.info/minesweeper/internal/validator"
	"svw.info/minesweeper/web"
)

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs method, path, status, bytes and duration per request.
// The websocket route hijacks the connection, so statusWriter only sees the
// upgrade attempt; it is passed through unwrapped.
func requestLogger(logger logrus.FieldLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		if r.URL.Path == "/api/ws" {
			logger.WithFields(logrus.Fields{"path": r.URL.Path, "remote": r.RemoteAddr}).Info("websocket")
			next.ServeHTTP(w, r)
			return
		}
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		logger.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"status": sw.status,
			"bytes":  sw.bytes,
			"dur":    time.Since(start).Round(time.Millisecond),
		}).Info("http")
	})
}

func main() {
	cfgPath := flag.String("config", "", "TOML config file (default ./"+config.DefaultFile+" if present)")
	addr := flag.String("addr", "", "listen address")
	persist := flag.String("persist-path", "", "directory for finished game records")
	levelStr := flag.String("log-level", "", "debug|info|warn|error")
	maxGames := flag.Int("max-games", -1, "maximum concurrent games, 0 for no limit")
	seed := flag.Int64("seed", 0, "board generator seed, 0 seeds from the clock")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logrus.WithError(err).Fatal("loading config")
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Server.Addr = *addr
		case "persist-path":
			cfg.Server.PersistPath = *persist
		case "log-level":
			cfg.Server.LogLevel = *levelStr
		case "max-games":
			cfg.Server.MaxGames = *maxGames
		case "seed":
			cfg.Game.Seed = *seed
		}
	})
	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("bad configuration")
	}

	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	lvl, _ := logrus.ParseLevel(cfg.Server.LogLevel)
	logger.SetLevel(lvl)

	if err := os.MkdirAll(cfg.Server.PersistPath, 0o755); err != nil {
		logger.WithError(err).Fatal("creating persist path")
	}

	var gen *generator.Uniform
	if cfg.Game.Seed != 0 {
		gen = generator.NewUniform(cfg.Game.Seed)
	} else {
		gen = generator.NewUniformFromClock()
	}

	// Wire providers → use cases → HTTP adapter
	hin := hint.NewSingles()
	uc := usecase.NewService(
		gen,
		validator.New(cfg.Game.MaxSize),
		hin,
		storage.NewFS(cfg.Server.PersistPath),
		solver.NewAutoplayer(hin, time.Now().UnixNano()),
	)
	uc.MaxGames = cfg.Server.MaxGames
	uc.Log = logger
	h := httpadapter.New(uc, cfg.Params())
	h.Log = logger

	tmpl := web.Templates()
	page := map[string]any{"Size": cfg.Game.Size, "Bombs": cfg.Game.Bombs, "MaxSize": cfg.Game.MaxSize}

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(web.StaticFS())))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.ExecuteTemplate(w, "index.tmpl", page); err != nil {
			http.Error(w, template.HTMLEscapeString(err.Error()), http.StatusInternalServerError)
		}
	})
	h.Register(mux)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           requestLogger(logger, mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.WithFields(logrus.Fields{
		"addr":    cfg.Server.Addr,
		"persist": cfg.Server.PersistPath,
		"board":   cfg.Params(),
	}).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Error("server error")
		os.Exit(1)
	}
}
