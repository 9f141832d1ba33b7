package main

import (
	"context"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/liferoguelite/internal/config"
	"github.com/robalobadob/liferoguelite/internal/content"
	"github.com/robalobadob/liferoguelite/internal/daily"
	"github.com/robalobadob/liferoguelite/internal/httpserver"
	"github.com/robalobadob/liferoguelite/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	c, err := content.Load(cfg.ContentDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.ContentDir).Msg("failed to load content")
	}

	db, err := openDB(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer db.Close()
	sqlFS, err := fs.Sub(migrations, "sql")
	if err != nil {
		log.Fatal().Err(err).Msg("migrations")
	}
	if err := migrate(db, sqlFS); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mem := store.NewMemoryStore()
	go store.RunJanitor(ctx, mem, cfg.SweepInterval, cfg.SessionIdleTTL)

	srv := httpserver.New(httpserver.Options{
		Store:         mem,
		Content:       c,
		Runs:          daily.NewStore(db),
		JWTSecret:     cfg.JWTSecret,
		TokenTTL:      cfg.GameTokenTTL,
		SecureCookies: cfg.SecureCookies,
		ClientOrigin:  cfg.ClientOrigin,
		DailySalt:     cfg.DailySalt,
	})
	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := srv.Start(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
