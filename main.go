package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/andersonjr667/MeuControle/internal/config"
	"github.com/andersonjr667/MeuControle/internal/router"
	"github.com/andersonjr667/MeuControle/internal/storage"
	"github.com/andersonjr667/MeuControle/internal/util"

	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg.Log)

	if err := ensureDir(filepath.Dir(cfg.Store.Path)); err != nil {
		log.Fatal().Err(err).Msg("create data dir")
	}

	// generated secret means issued tokens die with the process
	if cfg.JWT.Secret == "" {
		secret, err := util.RandomString(32)
		if err != nil {
			log.Fatal().Err(err).Msg("generate jwt secret")
		}
		cfg.JWT.Secret = secret
		log.Warn().Msg("jwt secret not configured, generated an ephemeral one")
	}

	file := storage.NewFileStore(cfg.Store.Path)
	if _, err := file.Load(); err != nil {
		log.Fatal().Err(err).Msg("init file store")
	}

	var conn *storage.MongoConn
	if cfg.Mongo.URI != "" {
		conn = storage.NewMongoConn(cfg.Mongo.URI, cfg.Mongo.Database,
			time.Duration(cfg.Mongo.TimeoutSeconds)*time.Second, log)
		ctx, cancel := context.WithTimeout(context.Background(),
			time.Duration(cfg.Mongo.TimeoutSeconds)*time.Second)
		if !conn.Connect(ctx) {
			log.Warn().Msg("document database unreachable, serving from the file store")
		}
		cancel()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := conn.Disconnect(ctx); err != nil {
				log.Warn().Err(err).Msg("disconnect document database")
			}
		}()
	} else {
		log.Info().Msg("no document database configured, using the file store")
	}

	store := storage.NewSelector(conn, file)
	r := router.SetupRouter(cfg, store, conn, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("server listening")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("run server")
	}
}

func newLogger(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out := os.Stderr
	if cfg.File != "" {
		if err := ensureDir(filepath.Dir(cfg.File)); err == nil {
			if f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				out = f
			}
		}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
