package main

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"taipei_hotels/internal/adapters/csvout"
	"taipei_hotels/internal/adapters/feed"
	"taipei_hotels/internal/adapters/httpserver"
	"taipei_hotels/internal/adapters/observability"
	"taipei_hotels/internal/adapters/rediscache"
	"taipei_hotels/internal/app"
	"taipei_hotels/internal/domain"
	"taipei_hotels/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "api")

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		cache = rediscache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	}

	// One pipeline pass populates both the CSV reports and the snapshot the
	// API serves.
	svc := app.NewDirectoryService(
		feed.New(cfg.FeedRPS),
		csvout.New(),
		cache,
		app.DirectoryConfig{
			FeedZHURL:    cfg.FeedZHURL,
			FeedENURL:    cfg.FeedENURL,
			HotelsOut:    cfg.HotelsOut,
			DistrictsOut: cfg.DistrictsOut,
			CacheTTLSec:  int(cfg.CacheTTL.Seconds()),
		},
	)
	result, err := svc.Run(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("pipeline run failed")
	}

	srv := httpserver.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&httpserver.Handlers{Result: result})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
