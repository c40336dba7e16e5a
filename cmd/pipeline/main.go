package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"taipei_hotels/internal/adapters/csvout"
	"taipei_hotels/internal/adapters/feed"
	"taipei_hotels/internal/adapters/observability"
	"taipei_hotels/internal/adapters/rediscache"
	"taipei_hotels/internal/app"
	"taipei_hotels/internal/domain"
	"taipei_hotels/internal/shared"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "pipeline")
	observability.Serve()

	log.Info().
		Str("zh", cfg.FeedZHURL).
		Str("en", cfg.FeedENURL).
		Msg("pipeline starting")

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		cache = rediscache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	}

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

	if _, err := svc.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("pipeline run failed")
	}
	log.Info().Msg("pipeline completed")
}
