package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"taipei_hotels/internal/adapters/csvout"
	"taipei_hotels/internal/adapters/observability"
	"taipei_hotels/internal/adapters/ptt"
	"taipei_hotels/internal/app"
	"taipei_hotels/internal/shared"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv, "crawler")

	log.Info().
		Str("board", cfg.PTTBoard).
		Int("pages", cfg.CrawlPages).
		Msg("crawler starting")

	board := ptt.New(cfg.PTTBase, cfg.CrawlRPS)
	svc := app.NewCrawlService(board, csvout.New(), cfg.CrawlPages, cfg.ArticlesOut)

	if err := svc.Run(ctx, ptt.IndexPath(cfg.PTTBoard)); err != nil {
		log.Fatal().Err(err).Msg("crawl failed")
	}
	log.Info().Msg("crawl completed")
}
