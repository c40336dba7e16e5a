package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	FeedZHURL    string
	FeedENURL    string
	FeedRPS      int
	HotelsOut    string
	DistrictsOut string

	PTTBase     string
	PTTBoard    string
	CrawlPages  int
	CrawlRPS    int
	ArticlesOut string
}

func Load() Config {
	// .env is optional; real env always wins.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env load failed")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	return Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),

		RedisAddr: env("REDIS_ADDR", ""),
		RedisDB:   atoi("REDIS_DB", 0),
		RedisPass: env("REDIS_PASSWORD", ""),
		CacheTTL:  time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,

		FeedZHURL:    env("FEED_ZH_URL", "https://resources-wehelp-taiwan-b986132eca78c0b5eeb736fc03240c2ff8b7116.gitlab.io/hotels-ch"),
		FeedENURL:    env("FEED_EN_URL", "https://resources-wehelp-taiwan-b986132eca78c0b5eeb736fc03240c2ff8b7116.gitlab.io/hotels-en"),
		FeedRPS:      atoi("FEED_RPS", 5),
		HotelsOut:    env("HOTELS_OUT", "hotels.csv"),
		DistrictsOut: env("DISTRICTS_OUT", "districts.csv"),

		PTTBase:     env("PTT_BASE_URL", "https://www.ptt.cc"),
		PTTBoard:    env("PTT_BOARD", "Steam"),
		CrawlPages:  atoi("CRAWL_PAGES", 3),
		CrawlRPS:    atoi("CRAWL_RPS", 2),
		ArticlesOut: env("ARTICLES_OUT", "articles.csv"),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
