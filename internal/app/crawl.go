package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"taipei_hotels/internal/domain"
)

var articlesHeader = []string{"ArticleTitle", "LikeCount", "PublishTime"}

// BoardClient walks a forum board: ListPage returns the articles linked from
// one index page plus the path of the previous (older) index page, and
// GetArticle parses a single article page.
type BoardClient interface {
	ListPage(ctx context.Context, path string) (links []string, prevPage string, err error)
	GetArticle(ctx context.Context, path string) (domain.Article, error)
}

// CrawlService collects recent board articles into a CSV report.
type CrawlService struct {
	board  BoardClient
	writer domain.ReportWriter
	pages  int
	out    string
}

func NewCrawlService(b BoardClient, w domain.ReportWriter, pages int, out string) *CrawlService {
	if pages <= 0 {
		pages = 1
	}
	return &CrawlService{board: b, writer: w, pages: pages, out: out}
}

// Run walks up to the configured number of index pages, newest first. A
// failed index page stops pagination; a failed article page skips that
// article. Collected rows are written even when pagination stops early.
func (s *CrawlService) Run(ctx context.Context, startPath string) error {
	var articles []domain.Article

	path := startPath
	for i := 0; i < s.pages; i++ {
		log.Info().Int("page", i+1).Str("path", path).Msg("crawling index page")
		links, prev, err := s.board.ListPage(ctx, path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("index page failed, stopping pagination")
			break
		}

		for _, link := range links {
			art, err := s.board.GetArticle(ctx, link)
			if err != nil {
				log.Warn().Err(err).Str("path", link).Msg("article failed, skipping")
				continue
			}
			articles = append(articles, art)
		}

		if prev == "" {
			log.Warn().Msg("no previous-page link, stopping pagination")
			break
		}
		path = prev
	}

	rows := make([][]string, 0, len(articles))
	for _, a := range articles {
		rows = append(rows, []string{a.Title, fmt.Sprintf("%d", a.Likes), a.Published})
	}
	if err := s.writer.WriteReport(s.out, articlesHeader, rows); err != nil {
		return fmt.Errorf("write %s: %w", s.out, err)
	}
	log.Info().Str("path", s.out).Int("articles", len(rows)).Msg("article report written")
	return nil
}
