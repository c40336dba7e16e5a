package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taipei_hotels/internal/app"
	"taipei_hotels/internal/domain"
)

type fakeBoard struct {
	pages    map[string]fakePage
	articles map[string]domain.Article
	broken   map[string]bool
}

type fakePage struct {
	links []string
	prev  string
}

func (b *fakeBoard) ListPage(ctx context.Context, path string) ([]string, string, error) {
	if b.broken[path] {
		return nil, "", errors.New("page unavailable")
	}
	p, ok := b.pages[path]
	if !ok {
		return nil, "", errors.New("no such page")
	}
	return p.links, p.prev, nil
}

func (b *fakeBoard) GetArticle(ctx context.Context, path string) (domain.Article, error) {
	if b.broken[path] {
		return domain.Article{}, errors.New("article unavailable")
	}
	return b.articles[path], nil
}

func TestCrawlService_WalksPagesAndWritesReport(t *testing.T) {
	board := &fakeBoard{
		pages: map[string]fakePage{
			"/bbs/Steam/index.html":  {links: []string{"/a1", "/a2"}, prev: "/bbs/Steam/index9.html"},
			"/bbs/Steam/index9.html": {links: []string{"/a3"}, prev: ""},
		},
		articles: map[string]domain.Article{
			"/a1": {Title: "第一篇", Likes: 5, Published: "Mon Jan  1 10:00:00 2024"},
			"/a2": {Title: "第二篇", Likes: -2, Published: "Mon Jan  1 11:00:00 2024"},
			"/a3": {Title: "第三篇", Likes: 0, Published: "Mon Jan  1 12:00:00 2024"},
		},
	}
	writer := &fakeWriter{}

	svc := app.NewCrawlService(board, writer, 3, "articles.csv")
	require.NoError(t, svc.Run(context.Background(), "/bbs/Steam/index.html"))

	rep, ok := writer.files["articles.csv"]
	require.True(t, ok)
	assert.Equal(t, []string{"ArticleTitle", "LikeCount", "PublishTime"}, rep.header)
	require.Len(t, rep.rows, 3)
	assert.Equal(t, []string{"第一篇", "5", "Mon Jan  1 10:00:00 2024"}, rep.rows[0])
	assert.Equal(t, []string{"第二篇", "-2", "Mon Jan  1 11:00:00 2024"}, rep.rows[1])
}

func TestCrawlService_FailedIndexStopsPagination(t *testing.T) {
	board := &fakeBoard{
		pages: map[string]fakePage{
			"/idx1": {links: []string{"/a1"}, prev: "/idx2"},
		},
		articles: map[string]domain.Article{"/a1": {Title: "only"}},
		broken:   map[string]bool{"/idx2": true},
	}
	writer := &fakeWriter{}

	svc := app.NewCrawlService(board, writer, 5, "articles.csv")
	require.NoError(t, svc.Run(context.Background(), "/idx1"))

	// Rows gathered before the failure are still written.
	require.Len(t, writer.files["articles.csv"].rows, 1)
}

func TestCrawlService_FailedArticleSkipped(t *testing.T) {
	board := &fakeBoard{
		pages: map[string]fakePage{
			"/idx1": {links: []string{"/bad", "/good"}},
		},
		articles: map[string]domain.Article{"/good": {Title: "ok"}},
		broken:   map[string]bool{"/bad": true},
	}
	writer := &fakeWriter{}

	svc := app.NewCrawlService(board, writer, 1, "articles.csv")
	require.NoError(t, svc.Run(context.Background(), "/idx1"))

	rows := writer.files["articles.csv"].rows
	require.Len(t, rows, 1)
	assert.Equal(t, "ok", rows[0][0])
}
