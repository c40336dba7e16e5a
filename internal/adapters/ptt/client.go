package ptt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"taipei_hotels/internal/domain"
)

var ErrPageUnavailable = errors.New("ptt: page unavailable")

// Client scrapes a PTT board. Every request carries the over18 cookie the
// site requires and goes through a shared rate limiter to stay polite.
type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base string, rps int) *Client {
	if rps <= 0 {
		rps = 2
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// IndexPath returns the newest index page path for a board.
func IndexPath(board string) string {
	return "/bbs/" + board + "/index.html"
}

// ListPage fetches one board index page and returns the linked article paths
// plus the path of the previous (older) index page, empty when there is none.
func (c *Client) ListPage(ctx context.Context, path string) ([]string, string, error) {
	doc, err := c.getDoc(ctx, path)
	if err != nil {
		return nil, "", err
	}

	var links []string
	doc.Find("div.title a").Each(func(_ int, a *goquery.Selection) {
		if href, ok := a.Attr("href"); ok && href != "" {
			links = append(links, href)
		}
	})

	prev := ""
	doc.Find("a.btn.wide").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if strings.Contains(a.Text(), "上頁") {
			prev, _ = a.Attr("href")
			return false
		}
		return true
	})

	return links, prev, nil
}

// GetArticle fetches one article page and extracts its title, like count and
// publish time. The like count is +1 per 推 push tag and -1 per 噓.
func (c *Client) GetArticle(ctx context.Context, path string) (domain.Article, error) {
	doc, err := c.getDoc(ctx, path)
	if err != nil {
		return domain.Article{}, err
	}

	art := domain.Article{}
	art.Title, _ = doc.Find(`meta[property="og:title"]`).Attr("content")

	// Publish time: the meta line tagged 時間, falling back to the fourth
	// meta value when the tag is missing.
	doc.Find("div.article-metaline").EachWithBreak(func(_ int, line *goquery.Selection) bool {
		if strings.TrimSpace(line.Find("span.article-meta-tag").Text()) == "時間" {
			art.Published = strings.TrimSpace(line.Find("span.article-meta-value").Text())
			return false
		}
		return true
	})
	if art.Published == "" {
		metas := doc.Find("span.article-meta-value")
		if metas.Length() >= 4 {
			art.Published = strings.TrimSpace(metas.Eq(3).Text())
		}
	}

	doc.Find("span.hl.push-tag").Each(func(_ int, tag *goquery.Selection) {
		switch {
		case strings.Contains(tag.Text(), "推"):
			art.Likes++
		case strings.Contains(tag.Text(), "噓"):
			art.Likes--
		}
	})

	return art, nil
}

func (c *Client) getDoc(ctx context.Context, path string) (*goquery.Document, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	url := path
	if strings.HasPrefix(path, "/") {
		url = c.base + path
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.AddCookie(&http.Cookie{Name: "over18", Value: "1"})

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d", ErrPageUnavailable, url, resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}
