//go:build integration || !unit

package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taipei_hotels/internal/adapters/csvout"
	"taipei_hotels/internal/adapters/feed"
	"taipei_hotels/internal/adapters/httpserver"
	"taipei_hotels/internal/app"
)

const zhFeed = `[
  {"id":"1","旅宿名稱":"A飯店","地址":"台北市大安區敦化南路1號","房間數":"50間","電話或手機號碼":"02-1111-1111"},
  {"id":"2","旅宿名稱":"B旅館"}
]`

const enFeed = `{"data":[
  {"id":"1","hotel name":"Hotel A","address":"1 Dunhua S. Rd.","the total number of rooms":"50"}
]}`

// runPipeline wires real adapters against fake upstream feeds and returns the
// API handler plus the output directory.
func runPipeline(t *testing.T) (http.Handler, string) {
	t.Helper()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if strings.HasSuffix(r.URL.Path, "/zh") {
			_, _ = w.Write([]byte(zhFeed))
			return
		}
		_, _ = w.Write([]byte(enFeed))
	}))
	t.Cleanup(upstream.Close)

	dir := t.TempDir()
	svc := app.NewDirectoryService(feed.New(100), csvout.New(), nil, app.DirectoryConfig{
		FeedZHURL:    upstream.URL + "/zh",
		FeedENURL:    upstream.URL + "/en",
		HotelsOut:    filepath.Join(dir, "hotels.csv"),
		DistrictsOut: filepath.Join(dir, "districts.csv"),
	})

	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("pipeline run: %v", err)
	}

	srv := httpserver.New()
	srv.MountHandlers(&httpserver.Handlers{Result: result})
	return srv.Mux(), dir
}

func TestE2E_ReportsOnDisk(t *testing.T) {
	_, dir := runPipeline(t)

	raw, err := os.ReadFile(filepath.Join(dir, "hotels.csv"))
	if err != nil {
		t.Fatalf("hotels.csv: %v", err)
	}
	body := string(raw)
	if !strings.HasPrefix(body, "\ufeff") {
		t.Fatal("hotels.csv missing UTF-8 BOM")
	}
	if !strings.Contains(body, "ChineseName,EnglishName,ChineseAddress,EnglishAddress,Phone,RoomCount") {
		t.Fatalf("unexpected hotels.csv header: %s", body)
	}
	if !strings.Contains(body, "A飯店,Hotel A,") {
		t.Fatalf("merged row missing: %s", body)
	}

	raw, err = os.ReadFile(filepath.Join(dir, "districts.csv"))
	if err != nil {
		t.Fatalf("districts.csv: %v", err)
	}
	if !strings.Contains(string(raw), "大安區,1,50") {
		t.Fatalf("district row missing: %s", raw)
	}
}

func TestE2E_HotelsEndpoint(t *testing.T) {
	h, _ := runPipeline(t)

	req := httptest.NewRequest("GET", "/v1/hotels", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	var hotels []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &hotels); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(hotels) != 2 {
		t.Fatalf("expected 2 hotels, got %d", len(hotels))
	}
	if hotels[0]["name_en"] != "Hotel A" {
		t.Fatalf("unexpected first hotel: %v", hotels[0])
	}

	// district filter
	req = httptest.NewRequest("GET", "/v1/hotels?district=大安區", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if err := json.Unmarshal(rr.Body.Bytes(), &hotels); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(hotels) != 1 {
		t.Fatalf("expected 1 hotel in 大安區, got %d", len(hotels))
	}
}

func TestE2E_DistrictsEndpointAndETag(t *testing.T) {
	h, _ := runPipeline(t)

	req := httptest.NewRequest("GET", "/v1/districts", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	etag := rr.Header().Get("ETag")
	if etag == "" {
		t.Fatal("expected ETag header")
	}

	var districts []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &districts); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(districts) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(districts))
	}

	// conditional request short-circuits
	req = httptest.NewRequest("GET", "/v1/districts", nil)
	req.Header.Set("If-None-Match", etag)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", rr.Code)
	}
}

func TestE2E_Healthz(t *testing.T) {
	h, _ := runPipeline(t)
	req := httptest.NewRequest("GET", "/healthz", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("healthz: %d %q", rr.Code, rr.Body.String())
	}
}
