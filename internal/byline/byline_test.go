package byline

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmcdole/gofeed"
)

func TestGetRSS_Pipeline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleListingHTML))
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL

	rss, err := GetRSS(context.Background(), cfg, "yamamototaro")
	if err != nil {
		t.Fatalf("GetRSS failed: %v", err)
	}

	feed, err := gofeed.NewParser().ParseString(rss)
	if err != nil {
		t.Fatalf("GetRSS output is not valid RSS: %v", err)
	}

	// フィクスチャの正常エントリ3件がそのまま<item>になる
	if len(feed.Items) != 3 {
		t.Errorf("expected 3 items, got %d", len(feed.Items))
	}

	// 相対URLはフェッチ先のベースURLに対して解決される
	want := srv.URL + "/byline/yamamototaro/20191203-00000002"
	if feed.Items[1].Link != want {
		t.Errorf("expected item link %q, got %q", want, feed.Items[1].Link)
	}
}

func TestGetRSS_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL

	_, err := GetRSS(context.Background(), cfg, "nosuchauthor")
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected *NetworkError, got %T", err)
	}
}
