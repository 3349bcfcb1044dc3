package byline

import (
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

func testFeedData() *FeedData {
	return &FeedData{
		Title:       "山本太郎の記事一覧 - Yahoo!ニュース",
		URL:         "https://news.yahoo.co.jp/byline/yamamototaro",
		Author:      "山本太郎",
		Description: "最近の記事です。",
		Entries: []Entry{
			{
				URL:     "https://news.yahoo.co.jp/byline/yamamototaro/a1",
				Title:   "最初の記事",
				Summary: "要約その1",
				Pubdate: time.Date(2020, 9, 2, 8, 32, 0, 0, tzTokyo),
			},
			{
				URL:       "https://news.yahoo.co.jp/byline/yamamototaro/a2",
				Title:     "二番目の記事",
				Summary:   "要約その2",
				Pubdate:   time.Date(2019, 12, 3, 22, 26, 0, 0, tzTokyo),
				Thumbnail: "https://s.yimg.jp/thumb/2.jpg",
			},
		},
	}
}

func TestMakeRSS_RoundTrip(t *testing.T) {
	rss, err := MakeRSS("yamamototaro", testFeedData())
	if err != nil {
		t.Fatalf("MakeRSS failed: %v", err)
	}

	feed, err := gofeed.NewParser().ParseString(rss)
	if err != nil {
		t.Fatalf("generated RSS is not parseable: %v", err)
	}

	if !strings.Contains(feed.Title, "山本太郎") {
		t.Errorf("channel title does not reference author: %q", feed.Title)
	}
	if feed.Link != "https://news.yahoo.co.jp/byline/yamamototaro" {
		t.Errorf("unexpected channel link: %q", feed.Link)
	}

	if len(feed.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(feed.Items))
	}

	// 入力順がそのまま<item>の順序になる
	if feed.Items[0].Title != "最初の記事" || feed.Items[1].Title != "二番目の記事" {
		t.Errorf("item order not preserved: %q, %q", feed.Items[0].Title, feed.Items[1].Title)
	}
	if feed.Items[0].Link != "https://news.yahoo.co.jp/byline/yamamototaro/a1" {
		t.Errorf("unexpected item link: %q", feed.Items[0].Link)
	}

	want := time.Date(2020, 9, 2, 8, 32, 0, 0, tzTokyo)
	if feed.Items[0].PublishedParsed == nil || !feed.Items[0].PublishedParsed.Equal(want) {
		t.Errorf("expected pubDate %v, got %v", want, feed.Items[0].PublishedParsed)
	}
}

func TestMakeRSS_EmptyCollection(t *testing.T) {
	data := &FeedData{Author: "山本太郎", URL: "https://news.yahoo.co.jp/byline/yamamototaro"}

	rss, err := MakeRSS("yamamototaro", data)
	if err != nil {
		t.Fatalf("MakeRSS failed on empty collection: %v", err)
	}

	feed, err := gofeed.NewParser().ParseString(rss)
	if err != nil {
		t.Fatalf("generated RSS is not parseable: %v", err)
	}
	if len(feed.Items) != 0 {
		t.Errorf("expected 0 items, got %d", len(feed.Items))
	}
	if feed.Title == "" {
		t.Error("channel metadata missing on empty feed")
	}
}

func TestMakeRSS_FallsBackToKey(t *testing.T) {
	data := &FeedData{} // 著者名もcanonical URLも解析できなかったケース

	rss, err := MakeRSS("somekey", data)
	if err != nil {
		t.Fatalf("MakeRSS failed: %v", err)
	}

	feed, err := gofeed.NewParser().ParseString(rss)
	if err != nil {
		t.Fatalf("generated RSS is not parseable: %v", err)
	}
	if !strings.Contains(feed.Title, "somekey") {
		t.Errorf("channel title should fall back to key: %q", feed.Title)
	}
	if feed.Link != "https://news.yahoo.co.jp/byline/somekey" {
		t.Errorf("channel link should fall back to top URL: %q", feed.Link)
	}
}

func TestMakeRSS_SanitizesSummary(t *testing.T) {
	data := testFeedData()
	data.Entries[0].Summary = `<script>alert(1)</script>本文 <b>テキスト</b>`

	rss, err := MakeRSS("yamamototaro", data)
	if err != nil {
		t.Fatalf("MakeRSS failed: %v", err)
	}

	feed, err := gofeed.NewParser().ParseString(rss)
	if err != nil {
		t.Fatalf("generated RSS is not parseable: %v", err)
	}

	desc := feed.Items[0].Description
	if strings.Contains(desc, "<script>") || strings.Contains(desc, "alert(1)") {
		t.Errorf("script content not stripped: %q", desc)
	}
	if !strings.Contains(desc, "本文") {
		t.Errorf("plain text lost during sanitization: %q", desc)
	}
}

func TestMakeRSS_ThumbnailEnclosure(t *testing.T) {
	rss, err := MakeRSS("yamamototaro", testFeedData())
	if err != nil {
		t.Fatalf("MakeRSS failed: %v", err)
	}

	feed, err := gofeed.NewParser().ParseString(rss)
	if err != nil {
		t.Fatalf("generated RSS is not parseable: %v", err)
	}

	if len(feed.Items[0].Enclosures) != 0 {
		t.Errorf("entry without thumbnail should have no enclosure")
	}
	if len(feed.Items[1].Enclosures) != 1 || feed.Items[1].Enclosures[0].URL != "https://s.yimg.jp/thumb/2.jpg" {
		t.Errorf("thumbnail enclosure missing or wrong: %+v", feed.Items[1].Enclosures)
	}
}

func TestMakeRSS_ThumbnailTypeFromExtension(t *testing.T) {
	data := testFeedData()
	data.Entries[0].Thumbnail = "https://s.yimg.jp/thumb/1.png?w=120"

	rss, err := MakeRSS("yamamototaro", data)
	if err != nil {
		t.Fatalf("MakeRSS failed: %v", err)
	}

	feed, err := gofeed.NewParser().ParseString(rss)
	if err != nil {
		t.Fatalf("generated RSS is not parseable: %v", err)
	}

	if got := feed.Items[0].Enclosures[0].Type; got != "image/png" {
		t.Errorf("expected image/png for .png thumbnail, got %q", got)
	}
	// 拡張子が不明な場合はJPEG扱い
	if got := feed.Items[1].Enclosures[0].Type; got != "image/jpeg" {
		t.Errorf("expected image/jpeg fallback, got %q", got)
	}
}
