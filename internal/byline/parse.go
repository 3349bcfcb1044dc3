// =============================================================================
// parse.go - 記事一覧ページの解析
// =============================================================================
//
// このファイルはシステムの中核です。取得したHTMLをgoqueryでDOMツリーに
// 変換し、セレクタテーブル（selectors.go）で記事エントリを特定して
// 構造化データ（FeedData / Entry）を抽出します。
//
// 【抽出ポリシー】
//   - エントリの位置（何番目か）ではなく構造マーカー（クラス・タグ）で特定する
//   - リンク・タイトル・日時のいずれかが取れないエントリは黙ってスキップする
//     （1件の不正エントリがページ全体の処理を止めてはならない）
//   - 記事一覧領域そのものが見つからない場合のみExtractionError
//
// 【日時の形式】
//
//	Yahoo!ニュース個人は今年の日付から年を省略し、当日の記事は
//	時刻のみで表示することがある。いずれも日本標準時で補完する。
//
// =============================================================================
package byline

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// tzTokyo は日本標準時。日時の補完はサーバーのローカルゾーンではなく
// 常にこのゾーンで行う（深夜帯に日付が1日ずれるのを防ぐ）。
var tzTokyo = time.FixedZone("JST", 9*60*60)

// Entry は記事一覧の1記事分
type Entry struct {
	URL       string    // 記事URL（絶対URL）
	Title     string    // 記事タイトル
	Summary   string    // 要約テキスト
	Pubdate   time.Time // 公開日時（JST）
	Thumbnail string    // サムネイル画像URL（省略可）
}

// FeedData は記事一覧ページの解析結果
type FeedData struct {
	Title       string  // ページタイトル
	URL         string  // canonical URL
	Author      string  // 著者名
	Description string  // meta description
	Entries     []Entry // 記事リスト（ページの出現順のまま）
}

var (
	// 日付+時刻: "2019/12/3(火) 22:26" または年省略の "9/2(水) 8:32"
	pubdatePattern = regexp.MustCompile(`(?:([0-9]{4})/)?(1[012]|[1-9])/([123]?[0-9]).*?([0-9]{1,2}):([0-9]{1,2})`)

	// 時刻のみ: "8:32"（当日の記事）
	timeOnlyPattern = regexp.MustCompile(`([0-9]{1,2}):([0-9]{1,2})`)

	// ページタイトル "〇〇の記事一覧" から著者名を取り出す
	authorPattern = regexp.MustCompile(`(.+)の記事一覧`)
)

// ParsePubdate はYahoo!ニュース個人の日時表記を解析する
//
// 現在時刻を基準に年・日付を補完する。基準時刻を固定したい場合は
// ParsePubdateAtを使う。
func ParsePubdate(s string) (time.Time, bool) {
	return ParsePubdateAt(s, time.Now().In(tzTokyo))
}

// ParsePubdateAt は基準時刻nowを指定して日時表記を解析する
//
// 認識する形式:
//   - "2019/12/3(火) 22:26" → そのままJSTの日時
//   - "9/2(水) 8:32"        → 年を省略した形式。nowの年で補完
//   - "8:32"                → 時刻のみ。nowの日付（JST）で補完
//
// 解析できない場合は第2戻り値がfalse。
func ParsePubdateAt(s string, now time.Time) (time.Time, bool) {
	now = now.In(tzTokyo)

	if m := pubdatePattern.FindStringSubmatch(s); m != nil {
		year := now.Year()
		if m[1] != "" {
			year = atoi(m[1])
		}
		return time.Date(year, time.Month(atoi(m[2])), atoi(m[3]),
			atoi(m[4]), atoi(m[5]), 0, 0, tzTokyo), true
	}

	if m := timeOnlyPattern.FindStringSubmatch(s); m != nil {
		return time.Date(now.Year(), now.Month(), now.Day(),
			atoi(m[1]), atoi(m[2]), 0, 0, tzTokyo), true
	}

	return time.Time{}, false
}

// atoi は数字のみからなる文字列をintに変換する（正規表現で検証済みの入力用）
func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}

// Parse は記事一覧ページのHTMLを解析してFeedDataを返す。
// デフォルトのセレクタテーブルとベースURLを使用する。
func Parse(rawHTML string) (*FeedData, error) {
	return ParseWith(rawHTML, DefaultSelectors(), DefaultBaseURL)
}

// ParseWith はセレクタテーブルとベースURLを指定してHTMLを解析する。
//
// 記事一覧領域（sel.Listing）が存在しない場合は*ExtractionErrorを返す。
// 領域はあるがエントリが0件のページは空のEntriesを持つ正常な結果。
func ParseWith(rawHTML string, sel Selectors, baseURL string) (*FeedData, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, &ExtractionError{Selector: sel.Listing}
	}

	listing := doc.Find(sel.Listing)
	if listing.Length() == 0 {
		return nil, &ExtractionError{Selector: sel.Listing}
	}

	data := &FeedData{
		Title:       strings.TrimSpace(doc.Find("head title").First().Text()),
		URL:         attrOr(doc.Find(`link[rel="canonical"]`).First(), "href", ""),
		Description: attrOr(doc.Find(`meta[name="description"]`).First(), "content", ""),
	}
	if m := authorPattern.FindStringSubmatch(data.Title); m != nil {
		data.Author = m[1]
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	now := time.Now().In(tzTokyo)
	listing.Find(sel.Entry).Each(func(_ int, s *goquery.Selection) {
		entry, ok := parseEntry(s, sel, base, now)
		if !ok {
			return // 不正なエントリは黙ってスキップ
		}
		data.Entries = append(data.Entries, entry)
	})

	return data, nil
}

// parseEntry は1エントリ分のノードからEntryを抽出する。
// リンク・タイトル・日時のいずれかが取れない場合はok=false。
func parseEntry(s *goquery.Selection, sel Selectors, base *url.URL, now time.Time) (Entry, bool) {
	href := attrOr(s.Find(sel.Link).First(), "href", "")
	if href == "" {
		return Entry{}, false
	}

	title := normalizeWhitespace(s.Find(sel.Title).First().Text())
	if title == "" {
		return Entry{}, false
	}

	pubdate, ok := ParsePubdateAt(s.Find(sel.Pubdate).First().Text(), now)
	if !ok {
		return Entry{}, false
	}

	return Entry{
		URL:       resolveURL(base, href),
		Title:     title,
		Summary:   normalizeWhitespace(s.Find(sel.Summary).First().Text()),
		Pubdate:   pubdate,
		Thumbnail: resolveURL(base, attrOr(s.Find(sel.Thumbnail).First(), "src", "")),
	}, true
}

// attrOr は属性値を返す。要素や属性がなければfallbackを返す。
func attrOr(s *goquery.Selection, attr, fallback string) string {
	v, exists := s.Attr(attr)
	if !exists {
		return fallback
	}
	return strings.TrimSpace(v)
}

// resolveURL は相対URLをベースURLに対して解決して絶対URLにする
func resolveURL(base *url.URL, href string) string {
	if href == "" || base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// normalizeWhitespace は連続する空白を単一スペースに正規化する
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
