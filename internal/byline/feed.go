// =============================================================================
// feed.go - RSS 2.0 の生成
// =============================================================================
//
// 解析結果（FeedData）からRSS 2.0ドキュメントを生成します。
// ネットワーク・ディスクI/Oは一切行わない純粋な変換です。
// エントリ0件でも（チャンネルメタデータのみの）正当なRSSを返します。
//
// RSSの仕様に関する参考URL:
// RSS Advisory Board https://www.rssboard.org/
//
// =============================================================================
package byline

import (
	"encoding/xml"
	"fmt"
	"html"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// summaryPolicy は要約テキストからHTMLタグを全て除去するポリシー
var summaryPolicy = bluemonday.StrictPolicy()

// plainText はHTMLタグを除去したプレーンテキストを返す。
// サニタイズ後のエンティティ参照は元の文字に戻す
// （XMLシリアライズ時に二重エスケープされるのを防ぐ）。
func plainText(s string) string {
	return html.UnescapeString(summaryPolicy.Sanitize(s))
}

// thumbnailType はサムネイルURLの拡張子からMIMEタイプを推定する。
// 判定できない場合はサイトの既定フォーマットであるJPEGとみなす。
func thumbnailType(thumbURL string) string {
	ext := ""
	if u, err := url.Parse(thumbURL); err == nil {
		ext = strings.ToLower(path.Ext(u.Path))
	}
	switch ext {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Language    string    `xml:"language"` // RSS Language Codes https://www.rssboard.org/rss-language-codes
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string        `xml:"title"`
	Link        string        `xml:"link"`
	Description string        `xml:"description,omitempty"`
	PubDate     string        `xml:"pubDate"` // RFC 822形式
	Enclosure   *rssEnclosure `xml:"enclosure,omitempty"`
}

type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Type   string `xml:"type,attr"`
	Length string `xml:"length,attr"`
}

// MakeRSS はFeedDataからRSS 2.0ドキュメントを生成する。
//
// チャンネルタイトルは著者名を参照する。著者名が解析できなかった場合は
// 著者キーで代替し、canonical URLがなければトップページURLで代替する。
// Entriesの順序はそのまま<item>の順序になる（並べ替えない）。
func MakeRSS(key string, data *FeedData) (string, error) {
	author := data.Author
	if author == "" {
		author = key
	}
	link := data.URL
	if link == "" {
		link = TopURL(DefaultConfig(), key)
	}

	channel := rssChannel{
		Title:       fmt.Sprintf("%s - Yahoo!ニュース個人 (非公式RSS)", author),
		Link:        link,
		Description: data.Description,
		Language:    "ja",
	}

	for _, entry := range data.Entries {
		item := rssItem{
			Title:       entry.Title,
			Link:        entry.URL,
			Description: plainText(entry.Summary),
			PubDate:     entry.Pubdate.Format(time.RFC1123Z),
		}
		if entry.Thumbnail != "" {
			item.Enclosure = &rssEnclosure{
				URL:    entry.Thumbnail,
				Type:   thumbnailType(entry.Thumbnail),
				Length: "0",
			}
		}
		channel.Items = append(channel.Items, item)
	}

	out, err := xml.MarshalIndent(rssDoc{Version: "2.0", Channel: channel}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal RSS: %w", err)
	}

	return xml.Header + string(out) + "\n", nil
}
