// =============================================================================
// fetch.go - 著者ページの取得
// =============================================================================
//
// 指定した著者キーのYahoo!ニュース個人トップページを1回のHTTP GETで
// 取得します。リトライ・キャッシュは行いません（リトライポリシーは
// 呼び出し側の責務）。
//
// =============================================================================
package byline

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// TopURL は指定した著者のトップページURLを返す
//
// 著者キーはURLのパスセグメントとしてエスケープされる。
//
// 使用例:
//
//	TopURL(DefaultConfig(), "yamamototaro")
//	// "https://news.yahoo.co.jp/byline/yamamototaro"
func TopURL(cfg Config, key string) string {
	return cfg.BaseURL + "/byline/" + url.PathEscape(key)
}

// Fetch は指定した著者のトップページを取得し、HTMLを文字列で返す。
//
// 失敗は常に*NetworkErrorとして返す:
//   - 接続失敗・タイムアウト（StatusCode=0）
//   - 非2xxステータス
func Fetch(ctx context.Context, cfg Config, key string) (string, error) {
	pageURL := TopURL(cfg, key)

	client := &http.Client{Timeout: cfg.Timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", &NetworkError{URL: pageURL, Err: err}
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ja,en-US;q=0.9,en;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		return "", &NetworkError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &NetworkError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{URL: pageURL, Err: err}
	}

	return string(body), nil
}
