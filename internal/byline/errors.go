package byline

import "fmt"

// NetworkError はHTTPフェッチの失敗を表す。
// 接続失敗・タイムアウトの場合はStatusCodeが0、
// 非2xx応答の場合はそのステータスコードが入る。
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

// Error はerrorインターフェースを実装する。
func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap は内包するエラーを返す。
func (e *NetworkError) Unwrap() error { return e.Err }

// ExtractionError はページは取得できたが記事一覧の構造が
// まるごと見つからなかったことを表す。サイトのマークアップが
// 互換性なく変更された場合に発生する。
type ExtractionError struct {
	Selector string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("listing structure not found (selector %q): site markup may have changed", e.Selector)
}
