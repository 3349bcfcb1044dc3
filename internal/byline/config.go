// =============================================================================
// config.go - フェッチ設定
// =============================================================================
//
// このファイルはYahoo!ニュース個人へのアクセス設定を定義します。
//
// 【設定項目】
//   - BaseURL:   サイトのベースURL（テストではhttptestサーバーに差し替える）
//   - Timeout:   HTTPリクエストのタイムアウト
//   - UserAgent: User-Agentヘッダー（空のUAを拒否するサイトがあるため必須）
//
// 設定はモジュールレベルの変数として持たず、必ず値として各関数に渡します。
//
// =============================================================================
package byline

import (
	"os"
	"strconv"
	"time"
)

// DefaultBaseURL はYahoo!ニュース個人のベースURL
const DefaultBaseURL = "https://news.yahoo.co.jp"

// DefaultUserAgent はデフォルトのUser-Agent
//
// 空やGoデフォルトのUAだとブロックされる場合があるため、
// 一般的なブラウザ相当の文字列を使用する。
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultTimeout はHTTPリクエストのデフォルトタイムアウト
const DefaultTimeout = 20 * time.Second

// Config はフェッチャーの設定
type Config struct {
	// BaseURL はサイトのベースURL（末尾スラッシュなし）
	BaseURL string

	// Timeout はHTTPリクエストのタイムアウト
	Timeout time.Duration

	// UserAgent はUser-Agentヘッダーの値
	UserAgent string
}

// DefaultConfig はデフォルト設定を返す
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// ConfigFromEnv は環境変数で上書きした設定を返す
//
// 読み込む環境変数:
//   - BYLINE_BASE_URL:        ベースURL
//   - BYLINE_TIMEOUT_SECONDS: タイムアウト（秒）
//   - BYLINE_USER_AGENT:      User-Agent
//
// 未設定の項目はデフォルト値のまま。.envファイルの読み込みは
// コマンド側（godotenv）で行う。
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("BYLINE_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("BYLINE_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.Timeout = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("BYLINE_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}

	return cfg
}
