// Package byline はYahoo!ニュース個人の著者ページから記事メタデータを
// 抽出し、非公式RSSフィードを生成する。
//
// パイプラインは Fetch → Parse → MakeRSS の3段構成で、
// GetRSSが3つをまとめて実行する。
package byline

import "context"

// GetRSS は著者キーからRSSドキュメントまでのパイプラインを一度に実行する
func GetRSS(ctx context.Context, cfg Config, key string) (string, error) {
	rawHTML, err := Fetch(ctx, cfg, key)
	if err != nil {
		return "", err
	}

	data, err := ParseWith(rawHTML, DefaultSelectors(), cfg.BaseURL)
	if err != nil {
		return "", err
	}

	return MakeRSS(key, data)
}
