// =============================================================================
// config.go - CLI設定
// =============================================================================
//
// このファイルはCLIフラグの解析と設定管理を行います。
//
// 【設定グループ】
//   - InputConfig:  著者キーの入力元
//   - OutputConfig: 出力先（ディレクトリ別 or 単一ファイル）
//   - AccessConfig: アクセス間隔・セレクタテーブル
//   - NotionConfig: Notion保存
//
// =============================================================================
package main

import "flag"

// DefaultHTTPWait はYahoo!へのアクセス間隔のデフォルト値（秒）
const DefaultHTTPWait = 5

// CLIConfig はコマンドの全設定を保持する
type CLIConfig struct {
	Input  InputConfig
	Output OutputConfig
	Access AccessConfig
	Notion NotionConfig

	// Keys は位置引数で渡された著者キー
	Keys []string
}

// InputConfig は著者キーの入力に関する設定
type InputConfig struct {
	// KeysFile が指定された場合、このファイルからも著者キーを読み込む
	KeysFile string
}

// OutputConfig は出力に関する設定
type OutputConfig struct {
	// Directory が指定された場合、著者ごとに<dir>/<key>.rssを出力
	Directory string

	// File が指定された場合、全著者を1つのフィードにまとめて出力
	// （DirectoryとFileは排他。どちらも空ならstdoutに出力）
	File string
}

// AccessConfig はサイトへのアクセスに関する設定
type AccessConfig struct {
	// WaitSeconds はキー間のアクセス間隔（秒）。1以上
	WaitSeconds int

	// SelectorsFile が指定された場合、セレクタテーブルをYAMLから読み込む
	SelectorsFile string
}

// NotionConfig はNotion保存に関する設定
type NotionConfig struct {
	// Clip がtrueの場合、抽出した記事をNotionデータベースにも保存する。
	// トークンとデータベースIDは環境変数（NOTION_TOKEN / NOTION_DATABASE_ID）。
	// NOTION_DATABASE_IDが空の場合はNOTION_PAGE_IDの下に新規データベースを作成する
	Clip bool
}

// ParseFlags はCLIフラグを解析してCLIConfigを返す
func ParseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	flag.StringVar(&cfg.Input.KeysFile, "f", "", "read author keys from this file (one per line, # comments)")
	flag.StringVar(&cfg.Output.Directory, "d", "", "write one <key>.rss per author into this directory")
	flag.StringVar(&cfg.Output.File, "o", "", "write a single merged feed to this file (default: stdout)")
	flag.IntVar(&cfg.Access.WaitSeconds, "w", DefaultHTTPWait, "seconds to wait between requests")
	flag.StringVar(&cfg.Access.SelectorsFile, "selectors", "", "optional: YAML file overriding the markup selector table")
	flag.BoolVar(&cfg.Notion.Clip, "notionClip", false, "also clip extracted articles to a Notion database")

	flag.Parse()
	cfg.Keys = flag.Args()
	return cfg
}
