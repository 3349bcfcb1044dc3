// =============================================================================
// main.go - bylinerss エントリーポイント
// =============================================================================
//
// Yahoo!ニュース個人の著者ページから非公式RSSフィードを生成するCLIツールです。
//
// 【使い方】
//
//	著者ごとにファイルを出力:
//	  bylinerss -d ./feeds key1 key2 ...
//
//	全著者を1つのフィードにまとめて出力:
//	  bylinerss -o all.rss -f keys.txt
//
// 【処理フロー】
//  1. .env読み込み（godotenv）・CLIフラグ解析
//  2. 著者キーの収集（ファイル + 位置引数）、検証、重複除去
//  3. キーごとに Fetch → Parse → 出力（キー間はアクセス間隔を空ける）
//  4. 失敗したキーがあれば終了コード1
//
// 1キーの取得・解析失敗はログに記録して続行します。
// セットアップ段階のエラー（キーなし・間隔不正など）のみ即終了します。
//
// =============================================================================
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"byline-relay/internal/byline"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// .env ファイルから環境変数を読み込み
	// ファイルが存在しない場合は環境変数のみで続行する
	if err := godotenv.Load(); err != nil {
		logger.Debug(".env file not loaded", slog.String("error", err.Error()))
	}

	cfg := ParseFlags()

	if cfg.Output.Directory != "" && cfg.Output.File != "" {
		logger.Error("-d と -o は同時に指定できません")
		os.Exit(2)
	}
	if cfg.Access.WaitSeconds < 1 {
		logger.Error("指定されたアクセス間隔が不正です", slog.Int("wait", cfg.Access.WaitSeconds))
		os.Exit(2)
	}

	keys, err := collectKeys(cfg, logger)
	if err != nil {
		logger.Error("著者キーの読み込みに失敗しました", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(keys) == 0 {
		logger.Error("著者キーが指定されていません")
		os.Exit(2)
	}

	selectors := byline.DefaultSelectors()
	if cfg.Access.SelectorsFile != "" {
		selectors, err = byline.LoadSelectors(cfg.Access.SelectorsFile)
		if err != nil {
			logger.Error("セレクタテーブルの読み込みに失敗しました", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	var output byline.OutputHandler
	if cfg.Output.Directory != "" {
		output = &byline.SeparateFileOutput{Dir: cfg.Output.Directory}
	} else {
		output = &byline.SingleFileOutput{Path: cfg.Output.File}
	}

	var clipper *byline.NotionClipper
	if cfg.Notion.Clip {
		databaseID := os.Getenv("NOTION_DATABASE_ID")
		clipper, err = byline.NewNotionClipper(os.Getenv("NOTION_TOKEN"), databaseID)
		if err != nil {
			logger.Error("Notionの設定が不正です", slog.String("error", err.Error()))
			os.Exit(1)
		}
		// データベース未指定の場合はNOTION_PAGE_IDの下に新規作成する
		if databaseID == "" {
			if err := clipper.CreateDatabase(context.Background(), os.Getenv("NOTION_PAGE_ID")); err != nil {
				logger.Error("Notionデータベースの作成に失敗しました", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}
	}

	runner := &byline.Runner{
		Config:    byline.ConfigFromEnv(),
		Selectors: selectors,
		Output:    output,
		Clipper:   clipper,
		Logger:    logger,
		Wait:      time.Duration(cfg.Access.WaitSeconds) * time.Second,
	}

	failed := runner.Run(context.Background(), keys)
	if failed > 0 {
		os.Exit(1)
	}
}

// collectKeys はキーファイルと位置引数から著者キーのリストを組み立てる。
// 妥当でないキーは警告を出して無視し、重複は順序を保って除去する。
func collectKeys(cfg *CLIConfig, logger *slog.Logger) ([]string, error) {
	var keys []string

	if cfg.Input.KeysFile != "" {
		fileKeys, err := byline.ReadKeysFile(cfg.Input.KeysFile)
		if err != nil {
			return nil, err
		}
		keys = append(keys, fileKeys...)
	}
	keys = append(keys, cfg.Keys...)
	keys = byline.UniqKeys(keys)

	valid := keys[:0]
	for _, key := range keys {
		if !byline.IsValidKey(key) {
			logger.Warn("著者キーとして妥当でないものを無視します", slog.String("key", key))
			continue
		}
		valid = append(valid, key)
	}

	return valid, nil
}
