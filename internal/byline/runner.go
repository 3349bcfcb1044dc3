// =============================================================================
// runner.go - 複数著者のバッチ処理
// =============================================================================
//
// 著者キーのリストを順番に処理し、フィードを出力ハンドラに渡します。
// 処理は意図的に直列で、キー間にアクセス間隔を置きます
// （性能最適化ではなく、取得先サイトへの自主的なレートリミット）。
//
// 1キーの失敗（取得失敗・解析失敗）はログに記録して次のキーへ進みます。
// バッチ全体を止めるのは呼び出し側の判断です。
//
// =============================================================================
package byline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// OutputHandler は著者ごとの解析結果の出力先
type OutputHandler interface {
	// HandleAuthorFeed は1著者分の解析結果を受け取る
	HandleAuthorFeed(key string, data *FeedData) error

	// Finish は全著者の処理後に一度だけ呼ばれる
	Finish() error
}

// SeparateFileOutput は著者ごとに<dir>/<key>.rssを書き出す。
// 既存ファイルは上書きし、ディレクトリがなければ作成する。
type SeparateFileOutput struct {
	Dir string
}

func (o *SeparateFileOutput) HandleAuthorFeed(key string, data *FeedData) error {
	if err := os.MkdirAll(o.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rss, err := MakeRSS(key, data)
	if err != nil {
		return err
	}

	file := filepath.Join(o.Dir, strings.ReplaceAll(key, "/", "_")+".rss")
	if err := os.WriteFile(file, []byte(rss), 0o644); err != nil {
		return fmt.Errorf("failed to write feed file: %w", err)
	}
	return nil
}

func (o *SeparateFileOutput) Finish() error { return nil }

// SingleFileOutput は全著者のエントリを1つのフィードにまとめて出力する。
// Pathが空の場合はWriterに書く（通常はstdout）。
type SingleFileOutput struct {
	Path   string
	Writer io.Writer

	feeds []authorFeed
}

type authorFeed struct {
	key  string
	data *FeedData
}

func (o *SingleFileOutput) HandleAuthorFeed(key string, data *FeedData) error {
	o.feeds = append(o.feeds, authorFeed{key: key, data: data})
	return nil
}

// Finish は収集済みフィードをマージして書き出す。
// 1著者のみの場合はそのまま、複数著者の場合は全エントリを
// 新しい順に並べ替えた合成フィードを出力する。
func (o *SingleFileOutput) Finish() error {
	if len(o.feeds) == 0 {
		return nil
	}

	key := o.feeds[0].key
	data := o.feeds[0].data
	if len(o.feeds) > 1 {
		key, data = o.merge()
	}

	rss, err := MakeRSS(key, data)
	if err != nil {
		return err
	}

	if o.Path != "" {
		if err := os.WriteFile(o.Path, []byte(rss), 0o644); err != nil {
			return fmt.Errorf("failed to write feed file: %w", err)
		}
		return nil
	}

	w := o.Writer
	if w == nil {
		w = os.Stdout
	}
	_, err = io.WriteString(w, rss)
	return err
}

// merge は複数著者のフィードを1つのFeedDataに合成する
func (o *SingleFileOutput) merge() (string, *FeedData) {
	authors := make([]string, 0, len(o.feeds))
	var entries []Entry
	for _, f := range o.feeds {
		if f.data.Author != "" {
			authors = append(authors, f.data.Author)
		}
		entries = append(entries, f.data.Entries...)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Pubdate.Equal(entries[j].Pubdate) {
			return entries[i].Pubdate.After(entries[j].Pubdate)
		}
		return entries[i].Title > entries[j].Title
	})

	return o.feeds[0].key, &FeedData{
		Author:  strings.Join(authors, ", "),
		URL:     o.feeds[0].data.URL,
		Entries: entries,
	}
}

// Runner は著者キーのリストを1件ずつ処理する
type Runner struct {
	Config    Config
	Selectors Selectors
	Output    OutputHandler
	Clipper   *NotionClipper // 任意。設定時は記事をNotionにも保存する
	Logger    *slog.Logger
	Wait      time.Duration // キー間のアクセス間隔
}

// Run は各キーについてFetch→Parse→出力を実行し、失敗したキー数を返す。
// 1キーの失敗は記録して続行する。ctxのキャンセルで途中終了できる。
func (r *Runner) Run(ctx context.Context, keys []string) int {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	every := rate.Inf
	if r.Wait > 0 {
		every = rate.Every(r.Wait)
	}
	limiter := rate.NewLimiter(every, 1)

	failed := 0
	for _, key := range keys {
		if err := limiter.Wait(ctx); err != nil {
			logger.Error("処理を中断しました", slog.String("error", err.Error()))
			failed++
			break
		}

		if err := r.runOne(ctx, key); err != nil {
			logger.Error("著者の処理に失敗しました",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			failed++
			continue
		}
		logger.Info("フィードを出力しました", slog.String("key", key))
	}

	if err := r.Output.Finish(); err != nil {
		logger.Error("出力の完了処理に失敗しました", slog.String("error", err.Error()))
		failed++
	}

	return failed
}

// runOne は1著者分のパイプラインを実行する
func (r *Runner) runOne(ctx context.Context, key string) error {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	rawHTML, err := Fetch(ctx, r.Config, key)
	if err != nil {
		return err
	}

	data, err := ParseWith(rawHTML, r.Selectors, r.Config.BaseURL)
	if err != nil {
		return err
	}
	if len(data.Entries) == 0 {
		logger.Warn("エントリがありません", slog.String("key", key))
	}

	if err := r.Output.HandleAuthorFeed(key, data); err != nil {
		return err
	}

	if r.Clipper != nil {
		if err := r.Clipper.ClipFeed(ctx, data); err != nil {
			// Notion保存の失敗はフィード出力を巻き戻さない
			logger.Warn("Notionへの保存に失敗しました",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}
