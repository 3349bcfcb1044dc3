// =============================================================================
// selectors.go - 構造セレクタテーブル
// =============================================================================
//
// Extractorの正しさはYahoo!ニュース個人の現在のマークアップに依存します。
// どのタグ・クラスが「エントリ」「タイトル」「リンク」「日時」を表すかを
// このテーブルに集約しておくことで、サイトのレイアウト変更時は
// ロジックではなくデータ（YAMLファイル）の更新で追従できます。
//
// =============================================================================
package byline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Selectors は記事一覧を特定するCSSセレクタの集合
type Selectors struct {
	// Listing は記事一覧領域。この領域が存在しないページはExtractionError
	Listing string `yaml:"listing"`

	// Entry は1記事分のブロック（Listing配下で繰り返し出現する）
	Entry string `yaml:"entry"`

	// Link は記事リンク（href属性を読む）
	Link string `yaml:"link"`

	// Title は記事タイトル
	Title string `yaml:"title"`

	// Summary は記事の要約テキスト
	Summary string `yaml:"summary"`

	// Pubdate は公開日時のテキスト
	Pubdate string `yaml:"pubdate"`

	// Thumbnail はサムネイル画像（src属性を読む）
	Thumbnail string `yaml:"thumbnail"`
}

// DefaultSelectors は現行マークアップに対応するセレクタを返す
func DefaultSelectors() Selectors {
	return Selectors{
		Listing:   "#athr_al",
		Entry:     "li.entry",
		Link:      "a.entryBody",
		Title:     "dt.ttl",
		Summary:   "dd.summary",
		Pubdate:   "dd.pubdate",
		Thumbnail: "dd.thumb img",
	}
}

// LoadSelectors はYAMLファイルからセレクタテーブルを読み込む。
// ファイルで指定されなかった項目はデフォルト値のまま残る。
func LoadSelectors(path string) (Selectors, error) {
	sel := DefaultSelectors()

	b, err := os.ReadFile(path)
	if err != nil {
		return sel, fmt.Errorf("failed to read selectors file: %w", err)
	}
	if err := yaml.Unmarshal(b, &sel); err != nil {
		return sel, fmt.Errorf("failed to parse selectors file: %w", err)
	}

	return sel, nil
}
