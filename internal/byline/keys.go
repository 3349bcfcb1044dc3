package byline

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// keyPattern は著者キーとして妥当な文字列のパターン。
// キーはURLのパスの一部であり出力ファイル名にもなるため、
// 不都合な入力値は入口で弾く。
var keyPattern = regexp.MustCompile(`^[-a-zA-Z0-9]+$`)

// IsValidKey はkeyが著者キーとして妥当なら真を返す
func IsValidKey(key string) bool {
	return keyPattern.MatchString(key)
}

// ReadKeysFile は著者キーのリストをファイルから読み込む。
// 1行1キー。#以降はコメントとして無視し、空行は読み飛ばす。
func ReadKeysFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open keys file: %w", err)
	}
	defer f.Close()

	var keys []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line != "" {
			keys = append(keys, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read keys file: %w", err)
	}

	return keys, nil
}

// UniqKeys は順序を保ったまま重複キーを除去する
func UniqKeys(keys []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
