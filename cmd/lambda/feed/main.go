// =============================================================================
// Lambda: byline-feed
// =============================================================================
//
// 指定した著者キーのRSSフィードをオンデマンドで生成するLambda関数
//
// 環境変数:
//   - BYLINE_BASE_URL:        ベースURL (任意、デフォルトは本番サイト)
//   - BYLINE_TIMEOUT_SECONDS: タイムアウト秒 (任意)
//   - BYLINE_USER_AGENT:      User-Agent (任意)
//
// =============================================================================
package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"byline-relay/internal/byline"
)

// Request はLambdaイベント
type Request struct {
	Key string `json:"key"`
}

// Response はLambdaレスポンス
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
	Message    string `json:"message,omitempty"`
}

// Handler はLambdaのメインハンドラー
func Handler(ctx context.Context, req Request) (Response, error) {
	if !byline.IsValidKey(req.Key) {
		return Response{StatusCode: 400, Message: "invalid author key"}, fmt.Errorf("invalid author key: %q", req.Key)
	}

	log.Printf("Generating feed for key=%s", req.Key)

	rss, err := byline.GetRSS(ctx, byline.ConfigFromEnv(), req.Key)
	if err != nil {
		log.Printf("Error generating feed: %v", err)

		var netErr *byline.NetworkError
		if errors.As(err, &netErr) && netErr.StatusCode == 404 {
			return Response{StatusCode: 404, Message: "author page not found"}, err
		}
		return Response{StatusCode: 502, Message: err.Error()}, err
	}

	return Response{StatusCode: 200, Body: rss}, nil
}

func main() {
	lambda.Start(Handler)
}
