package generator

import (
	"fmt"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// GeminiImageCore は参照画像の取得・変換とレスポンス解析を担う基盤コンポーネントです。
type GeminiImageCore struct {
	reader     remoteio.InputReader
	httpClient HTTPClient
}

// NewGeminiImageCore は依存関係を注入して GeminiImageCore を初期化します。
// reader は nil を許容します（gs:// 参照なし動作）。
func NewGeminiImageCore(reader remoteio.InputReader, httpClient HTTPClient) (*GeminiImageCore, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}

	return &GeminiImageCore{
		reader:     reader,
		httpClient: httpClient,
	}, nil
}
