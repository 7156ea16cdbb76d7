package generator

import (
	"context"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

const (
	UseImageCompression     = true
	ImageCompressionQuality = 75
)

// ImageOutput は Core の内部解析結果
type ImageOutput struct {
	Data     []byte
	MimeType string
}

// HTTPClient は、HTTPリクエストを実行し、URLからデータを取得するためのインターフェースです。
type HTTPClient interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// ImageGeneratorCore は参照画像の準備とレスポンス解析を抽象化します。
type ImageGeneratorCore interface {
	PrepareInlinePart(ctx context.Context, encoded string) *genai.Part
	PrepareRemotePart(ctx context.Context, rawURL string) *genai.Part
	ParseToResponse(resp *gemini.Response) (*ImageOutput, error)
}
