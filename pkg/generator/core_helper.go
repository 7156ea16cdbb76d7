package generator

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/avikonai/avikon-image-service/pkg/domain"
	"github.com/avikonai/avikon-image-service/pkg/imgutil"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// PrepareInlinePart はリクエストに添付された base64 参照画像を genai.Part に変換します。
// 参照画像はあくまでスタイルガイドなので、変換に失敗しても生成自体は
// テキストのみで続行します（nil を返す）。
func (c *GeminiImageCore) PrepareInlinePart(ctx context.Context, encoded string) *genai.Part {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		slog.WarnContext(ctx, "参照画像のbase64デコードに失敗しました。テキストのみで続行します", "error", err)
		return nil
	}
	return c.toPart(compressIfEnabled(data))
}

// PrepareRemotePart は URL 参照の画像を取得して genai.Part に変換します。
// gs:// はバケット読み出し、http/https は SSRF 検証の上でダウンロードします。
func (c *GeminiImageCore) PrepareRemotePart(ctx context.Context, rawURL string) *genai.Part {
	data, err := c.fetchImageData(ctx, rawURL)
	if err != nil {
		slog.WarnContext(ctx, "参照画像のダウンロードに失敗しました。テキストのみで続行します", "url", rawURL, "error", err)
		return nil
	}
	return c.toPart(compressIfEnabled(data))
}

func (c *GeminiImageCore) fetchImageData(ctx context.Context, rawURL string) ([]byte, error) {
	if safe, err := IsSafeURL(rawURL); err != nil || !safe {
		return nil, fmt.Errorf("unsafe reference URL: %w", err)
	}

	if strings.HasPrefix(rawURL, "gs://") {
		if c.reader == nil {
			return nil, fmt.Errorf("no remote reader configured for gs:// URLs")
		}
		rc, err := c.reader.Open(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return c.httpClient.FetchBytes(ctx, rawURL)
}

func compressIfEnabled(data []byte) []byte {
	if UseImageCompression {
		if compressed, err := imgutil.CompressToJPEG(data, ImageCompressionQuality); err == nil {
			return compressed
		}
	}
	return data
}

func (c *GeminiImageCore) toPart(data []byte) *genai.Part {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		slog.Warn("MIMEタイプが画像ではないためPartに変換できませんでした", "detected_mime_type", mimeType)
		return nil
	}
	return &genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}
}

// ParseToResponse は Gemini のレスポンスを厳格に解析して ImageOutput へ変換します。
// 推測で補完はせず、期待する構造から外れたレスポンスはエラーとして閉じます。
func (c *GeminiImageCore) ParseToResponse(resp *gemini.Response) (*ImageOutput, error) {
	if resp == nil || resp.RawResponse == nil || len(resp.RawResponse.Candidates) == 0 {
		return nil, fmt.Errorf("no image candidate returned from Gemini")
	}

	// 最初の候補 (Candidate) のみを利用する。
	candidate := resp.RawResponse.Candidates[0]

	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				mimeType := part.InlineData.MIMEType
				if mimeType == "" {
					mimeType = domain.DefaultMimeType
				}
				return &ImageOutput{Data: part.InlineData.Data, MimeType: mimeType}, nil
			}
		}
	}

	// 安全フィルター等によるブロックの確認
	if candidate.FinishReason != genai.FinishReasonUnspecified && candidate.FinishReason != genai.FinishReasonStop {
		return nil, fmt.Errorf("image generation blocked by safety filters (finish reason: %s)", candidate.FinishReason)
	}

	return nil, fmt.Errorf("no image data found in response")
}
