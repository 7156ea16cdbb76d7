package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// DefaultAspectRatio は aspectRatio 未指定時の既定値です。
	DefaultAspectRatio = "1:1"
	// DefaultQuality は quality 未指定時の既定値です。
	DefaultQuality = 8
	// DefaultMimeType は生成結果の MIME タイプ既定値です。
	DefaultMimeType = "image/png"
	// MaxPromptLength はプロンプトの最大文字数です（Gemini 側の制限に合わせる）。
	MaxPromptLength = 2000
)

// AspectRatios は受理するアスペクト比の固定テーブルです。
var AspectRatios = []string{"1:1", "16:9", "9:16", "4:3"}

// GenerationRequest は画像生成 API が受け取る単一の生成要求です。
type GenerationRequest struct {
	Prompt               string `json:"prompt"`
	Style                string `json:"style,omitempty"`
	AspectRatio          string `json:"aspectRatio,omitempty"`
	Quality              int    `json:"quality,omitempty"`
	NegativePrompt       string `json:"negativePrompt,omitempty"`
	ReferenceImageBase64 string `json:"referenceImageBase64,omitempty"`
	ReferenceImageURL    string `json:"referenceImageUrl,omitempty"`
}

// Validate はプロンプトの必須・長さ制約を検証します。
// エラーは ErrPromptRequired / ErrPromptTooLong のいずれかです。
func (r GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return ErrPromptRequired
	}
	// バイト数ではなく文字数で数える（CJK プロンプト対策）
	if utf8.RuneCountInString(r.Prompt) > MaxPromptLength {
		return ErrPromptTooLong
	}
	return nil
}

// Normalized はトリム済みプロンプトと既定値を適用したコピーを返します。
// 元のリクエストは変更しません。
func (r GenerationRequest) Normalized() GenerationRequest {
	out := r
	out.Prompt = strings.TrimSpace(r.Prompt)
	if out.AspectRatio == "" {
		out.AspectRatio = DefaultAspectRatio
	}
	if out.Quality == 0 {
		out.Quality = DefaultQuality
	}
	return out
}

// GenerationResult は生成 API のレスポンス本体です。
// 成功時は ImageData（base64）と MimeType、失敗時は Error と Code を持ちます。
type GenerationResult struct {
	Success   bool   `json:"success"`
	ImageData string `json:"imageData,omitempty"`
	MimeType  string `json:"mimeType,omitempty"`
	URL       string `json:"url,omitempty"`
	Error     string `json:"error,omitempty"`
	Code      string `json:"code,omitempty"`
}

// GeneratedImage はギャラリーに並ぶ 1 枚の画像です。
// URL は表示可能な参照（データURL または 期限付きオブジェクトURL）です。
type GeneratedImage struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	Prompt       string    `json:"prompt"`
	Style        string    `json:"style"`
	Timestamp    time.Time `json:"timestamp"`
	IsProcessing bool      `json:"isProcessing,omitempty"`
	IsGenerated  bool      `json:"isGenerated"`
}

// StoredImage は GeneratedImage の永続化形です。
// Timestamp は ISO-8601 文字列、URL は必ず自己完結なデータURLになります。
// IsGenerated は旧スキーマとの互換のためポインタ（欠落時 true 扱い）です。
type StoredImage struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Prompt      string `json:"prompt"`
	Style       string `json:"style"`
	Timestamp   string `json:"timestamp"`
	IsGenerated *bool  `json:"isGenerated,omitempty"`
}

// ToGenerated は永続化形をギャラリー表示用のモデルへ戻します。
// タイムスタンプが解釈できない場合はゼロ値のまま残します（読み込みは落とさない）。
func (s StoredImage) ToGenerated() GeneratedImage {
	ts, _ := time.Parse(time.RFC3339, s.Timestamp)
	generated := true
	if s.IsGenerated != nil {
		generated = *s.IsGenerated
	}
	return GeneratedImage{
		ID:          s.ID,
		URL:         s.URL,
		Prompt:      s.Prompt,
		Style:       s.Style,
		Timestamp:   ts,
		IsGenerated: generated,
	}
}
