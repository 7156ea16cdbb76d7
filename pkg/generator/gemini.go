package generator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/avikonai/avikon-image-service/pkg/domain"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// ImageGenerator はサーバー層が利用する生成の統合窓口です。
type ImageGenerator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (*ImageOutput, error)
}

// GeminiGenerator は強化プロンプトの組み立てから Gemini 呼び出し、
// レスポンス解析までを担当するジェネレーターです。
type GeminiGenerator struct {
	imgCore  ImageGeneratorCore
	aiClient gemini.GenerativeModel
	model    string
}

// NewGeminiGenerator は GeminiGenerator を初期化するのだ。
func NewGeminiGenerator(
	core ImageGeneratorCore,
	aiClient gemini.GenerativeModel,
	model string,
) (*GeminiGenerator, error) {
	if core == nil {
		return nil, fmt.Errorf("core (ImageGeneratorCore) is required")
	}
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient (gemini.GenerativeModel) is required")
	}

	return &GeminiGenerator{
		imgCore:  core,
		aiClient: aiClient,
		model:    model,
	}, nil
}

// Generate は単一の生成要求を実行します。呼び出しは 1 回きりで、
// リトライやストリーミングは行いません（再試行はユーザー操作）。
func (g *GeminiGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*ImageOutput, error) {
	prompt := ComposePrompt(req)
	slog.InfoContext(ctx, "Gemini生成リクエスト準備中", "model", g.model,
		"has_reference", req.ReferenceImageBase64 != "" || req.ReferenceImageURL != "")

	// 参照画像パーツはテキストより先に置く（スタイルガイドとして先行させる）。
	var parts []*genai.Part
	switch {
	case req.ReferenceImageBase64 != "":
		if imgPart := g.imgCore.PrepareInlinePart(ctx, req.ReferenceImageBase64); imgPart != nil {
			parts = append(parts, imgPart)
		}
	case req.ReferenceImageURL != "":
		if imgPart := g.imgCore.PrepareRemotePart(ctx, req.ReferenceImageURL); imgPart != nil {
			parts = append(parts, imgPart)
		}
	}
	parts = append(parts, &genai.Part{Text: prompt})

	opts := gemini.GenerateOptions{
		AspectRatio: req.AspectRatio,
	}

	resp, err := g.aiClient.GenerateWithParts(ctx, g.model, parts, opts)
	if err != nil {
		return nil, fmt.Errorf("gemini generation request failed: %w", err)
	}

	return g.imgCore.ParseToResponse(resp)
}
