package generator

import (
	"strings"

	"github.com/avikonai/avikon-image-service/pkg/domain"
)

// aspectRatioClauses は比率ごとにプロンプトへ足す句の固定テーブルです。
// ここにない比率が来るのは呼び出し側のバグです（実行時条件ではない）。
var aspectRatioClauses = map[string]string{
	"1:1":  "Square image.",
	"16:9": "Wide landscape format.",
	"9:16": "Tall portrait format.",
	"4:3":  "Standard photo format.",
}

const referenceGuidePrefix = "Use this reference image as inspiration and style guide. "

// ComposePrompt はユーザー入力・スタイル・比率・品質・ネガティブ指定から
// 強化プロンプトを決定的に組み立てます。副作用・I/O はありません。
func ComposePrompt(req domain.GenerationRequest) string {
	var b strings.Builder
	b.WriteString(req.Prompt)

	if req.Style != "" {
		b.WriteString(" Style: ")
		b.WriteString(req.Style)
		b.WriteString(".")
	}

	b.WriteString(" ")
	b.WriteString(aspectRatioClauses[req.AspectRatio])

	// 品質は 8 以上で最上位、6 以上で中位の句を足す。6 未満は何も足さない。
	switch {
	case req.Quality >= 8:
		b.WriteString(" High-resolution, professional quality, ultra-detailed.")
	case req.Quality >= 6:
		b.WriteString(" Good quality, detailed.")
	}

	if req.NegativePrompt != "" {
		b.WriteString(" Avoid: ")
		b.WriteString(req.NegativePrompt)
		b.WriteString(".")
	}

	enhanced := b.String()

	// 参照画像つきの場合、全体をスタイルガイド指示で前置する。
	if req.ReferenceImageBase64 != "" || req.ReferenceImageURL != "" {
		enhanced = referenceGuidePrefix + enhanced
	}

	return enhanced
}
