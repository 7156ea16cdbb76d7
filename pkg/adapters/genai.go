package adapters

import (
	"bytes"
	"context"
	"fmt"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// GenAIModel は gemini.GenerativeModel を google.golang.org/genai SDK で実装する
// アダプターです。Gemini API バックエンド（API キー認証）に固定しています。
type GenAIModel struct {
	client *genai.Client
}

// インターフェースの実装を保証
var _ gemini.GenerativeModel = (*GenAIModel)(nil)

// NewGenAIModel は API キーから genai クライアントを初期化します。
func NewGenAIModel(ctx context.Context, apiKey string) (*GenAIModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GenAIModel{client: client}, nil
}

// GenerateContent はテキストのみのプロンプトで生成を実行します。
func (m *GenAIModel) GenerateContent(ctx context.Context, model string, prompt string) (*gemini.Response, error) {
	resp, err := m.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return nil, err
	}
	return &gemini.Response{RawResponse: resp}, nil
}

// GenerateWithParts はテキスト・画像混在のパーツ列で生成を実行します。
// アスペクト比とシードは genai の生成設定へ写像します。
func (m *GenAIModel) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	var cfg *genai.GenerateContentConfig
	ensureCfg := func() {
		if cfg == nil {
			cfg = &genai.GenerateContentConfig{}
		}
	}
	if opts.SystemPrompt != "" {
		ensureCfg()
		cfg.SystemInstruction = genai.NewContentFromText(opts.SystemPrompt, genai.RoleUser)
	}
	if opts.AspectRatio != "" {
		ensureCfg()
		cfg.ImageConfig = &genai.ImageConfig{AspectRatio: opts.AspectRatio}
	}
	if opts.Seed != nil {
		ensureCfg()
		cfg.Seed = seedToPtrInt32(opts.Seed)
	}

	resp, err := m.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return nil, err
	}
	return &gemini.Response{RawResponse: resp}, nil
}

// UploadFile はバイト列を File API にアップロードし、URI と管理名を返します。
func (m *GenAIModel) UploadFile(ctx context.Context, data []byte, mimeType, displayName string) (string, string, error) {
	f, err := m.client.Files.Upload(ctx, bytes.NewReader(data), &genai.UploadFileConfig{
		MIMEType:    mimeType,
		DisplayName: displayName,
	})
	if err != nil {
		return "", "", err
	}
	return f.URI, f.Name, nil
}

// DeleteFile は File API から指定名のファイルを削除します。
func (m *GenAIModel) DeleteFile(ctx context.Context, name string) error {
	_, err := m.client.Files.Delete(ctx, name, nil)
	return err
}

// seedToPtrInt32 は gemini 側の *int64 を genai SDK の *int32 に変換するのだ。
// Imagen API は int32 のシードを期待しているための調整なのだ。
func seedToPtrInt32(s *int64) *int32 {
	if s == nil {
		return nil
	}
	v := int32(*s)
	return &v
}
