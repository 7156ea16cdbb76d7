package generator

import (
	"context"
	"io"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// --- Mocks ---

type mockAIClient struct {
	generateWithPartsFunc func(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
}

func (m *mockAIClient) GenerateContent(ctx context.Context, model string, prompt string) (*gemini.Response, error) {
	return nil, nil
}

func (m *mockAIClient) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	if m.generateWithPartsFunc != nil {
		return m.generateWithPartsFunc(ctx, model, parts, opts)
	}
	return &gemini.Response{
		RawResponse: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{
					Parts: []*genai.Part{{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("fake")}}},
				},
			}},
		},
	}, nil
}

func (m *mockAIClient) UploadFile(ctx context.Context, data []byte, mimeType, displayName string) (string, string, error) {
	return "https://gemini.api/files/new-file-id", "files/new-file-id", nil
}

func (m *mockAIClient) DeleteFile(ctx context.Context, name string) error {
	return nil
}

type mockReader struct {
	openFunc func(ctx context.Context, uri string) (io.ReadCloser, error)
}

func (m *mockReader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	if m.openFunc != nil {
		return m.openFunc(ctx, uri)
	}
	return nil, nil
}

func (m *mockReader) List(ctx context.Context, uri string, fn func(string) error) error {
	return nil
}

// mockHTTPClient は HTTPClient を実装します。
type mockHTTPClient struct {
	data []byte
	err  error
}

func (m *mockHTTPClient) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	return m.data, m.err
}

type mockImageCore struct {
	prepareInlineFunc func(ctx context.Context, encoded string) *genai.Part
	prepareRemoteFunc func(ctx context.Context, rawURL string) *genai.Part
	parseFunc         func(resp *gemini.Response) (*ImageOutput, error)
}

func (m *mockImageCore) PrepareInlinePart(ctx context.Context, encoded string) *genai.Part {
	if m.prepareInlineFunc != nil {
		return m.prepareInlineFunc(ctx, encoded)
	}
	return nil
}

func (m *mockImageCore) PrepareRemotePart(ctx context.Context, rawURL string) *genai.Part {
	if m.prepareRemoteFunc != nil {
		return m.prepareRemoteFunc(ctx, rawURL)
	}
	return nil
}

func (m *mockImageCore) ParseToResponse(resp *gemini.Response) (*ImageOutput, error) {
	if m.parseFunc != nil {
		return m.parseFunc(resp)
	}
	return nil, nil
}
