package server

import (
	"context"
	"net/http"

	"github.com/avikonai/avikon-image-service/pkg/domain"
	"github.com/avikonai/avikon-image-service/pkg/generator"
)

// mockGenerator は generator.ImageGenerator を実装します。
type mockGenerator struct {
	lastReq domain.GenerationRequest
	output  *generator.ImageOutput
	err     error
}

func (m *mockGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*generator.ImageOutput, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.output, nil
}

// mockAssetStore は AssetStore を実装します。
type mockAssetStore struct {
	url string
	err error
}

func (m *mockAssetStore) Upload(ctx context.Context, id string, data []byte, mimeType string) (string, error) {
	return m.url, m.err
}

// mockHTTPClient は gallery.HTTPClient と editor.HTTPClient の両方を実装します。
type mockHTTPClient struct {
	data []byte
	err  error
}

func (m *mockHTTPClient) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	return m.data, m.err
}

func (m *mockHTTPClient) IsSafeURL(rawURL string) (bool, error) { return true, nil }

func (m *mockHTTPClient) DoRequest(req *http.Request) ([]byte, error) { return m.data, m.err }
