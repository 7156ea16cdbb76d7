// Package editor は外部画像エディタ (Pixo) との連携を提供します。
// サーバー側でのプロキシ処理とフロントエンド向けの設定公開を担います。
package editor

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
)

// HTTPClient は組み立て済みリクエストを実行する最小限のインターフェースです。
type HTTPClient interface {
	DoRequest(req *http.Request) ([]byte, error)
}

const (
	// DefaultEndpoint は Pixo の画像処理 API エンドポイントです。
	DefaultEndpoint = "https://pixoeditor.com/api/image"

	// BridgeScriptURL はフロントエンドが読み込むブリッジスクリプトです。
	BridgeScriptURL = "https://pixoeditor.com/editor/scripts/bridge.m.js"
)

// ErrNotConfigured はエディタ API キー未設定時に返されます。
var ErrNotConfigured = fmt.Errorf("editor API key is not configured")

// Client は Pixo API への認証付きプロキシクライアントです。
type Client struct {
	httpClient HTTPClient
	endpoint   string
	apiKey     string
}

// NewClient は新しいエディタクライアントを生成します。
// apiKey が空の場合でも生成は成功し、Configured() が false を返すのだ。
func NewClient(httpClient HTTPClient, endpoint, apiKey string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
		apiKey:     apiKey,
	}
}

// Configured はエディタ連携が利用可能かどうかを返します。
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Edit は画像バイト列を Pixo API に送信し、処理結果の画像を返します。
// API キーはサーバー側でのみ保持し、クライアントへは露出しません。
func (c *Client) Edit(ctx context.Context, image []byte, mimeType string) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if mimeType == "" {
		mimeType = "image/png"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("failed to build editor request: %w", err)
	}
	req.Header.Set("Content-Type", mimeType)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	result, err := c.httpClient.DoRequest(req)
	if err != nil {
		return nil, fmt.Errorf("editor request failed: %w", err)
	}
	return result, nil
}
