// Package client は画像生成サービスの HTTP API クライアントです。
// CLI や別サービスからの呼び出しを想定しています。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/avikonai/avikon-image-service/pkg/domain"
)

// APIError はサーバーが返した構造化エラーです。
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
	Code       string `json:"code"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Code)
	}
	return e.Message
}

// GenerationResponse は生成成功時のレスポンスです。
type GenerationResponse struct {
	Success   bool   `json:"success"`
	ImageData string `json:"imageData"`
	MimeType  string `json:"mimeType"`
	URL       string `json:"url,omitempty"`
}

// StatusResponse は稼働状態プローブのレスポンスです。
type StatusResponse struct {
	Status           string `json:"status"`
	GeminiConfigured bool   `json:"geminiConfigured"`
	Timestamp        string `json:"timestamp"`
	Error            string `json:"error,omitempty"`
}

// Client は生成 API への薄いクライアントです。
// 画像生成は長時間かかるため、呼び出し側の context で寿命を制御します。
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New はベースURL（例: http://localhost:8080）からクライアントを生成します。
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// RequestGeneration は画像生成をリクエストします。
// 失敗時は *APIError を返し、サーバー側のエラーコードを保持するのだ。
func (c *Client) RequestGeneration(ctx context.Context, req domain.GenerationRequest) (*GenerationResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode generation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate-image", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build generation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read generation response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseAPIError(resp.StatusCode, body)
	}

	var result GenerationResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode generation response: %w", err)
	}
	return &result, nil
}

// CheckStatus はサービスの稼働状態と API キー設定有無を取得します。
// ネットワーク到達不能でもエラーにはせず、未設定扱いの結果を返します。
func (c *Client) CheckStatus(ctx context.Context) *StatusResponse {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/generate-image", nil)
	if err != nil {
		return &StatusResponse{Error: err.Error()}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &StatusResponse{Error: err.Error()}
	}
	defer resp.Body.Close()

	var status StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return &StatusResponse{Error: err.Error()}
	}
	return &status
}

// parseAPIError はエラーレスポンスを構造化エラーに変換します。
// JSON でなければ HTTP ステータス由来のメッセージにフォールバックします。
func parseAPIError(statusCode int, body []byte) error {
	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, apiErr); err == nil && apiErr.Message != "" {
		return apiErr
	}
	apiErr.Message = fmt.Sprintf("HTTP %d: %s", statusCode, http.StatusText(statusCode))
	apiErr.Code = ""
	return apiErr
}
