package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avikonai/avikon-image-service/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_RequestGeneration(t *testing.T) {
	ctx := context.Background()

	t.Run("成功レスポンスをデコードできるのだ", func(t *testing.T) {
		var gotReq domain.GenerationRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/api/generate-image", r.URL.Path)
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"success":   true,
				"imageData": "QUJD",
				"mimeType":  "image/png",
			})
		}))
		defer server.Close()

		c := New(server.URL)
		resp, err := c.RequestGeneration(ctx, domain.GenerationRequest{Prompt: "a cat", Style: "anime"})
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, "QUJD", resp.ImageData)
		assert.Equal(t, "image/png", resp.MimeType)
		assert.Equal(t, "a cat", gotReq.Prompt)
		assert.Equal(t, "anime", gotReq.Style)
	})

	t.Run("構造化エラーはAPIErrorとして返る", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{
				"error": "API quota exceeded. Please try again later.",
				"code":  domain.CodeQuotaExceeded,
			})
		}))
		defer server.Close()

		c := New(server.URL)
		_, err := c.RequestGeneration(ctx, domain.GenerationRequest{Prompt: "a cat"})
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
		assert.Equal(t, domain.CodeQuotaExceeded, apiErr.Code)
		assert.Contains(t, apiErr.Message, "quota")
	})

	t.Run("JSONでないエラー本文はステータス由来のメッセージになるのだ", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("<html>bad gateway</html>"))
		}))
		defer server.Close()

		c := New(server.URL)
		_, err := c.RequestGeneration(ctx, domain.GenerationRequest{Prompt: "a cat"})
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "HTTP 502: Bad Gateway", apiErr.Message)
		assert.Empty(t, apiErr.Code)
	})
}

func TestClient_CheckStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("稼働状態プローブを読める", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodGet, r.Method)
			json.NewEncoder(w).Encode(map[string]any{
				"status":           "ok",
				"geminiConfigured": true,
				"timestamp":        "2026-08-30T00:00:00Z",
			})
		}))
		defer server.Close()

		status := New(server.URL).CheckStatus(ctx)
		assert.Equal(t, "ok", status.Status)
		assert.True(t, status.GeminiConfigured)
		assert.Empty(t, status.Error)
	})

	t.Run("到達不能でもエラーを返さず未設定扱いになるのだ", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // 即座に閉じて到達不能にする

		status := New(server.URL).CheckStatus(ctx)
		assert.False(t, status.GeminiConfigured)
		assert.NotEmpty(t, status.Error)
	})
}
