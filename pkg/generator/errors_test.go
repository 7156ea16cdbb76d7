package generator

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/avikonai/avikon-image-service/pkg/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "API key を含むメッセージは 401 INVALID_API_KEY",
			err:        errors.New("the provided API key is invalid"),
			wantStatus: http.StatusUnauthorized,
			wantCode:   domain.CodeInvalidAPIKey,
		},
		{
			name:       "quota を含むメッセージは 429 QUOTA_EXCEEDED",
			err:        errors.New("you have exceeded your quota for this month"),
			wantStatus: http.StatusTooManyRequests,
			wantCode:   domain.CodeQuotaExceeded,
		},
		{
			name:       "rate limit を含むメッセージも 429 QUOTA_EXCEEDED",
			err:        errors.New("rate limit reached, slow down"),
			wantStatus: http.StatusTooManyRequests,
			wantCode:   domain.CodeQuotaExceeded,
		},
		{
			name:       "safety を含むメッセージは 400 CONTENT_BLOCKED",
			err:        errors.New("prompt rejected by safety system"),
			wantStatus: http.StatusBadRequest,
			wantCode:   domain.CodeContentBlocked,
		},
		{
			name:       "blocked を含むメッセージも 400 CONTENT_BLOCKED",
			err:        errors.New("content was blocked"),
			wantStatus: http.StatusBadRequest,
			wantCode:   domain.CodeContentBlocked,
		},
		{
			name:       "その他のメッセージは 500 GENERATION_FAILED で原文を保持",
			err:        errors.New("model exploded"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   domain.CodeGenerationFailed,
		},
		{
			name:       "メッセージのない失敗は 500 UNKNOWN_ERROR",
			err:        errors.New(""),
			wantStatus: http.StatusInternalServerError,
			wantCode:   domain.CodeUnknownError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if got.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", got.Status, tt.wantStatus)
			}
			if got.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", got.Code, tt.wantCode)
			}
			if got.Message == "" && tt.wantCode != domain.CodeUnknownError {
				t.Error("message must not be empty")
			}
		})
	}

	t.Run("ラップされてもメッセージの部分一致で分類されるのだ", func(t *testing.T) {
		wrapped := fmt.Errorf("gemini generation request failed: %w", errors.New("quota exceeded"))
		got := Classify(wrapped)
		if got.Code != domain.CodeQuotaExceeded {
			t.Errorf("wrapped quota error should classify as QUOTA_EXCEEDED, got %s", got.Code)
		}
	})

	t.Run("GENERATION_FAILED は元のメッセージをそのまま運ぶ", func(t *testing.T) {
		got := Classify(errors.New("model exploded"))
		if got.Message != "model exploded" {
			t.Errorf("original message must be carried: %q", got.Message)
		}
	})

	t.Run("nil は nil を返す", func(t *testing.T) {
		if got := Classify(nil); got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})
}
