package generator

import (
	"net/http"
	"strings"

	"github.com/avikonai/avikon-image-service/pkg/domain"
)

// GenerationError はユーザーに返す分類済みの生成エラーです。
type GenerationError struct {
	Status  int
	Code    string
	Message string
}

func (e *GenerationError) Error() string {
	return e.Message
}

// Classify は Gemini / ネットワーク起因の失敗をエラーコード分類へ写像します。
// ベンダー例外の構造は安定していないため、メッセージの部分一致
// （大文字小文字を区別する）で判定します。
func Classify(err error) *GenerationError {
	if err == nil {
		return nil
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "API key"):
		return &GenerationError{
			Status:  http.StatusUnauthorized,
			Code:    domain.CodeInvalidAPIKey,
			Message: "Invalid API key. Please check your Gemini API configuration.",
		}
	case strings.Contains(msg, "quota") || strings.Contains(msg, "rate limit"):
		return &GenerationError{
			Status:  http.StatusTooManyRequests,
			Code:    domain.CodeQuotaExceeded,
			Message: "API quota exceeded. Please try again later.",
		}
	case strings.Contains(msg, "safety") || strings.Contains(msg, "blocked"):
		return &GenerationError{
			Status:  http.StatusBadRequest,
			Code:    domain.CodeContentBlocked,
			Message: "Content was blocked by safety filters. Please modify your prompt.",
		}
	case msg == "":
		return &GenerationError{
			Status:  http.StatusInternalServerError,
			Code:    domain.CodeUnknownError,
			Message: "An unexpected error occurred during image generation",
		}
	default:
		return &GenerationError{
			Status:  http.StatusInternalServerError,
			Code:    domain.CodeGenerationFailed,
			Message: msg,
		}
	}
}
