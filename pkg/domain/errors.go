package domain

import "errors"

// ユーザー向けエラーコードの分類です。
const (
	CodeAPIKeyNotConfigured = "API_KEY_NOT_CONFIGURED"
	CodeInvalidAPIKey       = "INVALID_API_KEY"
	CodeQuotaExceeded       = "QUOTA_EXCEEDED"
	CodeContentBlocked      = "CONTENT_BLOCKED"
	CodeGenerationFailed    = "GENERATION_FAILED"
	CodeUnknownError        = "UNKNOWN_ERROR"
	CodeEditorNotConfigured = "EDITOR_NOT_CONFIGURED"
)

// 入力検証で返すセンチネルエラーです。
var (
	ErrPromptRequired = errors.New("prompt is required and must be a non-empty string")
	ErrPromptTooLong  = errors.New("prompt is too long")
)
