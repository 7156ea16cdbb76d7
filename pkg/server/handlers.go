package server

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/avikonai/avikon-image-service/pkg/domain"
	"github.com/avikonai/avikon-image-service/pkg/editor"
	"github.com/avikonai/avikon-image-service/pkg/generator"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type generateResponse struct {
	Success   bool   `json:"success"`
	ImageData string `json:"imageData"`
	MimeType  string `json:"mimeType"`
	URL       string `json:"url,omitempty"`
}

type statusResponse struct {
	Status           string `json:"status"`
	GeminiConfigured bool   `json:"geminiConfigured"`
	Timestamp        string `json:"timestamp"`
}

// GenerateImage は POST /api/generate-image を処理します。
// ベンダー例外は必ず構造化 JSON エラーに変換して返すのだ。
func (s *Service) GenerateImage(c echo.Context) error {
	if !s.cfg.GeminiConfigured() || s.generator == nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error: "Gemini API key not configured. Please set GEMINI_API_KEY in your environment variables.",
			Code:  domain.CodeAPIKeyNotConfigured,
		})
	}

	var req domain.GenerationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error: "Prompt is required and must be a non-empty string",
		})
	}

	if err := req.Validate(); err != nil {
		msg := "Prompt is required and must be a non-empty string"
		if err == domain.ErrPromptTooLong {
			msg = "Prompt is too long. Please keep it under 2000 characters."
		}
		return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
	}

	req = req.Normalized()

	output, err := s.generator.Generate(c.Request().Context(), req)
	if err != nil {
		genErr := generator.Classify(err)
		slog.Error("image generation failed",
			"code", genErr.Code,
			"error", err,
		)
		return c.JSON(genErr.Status, errorResponse{Error: genErr.Message, Code: genErr.Code})
	}

	resp := generateResponse{
		Success:   true,
		ImageData: base64.StdEncoding.EncodeToString(output.Data),
		MimeType:  output.MimeType,
	}

	// オブジェクトストレージが有効なら期限付き URL も添える。
	// 失敗してもレスポンス本体（インライン画像）には影響させない。
	if s.assets != nil {
		id := uuid.NewString()
		url, err := s.assets.Upload(c.Request().Context(), id, output.Data, output.MimeType)
		if err != nil {
			slog.Warn("asset upload failed", "id", id, "error", err)
		} else {
			resp.URL = url
		}
	}

	return c.JSON(http.StatusOK, resp)
}

// GenerationStatus は GET /api/generate-image の稼働状態プローブです。
func (s *Service) GenerationStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, statusResponse{
		Status:           "ok",
		GeminiConfigured: s.cfg.GeminiConfigured(),
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
	})
}

// ListGallery は保存済み画像を新しい順で返します。
func (s *Service) ListGallery(c echo.Context) error {
	return c.JSON(http.StatusOK, s.gallery.Load())
}

// SaveToGallery は生成画像をギャラリーへ永続化します。
// URL が一時参照であればデータ URL への変換はストア側で行われます。
// isGenerated はプレースホルダー識別のための明示値を尊重し、欠落時のみ true です。
func (s *Service) SaveToGallery(c echo.Context) error {
	var in domain.StoredImage
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid gallery entry"})
	}
	if in.URL == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "image url is required"})
	}

	img := in.ToGenerated()
	if img.ID == "" {
		img.ID = uuid.NewString()
	}
	if img.Timestamp.IsZero() {
		img.Timestamp = time.Now()
	}

	if err := s.gallery.Save(c.Request().Context(), img); err != nil {
		slog.Error("gallery save failed", "id", img.ID, "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to save image to gallery"})
	}
	return c.JSON(http.StatusCreated, img)
}

// RemoveFromGallery は指定 ID のエントリを削除します。
func (s *Service) RemoveFromGallery(c echo.Context) error {
	if err := s.gallery.Remove(c.Param("id")); err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to remove image from gallery"})
	}
	return c.NoContent(http.StatusNoContent)
}

// EditorConfig はフロントエンド向けのエディタ設定を返します。
// API キー自体は返さず、設定の有無だけを公開するのだ。
func (s *Service) EditorConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"configured": s.editor != nil && s.editor.Configured(),
		"scriptUrl":  s.cfg.Pixo.ScriptURL,
	})
}

// EditImage は POST /api/edit-image を処理し、画像を Pixo へ中継します。
func (s *Service) EditImage(c echo.Context) error {
	if s.editor == nil || !s.editor.Configured() {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{
			Error: "Image editor is not configured",
			Code:  domain.CodeEditorNotConfigured,
		})
	}

	var req struct {
		ImageData string `json:"imageData"`
		MimeType  string `json:"mimeType"`
	}
	if err := c.Bind(&req); err != nil || req.ImageData == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "imageData is required"})
	}

	raw, err := base64.StdEncoding.DecodeString(req.ImageData)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "imageData must be valid base64"})
	}

	edited, err := s.editor.Edit(c.Request().Context(), raw, req.MimeType)
	if err != nil {
		if err == editor.ErrNotConfigured {
			return c.JSON(http.StatusServiceUnavailable, errorResponse{
				Error: "Image editor is not configured",
				Code:  domain.CodeEditorNotConfigured,
			})
		}
		slog.Error("image edit failed", "error", err)
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "Image editing failed"})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"imageData": base64.StdEncoding.EncodeToString(edited),
		"mimeType":  req.MimeType,
	})
}
