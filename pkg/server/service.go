// Package server は画像生成サービスの HTTP API を提供します。
package server

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/avikonai/avikon-image-service/pkg/config"
	"github.com/avikonai/avikon-image-service/pkg/editor"
	"github.com/avikonai/avikon-image-service/pkg/gallery"
	"github.com/avikonai/avikon-image-service/pkg/generator"
)

// AssetStore は生成画像のオブジェクトストレージ保管を抽象化します。
// 返される URL は期限付きの一時参照なのだ。
type AssetStore interface {
	Upload(ctx context.Context, id string, data []byte, mimeType string) (string, error)
}

// Service は API サーバー本体です。依存はすべて注入で受け取ります。
type Service struct {
	cfg       *config.Config
	e         *echo.Echo
	generator generator.ImageGenerator
	gallery   *gallery.Store
	editor    *editor.Client
	assets    AssetStore
}

// NewService はサービスを生成します。
// generator はキー未設定時に nil でよく、assets も任意です。
func NewService(
	cfg *config.Config,
	gen generator.ImageGenerator,
	store *gallery.Store,
	editorClient *editor.Client,
	assets AssetStore,
) *Service {
	return &Service{
		cfg:       cfg,
		e:         echo.New(),
		generator: gen,
		gallery:   store,
		editor:    editorClient,
		assets:    assets,
	}
}

// Start はルーティングを設定し、サーバーを起動します。
func (s *Service) Start() error {
	s.e.HideBanner = true
	s.e.Use(middleware.Logger())
	s.e.Use(middleware.Recover())

	s.registerRoutes(s.e)

	slog.Info("starting image generation server",
		"port", s.cfg.Server.Port,
		"gemini_configured", s.cfg.GeminiConfigured(),
	)
	return s.e.Start(s.cfg.Server.Port)
}

func (s *Service) registerRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.POST("/generate-image", s.GenerateImage)
	api.GET("/generate-image", s.GenerationStatus)

	api.GET("/gallery", s.ListGallery)
	api.POST("/gallery", s.SaveToGallery)
	api.DELETE("/gallery/:id", s.RemoveFromGallery)

	api.GET("/editor/config", s.EditorConfig)
	api.POST("/edit-image", s.EditImage)
}
