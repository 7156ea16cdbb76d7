package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/avikonai/avikon-image-service/pkg/adapters"
	"github.com/avikonai/avikon-image-service/pkg/config"
	"github.com/avikonai/avikon-image-service/pkg/editor"
	"github.com/avikonai/avikon-image-service/pkg/gallery"
	"github.com/avikonai/avikon-image-service/pkg/generator"
	"github.com/avikonai/avikon-image-service/pkg/server"
	"github.com/shouni/go-http-kit/pkg/httpkit"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.InitConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	// 画像生成は長時間かかるため、タイムアウトは設けず呼び出し側の
	// context で寿命を制御する
	httpClient := httpkit.New(0)

	// GCS は任意依存。資格情報がない環境では gs:// 参照だけが使えなくなる。
	var reader *adapters.GCSReader
	if r, err := adapters.NewGCSReader(ctx); err != nil {
		slog.Warn("GCS reader unavailable, gs:// references disabled", "error", err)
	} else {
		reader = r
		defer reader.Close()
	}

	var gen generator.ImageGenerator
	if cfg.GeminiConfigured() {
		var aiClient *adapters.GenAIModel
		aiClient, err = adapters.NewGenAIModel(ctx, cfg.Gemini.APIKey)
		if err != nil {
			log.Fatalf("failed to initialize Gemini client: %v", err)
		}

		var core *generator.GeminiImageCore
		if reader != nil {
			core, err = generator.NewGeminiImageCore(reader, httpClient)
		} else {
			core, err = generator.NewGeminiImageCore(nil, httpClient)
		}
		if err != nil {
			log.Fatalf("failed to initialize image core: %v", err)
		}

		gen, err = generator.NewGeminiGenerator(core, aiClient, cfg.Gemini.Model)
		if err != nil {
			log.Fatalf("failed to initialize generator: %v", err)
		}
	} else {
		// キー未設定でも起動はする。生成要求は設定エラーとして応答するのだ。
		slog.Warn("GEMINI_API_KEY is not configured, generation is disabled")
	}

	store := gallery.NewStore(cfg.Gallery.Path, httpClient)
	editorClient := editor.NewClient(httpClient, cfg.Pixo.Endpoint, cfg.Pixo.APIKey)

	var assets server.AssetStore
	if cfg.MinioConfigured() {
		minioStore, err := adapters.NewMinioAssetStore(
			cfg.Minio.Endpoint,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.Bucket,
			cfg.Minio.UseSSL,
			24*time.Hour,
		)
		if err != nil {
			log.Fatalf("failed to initialize Minio client: %v", err)
		}
		assets = minioStore
	}

	svc := server.NewService(cfg, gen, store, editorClient, assets)
	if err := svc.Start(); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
