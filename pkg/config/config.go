// Package config はサービス全体の設定を管理します。
// YAML ファイルをベースに、秘密情報は環境変数で上書きします。
package config

import (
	"os"

	"github.com/spf13/viper"
)

// APIKeyPlaceholder は配布用設定ファイルに書かれる未設定の目印です。
// この値のままでは API キーが設定されたとは見なしません。
const APIKeyPlaceholder = "your_gemini_api_key_here"

const (
	defaultPort         = ":8080"
	defaultModel        = "gemini-2.5-flash-image-preview"
	defaultGalleryPath  = "data/gallery.json"
	defaultPixoEndpoint = "https://pixoeditor.com/api/image"
	defaultPixoScript   = "https://pixoeditor.com/editor/scripts/bridge.m.js"
)

type Config struct {
	Server  Server  `mapstructure:"server"`
	Gemini  Gemini  `mapstructure:"gemini"`
	Gallery Gallery `mapstructure:"gallery"`
	Pixo    Pixo    `mapstructure:"pixo"`
	Minio   Minio   `mapstructure:"minio"`
}

type Server struct {
	Port string `mapstructure:"port"`
}

type Gemini struct {
	APIKey string `mapstructure:"apikey"`
	Model  string `mapstructure:"model"`
}

type Gallery struct {
	Path string `mapstructure:"path"`
}

type Pixo struct {
	APIKey    string `mapstructure:"apikey"`
	Endpoint  string `mapstructure:"endpoint"`
	ScriptURL string `mapstructure:"scripturl"`
}

type Minio struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"accesskey"`
	SecretKey string `mapstructure:"secretkey"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"usessl"`
}

// InitConfig は設定ファイルを読み込み、環境変数を重ねた設定を返します。
// ファイルが存在しなくてもデフォルト値と環境変数だけで起動できるのだ。
func InitConfig(filename string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	v.SetConfigType("yaml")

	v.SetDefault("server.port", defaultPort)
	v.SetDefault("gemini.model", defaultModel)
	v.SetDefault("gallery.path", defaultGalleryPath)
	v.SetDefault("pixo.endpoint", defaultPixoEndpoint)
	v.SetDefault("pixo.scripturl", defaultPixoScript)

	if err := v.ReadInConfig(); err != nil {
		// 設定ファイルなしでの起動を許容する
		if _, statErr := os.Stat(filename); statErr == nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// API キーは環境変数を最優先にする
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.Gemini.APIKey = key
	}
	if key := os.Getenv("PIXO_API_KEY"); key != "" {
		cfg.Pixo.APIKey = key
	}

	return cfg, nil
}

// GeminiConfigured は有効な Gemini API キーが設定されているかを返します。
func (c *Config) GeminiConfigured() bool {
	return c.Gemini.APIKey != "" && c.Gemini.APIKey != APIKeyPlaceholder
}

// PixoConfigured は Pixo エディタ連携が有効かどうかを返します。
func (c *Config) PixoConfigured() bool {
	return c.Pixo.APIKey != ""
}

// MinioConfigured はオブジェクトストレージ連携が有効かどうかを返します。
func (c *Config) MinioConfigured() bool {
	return c.Minio.Endpoint != ""
}
