package gallery

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/avikonai/avikon-image-service/pkg/domain"
	"github.com/avikonai/avikon-image-service/pkg/imgutil"
)

// HTTPClient は一時参照URLの取得と SSRF 検証を担うインターフェースです。
type HTTPClient interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
	IsSafeURL(rawURL string) (bool, error)
}

// Store は生成画像のローカルギャラリー（JSONドキュメント1枚）です。
// 保存形式は StoredImage の配列で、先頭が最新です。
//
// 書き込みは read-modify-write で、プロセス内は mu で直列化しますが
// プロセスを跨ぐ競合は守りません（単一ユーザーのローカルキャッシュとして許容）。
type Store struct {
	path       string
	httpClient HTTPClient
	mu         sync.Mutex
}

// NewStore はギャラリーストアを初期化します。
// httpClient は一時参照URLをデータURLへ変換するときの取得に使います。
func NewStore(path string, httpClient HTTPClient) *Store {
	return &Store{path: path, httpClient: httpClient}
}

// Load は永続化済みの一覧を新しい順で返します。
// 読み取り・解釈の失敗は空一覧として扱い、決して失敗させません。
func (s *Store) Load() []domain.GeneratedImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() []domain.GeneratedImage {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("ギャラリーの読み込みに失敗しました。空一覧として扱います", "path", s.path, "error", err)
		}
		return []domain.GeneratedImage{}
	}

	var stored []domain.StoredImage
	if err := json.Unmarshal(raw, &stored); err != nil {
		slog.Warn("ギャラリーの解釈に失敗しました。空一覧として扱います", "path", s.path, "error", err)
		return []domain.GeneratedImage{}
	}

	images := make([]domain.GeneratedImage, 0, len(stored))
	for _, it := range stored {
		images = append(images, it.ToGenerated())
	}
	return images
}

// Save は画像を一覧の先頭に追記して永続化します。
// URL が一時参照の場合は取得して自己完結なデータURLへ変換してから書き込みます。
func (s *Store) Save(ctx context.Context, img domain.GeneratedImage) error {
	url := img.URL
	if !imgutil.IsDataURL(url) {
		// 呼び出し元が任意のURLを渡せるため、内部アドレスへの到達を遮断する
		safe, err := s.httpClient.IsSafeURL(url)
		if err != nil {
			return fmt.Errorf("image conversion failed: %w", err)
		}
		if !safe {
			return fmt.Errorf("image conversion failed: unsafe image url %q", url)
		}
		data, err := s.httpClient.FetchBytes(ctx, url)
		if err != nil {
			return fmt.Errorf("image conversion failed: %w", err)
		}
		url = imgutil.EncodeDataURL(http.DetectContentType(data), data)
	}

	generated := img.IsGenerated
	entry := domain.StoredImage{
		ID:          img.ID,
		URL:         url,
		Prompt:      img.Prompt,
		Style:       img.Style,
		Timestamp:   img.Timestamp.UTC().Format(time.RFC3339),
		IsGenerated: &generated,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.readStoredLocked()
	list = append([]domain.StoredImage{entry}, list...)
	return s.writeLocked(list)
}

// Remove は指定 ID のエントリを一覧から取り除きます。
// 該当がなくてもエラーにはしません。
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.readStoredLocked()
	kept := list[:0]
	for _, it := range list {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	return s.writeLocked(kept)
}

func (s *Store) readStoredLocked() []domain.StoredImage {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return []domain.StoredImage{}
	}
	var stored []domain.StoredImage
	if err := json.Unmarshal(raw, &stored); err != nil {
		return []domain.StoredImage{}
	}
	return stored
}

func (s *Store) writeLocked(list []domain.StoredImage) error {
	payload, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode gallery: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create gallery directory: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write gallery: %w", err)
	}
	return nil
}
