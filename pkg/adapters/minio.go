package adapters

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioAssetStore は生成画像をオブジェクトストレージに保存し、
// 期限付きの署名URL（一時参照）を返すアダプターです。
// この URL は期限切れで無効になるため、永続化時はデータURLへの変換が前提です。
type MinioAssetStore struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

// NewMinioAssetStore は MinIO クライアントを初期化します。
func NewMinioAssetStore(endpoint, accessKey, secretKey, bucket string, useSSL bool, expiry time.Duration) (*MinioAssetStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	return &MinioAssetStore{
		client: client,
		bucket: bucket,
		expiry: expiry,
	}, nil
}

// Upload は画像バイト列を保存して署名付き GET URL を返します。
func (s *MinioAssetStore) Upload(ctx context.Context, id string, data []byte, mimeType string) (string, error) {
	key := objectKey(id, mimeType)

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: mimeType})
	if err != nil {
		return "", fmt.Errorf("failed to upload generated image: %w", err)
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign object URL: %w", err)
	}
	return u.String(), nil
}

// objectKey は generated/{id}.{ext} 形式のオブジェクト名を組み立てます。
func objectKey(id, mimeType string) string {
	ext := "png"
	switch mimeType {
	case "image/jpeg":
		ext = "jpg"
	case "image/webp":
		ext = "webp"
	case "image/gif":
		ext = "gif"
	}
	return fmt.Sprintf("generated/%s.%s", id, ext)
}
