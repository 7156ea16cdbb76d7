package adapters

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"google.golang.org/api/iterator"
)

// GCSReader は remoteio.InputReader を Google Cloud Storage で実装するアダプターです。
// gs://bucket/object 形式の URI を読み出します。
type GCSReader struct {
	client *storage.Client
}

// インターフェースの実装を保証
var _ remoteio.InputReader = (*GCSReader)(nil)

// NewGCSReader は既定の認証情報で GCS クライアントを初期化します。
func NewGCSReader(ctx context.Context) (*GCSReader, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCSReader{client: client}, nil
}

// Open は gs:// URI のオブジェクトを読み出し用に開きます。
func (r *GCSReader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	bucket, object, err := splitGCSURI(uri)
	if err != nil {
		return nil, err
	}
	if object == "" {
		return nil, fmt.Errorf("object name missing in URI: %s", uri)
	}
	return r.client.Bucket(bucket).Object(object).NewReader(ctx)
}

// List は gs:// URI をプレフィックスとしてオブジェクト名を列挙し、
// 1 件ごとにコールバックを呼びます。
func (r *GCSReader) List(ctx context.Context, uri string, fn func(string) error) error {
	bucket, prefix, err := splitGCSURI(uri)
	if err != nil {
		return err
	}

	it := r.client.Bucket(bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to list objects under %s: %w", uri, err)
		}
		if err := fn(fmt.Sprintf("gs://%s/%s", bucket, attrs.Name)); err != nil {
			return err
		}
	}
}

// Close は GCS クライアントを閉じます。
func (r *GCSReader) Close() error {
	return r.client.Close()
}

func splitGCSURI(uri string) (bucket, object string, err error) {
	trimmed, ok := strings.CutPrefix(uri, "gs://")
	if !ok {
		return "", "", fmt.Errorf("not a gs:// URI: %s", uri)
	}
	bucket, object, _ = strings.Cut(trimmed, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("bucket name missing in URI: %s", uri)
	}
	return bucket, object, nil
}
