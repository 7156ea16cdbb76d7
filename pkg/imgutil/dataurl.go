package imgutil

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const dataURLPrefix = "data:"

// IsDataURL は文字列が自己完結なデータURLかどうかを返します。
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, dataURLPrefix)
}

// EncodeDataURL は画像バイト列を data:{mime};base64,{...} 形式に変換します。
// 一時的なオブジェクトURLと違い、セッションを跨いでも参照可能です。
func EncodeDataURL(mimeType string, data []byte) string {
	return dataURLPrefix + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL はデータURLを MIME タイプとバイト列に分解します。
// base64 エンコード以外のデータURLは対応しません。
func DecodeDataURL(s string) (string, []byte, error) {
	if !IsDataURL(s) {
		return "", nil, fmt.Errorf("not a data URL")
	}
	meta, payload, found := strings.Cut(s[len(dataURLPrefix):], ",")
	if !found {
		return "", nil, fmt.Errorf("malformed data URL: missing payload separator")
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("unsupported data URL encoding: %s", meta)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data URL payload: %w", err)
	}
	return mimeType, data, nil
}
