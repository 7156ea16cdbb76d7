package generator

import "testing"

func TestIsSafeURL(t *testing.T) {
	// 名前解決が必要なケースはネットワーク依存になるため、
	// IP直指定とスキーム検証のみを対象にする。
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"GCSスキーム (gs://)", "gs://my-bucket/path/to/image.png", false},
		{"不正なスキーム", "gopher://example.com", true},
		{"ループバックIP", "http://127.0.0.1/evil.png", true},
		{"プライベートIP (クラスA)", "http://10.255.255.254/metadata", true},
		{"プライベートIP (クラスC)", "https://192.168.1.1/router.png", true},
		{"リンクローカル", "http://169.254.169.254/latest/meta-data", true},
		{"パースできないURL", "://broken", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			safe, err := IsSafeURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("IsSafeURL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if safe == tt.wantErr {
				t.Errorf("IsSafeURL() safe = %v, wantErr %v", safe, tt.wantErr)
			}
		})
	}
}
