package generator

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// IsSafeURL は、SSRF (Server-Side Request Forgery) 対策として参照画像URLを検証します。
// gs:// はバケット読み出し専用パスに流れるため常に許可し、http/https は
// プライベートIPやループバックアドレスを指していないことを確認します。
func IsSafeURL(rawURL string) (bool, error) {
	if strings.HasPrefix(rawURL, "gs://") {
		return true, nil
	}

	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return false, fmt.Errorf("failed to parse URL: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return false, fmt.Errorf("scheme not allowed: %s", parsedURL.Scheme)
	}

	host := parsedURL.Hostname()
	var ips []net.IP

	// IPアドレスが直接指定されている場合は名前解決を省く
	if ip := net.ParseIP(host); ip != nil {
		ips = []net.IP{ip}
	} else {
		resolvedIPs, err := net.LookupIP(host)
		if err != nil {
			return false, fmt.Errorf("failed to resolve host %q: %w", host, err)
		}
		ips = resolvedIPs
	}

	if len(ips) == 0 {
		return false, fmt.Errorf("no IP found for host %q", host)
	}

	for _, ip := range ips {
		if ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
			return false, fmt.Errorf("access to restricted network detected: %s", ip.String())
		}
	}

	return true, nil
}
