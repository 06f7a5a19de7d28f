package validation

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizePeerURL валидирует и нормализует URL пира к виду scheme://host:port.
// Идентичность пира в реестре определяется именно нормализованной формой,
// поэтому "http://a:8080/" и "HTTP://A:8080" считаются одним пиром.
// Возвращает ошибку валидации для некорректных URL - такие ошибки
// синхронные и никогда не ретраятся.
func NormalizePeerURL(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("peer url cannot be empty")
	}

	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid peer url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("peer url scheme must be http or https, got %q", u.Scheme)
	}

	if u.Hostname() == "" {
		return "", fmt.Errorf("peer url must contain a host")
	}

	host := strings.ToLower(u.Hostname())
	port := u.Port()
	if port == "" {
		// Дефолтный порт схемы, чтобы "http://a" и "http://a:80" совпадали
		if u.Scheme == "https" {
			port = "443"
		} else {
			port = "80"
		}
	}

	return fmt.Sprintf("%s://%s:%s", strings.ToLower(u.Scheme), host, port), nil
}
