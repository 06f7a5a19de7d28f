package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iudanet/socialmesh/pkg/api"
)

// timelineProxyTimeout бюджет делегированного чтения. При превышении
// вызывающий отвечает из локального хранилища.
const timelineProxyTimeout = 5 * time.Second

// TimelineProxy запрашивает таймлайн у другого узла от имени
// пользователя. Узлы сети разделяют JWT secret, поэтому Authorization
// заголовок пользователя пробрасывается как есть.
type TimelineProxy struct {
	httpClient *http.Client
}

// NewTimelineProxy создает прокси таймлайна.
func NewTimelineProxy() *TimelineProxy {
	return &TimelineProxy{
		httpClient: &http.Client{Timeout: timelineProxyTimeout},
	}
}

// FetchTimeline выполняет GET /api/v1/timeline на удаленном узле.
func (p *TimelineProxy) FetchTimeline(ctx context.Context, peerURL string, page, perPage int, authHeader string) (*api.TimelineResponse, error) {
	url := fmt.Sprintf("%s/api/v1/timeline?page=%d&per_page=%d", peerURL, page, perPage)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	// Запрещаем дальнейшее делегирование: один хоп максимум
	req.Header.Set("X-Timeline-Delegated", "1")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("timeline request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timeline request failed with status %d", resp.StatusCode)
	}

	var timeline api.TimelineResponse
	if err := json.Unmarshal(body, &timeline); err != nil {
		return nil, fmt.Errorf("failed to decode timeline: %w", err)
	}

	return &timeline, nil
}
