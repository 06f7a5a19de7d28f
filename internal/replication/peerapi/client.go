package peerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iudanet/socialmesh/pkg/api"
)

// ErrPeerUnreachable означает транспортный сбой: пир не ответил вовсе
// (connection refused, timeout, DNS). HTTP-ошибки со статусом сюда не
// попадают - узел жив, просто отказал.
var ErrPeerUnreachable = errors.New("peer unreachable")

//go:generate go tool moq -out client_mock.go . API

// API описывает межузловые вызовы репликации. Интерфейс объявлен на
// стороне потребителей (registry, health, broadcast, reconcile), чтобы
// их можно было тестировать без живого HTTP.
type API interface {
	RegisterPeer(ctx context.Context, peerURL, selfURL string) (*api.RegisterPeerResponse, error)
	KnownPeers(ctx context.Context, peerURL string) ([]string, error)
	Broadcast(ctx context.Context, peerURL string, req api.BroadcastRequest) (*api.BroadcastResponse, error)
	PullSince(ctx context.Context, peerURL string, since int64, limit int) (*api.PullResponse, error)
	Ping(ctx context.Context, peerURL string) (*api.PingResponse, error)
}

// Client представляет HTTP клиент для взаимодействия с другими узлами.
// Один клиент обслуживает все пиры: базовый URL передается в каждый вызов.
type Client struct {
	httpClient *http.Client
}

// NewClient создает новый клиент межузлового API.
// Таймауты на отдельные вызовы задают вызывающие через context;
// клиентский таймаут - верхняя страховочная граница.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// RegisterPeer регистрирует selfURL на удаленном узле.
func (c *Client) RegisterPeer(ctx context.Context, peerURL, selfURL string) (*api.RegisterPeerResponse, error) {
	var resp api.RegisterPeerResponse
	req := api.RegisterPeerRequest{URL: selfURL}
	err := c.doRequest(ctx, http.MethodPost, peerURL, "/api/v1/peers/register", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("register peer request failed: %w", err)
	}
	return &resp, nil
}

// KnownPeers возвращает список пиров, известных удаленному узлу.
func (c *Client) KnownPeers(ctx context.Context, peerURL string) ([]string, error) {
	var resp api.PeersResponse
	err := c.doRequest(ctx, http.MethodGet, peerURL, "/api/v1/peers", nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("known peers request failed: %w", err)
	}
	return resp.Peers, nil
}

// Broadcast доставляет одно действие на удаленный узел.
func (c *Client) Broadcast(ctx context.Context, peerURL string, req api.BroadcastRequest) (*api.BroadcastResponse, error) {
	var resp api.BroadcastResponse
	err := c.doRequest(ctx, http.MethodPost, peerURL, "/api/v1/replication/broadcast", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("broadcast request failed: %w", err)
	}
	return &resp, nil
}

// PullSince запрашивает у пира сущности с sequence больше since.
func (c *Client) PullSince(ctx context.Context, peerURL string, since int64, limit int) (*api.PullResponse, error) {
	var resp api.PullResponse
	path := fmt.Sprintf("/api/v1/replication/pull?since=%d&limit=%d", since, limit)
	err := c.doRequest(ctx, http.MethodGet, peerURL, path, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("pull request failed: %w", err)
	}
	return &resp, nil
}

// Ping выполняет liveness-проверку удаленного узла.
func (c *Client) Ping(ctx context.Context, peerURL string) (*api.PingResponse, error) {
	var resp api.PingResponse
	err := c.doRequest(ctx, http.MethodGet, peerURL, "/api/v1/ping", nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("ping request failed: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос к пиру
func (c *Client) doRequest(ctx context.Context, method, baseURL, path string, body, result interface{}) error {
	url := baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Транспортный сбой - пир считается недоступным
		return fmt.Errorf("%w: %s", ErrPeerUnreachable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("peer error (%d): %s", resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
