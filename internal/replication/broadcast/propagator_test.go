package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/socialmesh/internal/models"
	"github.com/iudanet/socialmesh/internal/replication/peerapi"
	"github.com/iudanet/socialmesh/pkg/api"
)

// fakeRegistry минимальная реализация PeerRegistry для тестов.
type fakeRegistry struct {
	mu          sync.Mutex
	targets     []models.Peer
	unreachable []string
}

func (f *fakeRegistry) BroadcastTargets() []models.Peer {
	return f.targets
}

func (f *fakeRegistry) MarkUnreachable(url string) {
	f.mu.Lock()
	f.unreachable = append(f.unreachable, url)
	f.mu.Unlock()
}

func testEntity() *models.ReplicatedEntity {
	return &models.ReplicatedEntity{
		ID:         "e1",
		Kind:       models.KindPost,
		AuthorID:   "u1",
		AuthorName: "alice",
		OriginPeer: "http://self:8080",
		Payload:    json.RawMessage(`{"content":"hi"}`),
		Timestamp:  5,
	}
}

func peers(urls ...string) []models.Peer {
	result := make([]models.Peer, 0, len(urls))
	for _, u := range urls {
		result = append(result, models.Peer{URL: u, Status: models.PeerStatusHealthy})
	}
	return result
}

func TestPropagator_Propagate(t *testing.T) {
	reg := &fakeRegistry{targets: peers("http://a:1", "http://b:2", "http://c:3")}

	var mu sync.Mutex
	called := []string{}
	client := &peerapi.APIMock{
		BroadcastFunc: func(ctx context.Context, peerURL string, req api.BroadcastRequest) (*api.BroadcastResponse, error) {
			mu.Lock()
			called = append(called, peerURL)
			mu.Unlock()

			assert.Equal(t, api.ActionNewPost, req.Action)
			assert.Equal(t, "e1", req.Entity.ID)
			return &api.BroadcastResponse{Status: "ok", Applied: true}, nil
		},
	}

	p := NewPropagator(reg, client, slog.Default())
	delivered := p.Propagate(context.Background(), testEntity())

	assert.Equal(t, 3, delivered)
	assert.Len(t, called, 3)
	assert.Empty(t, reg.unreachable)
}

func TestPropagator_Propagate_NoTargets(t *testing.T) {
	reg := &fakeRegistry{}
	client := &peerapi.APIMock{} // Broadcast не должен вызываться

	p := NewPropagator(reg, client, slog.Default())
	delivered := p.Propagate(context.Background(), testEntity())

	assert.Equal(t, 0, delivered)
}

func TestPropagator_Propagate_UnreachableMarked(t *testing.T) {
	reg := &fakeRegistry{targets: peers("http://ok:1", "http://dead:2", "http://flaky:3")}

	client := &peerapi.APIMock{
		BroadcastFunc: func(ctx context.Context, peerURL string, req api.BroadcastRequest) (*api.BroadcastResponse, error) {
			switch peerURL {
			case "http://dead:2":
				return nil, fmt.Errorf("%w: connection refused", peerapi.ErrPeerUnreachable)
			case "http://flaky:3":
				// HTTP-ошибка без транспортного сбоя - пир жив
				return nil, fmt.Errorf("peer error (500): internal")
			default:
				return &api.BroadcastResponse{Status: "ok", Applied: true}, nil
			}
		},
	}

	p := NewPropagator(reg, client, slog.Default())
	delivered := p.Propagate(context.Background(), testEntity())

	assert.Equal(t, 1, delivered)
	assert.Equal(t, []string{"http://dead:2"}, reg.unreachable)
}

func TestPropagator_Propagate_HangingPeerBounded(t *testing.T) {
	reg := &fakeRegistry{targets: peers("http://fast:1", "http://hang:2")}

	client := &peerapi.APIMock{
		BroadcastFunc: func(ctx context.Context, peerURL string, req api.BroadcastRequest) (*api.BroadcastResponse, error) {
			if peerURL == "http://hang:2" {
				// Висящий пир отвечает только по отмене контекста
				<-ctx.Done()
				return nil, fmt.Errorf("%w: %s", peerapi.ErrPeerUnreachable, ctx.Err())
			}
			return &api.BroadcastResponse{Status: "ok", Applied: true}, nil
		},
	}

	p := NewPropagator(reg, client, slog.Default())

	start := time.Now()
	delivered := p.Propagate(context.Background(), testEntity())
	elapsed := time.Since(start)

	assert.Equal(t, 1, delivered)
	// Висящий пир ограничен per-peer таймаутом, а не висит вечно
	require.Less(t, elapsed, peerTimeout+2*time.Second)
	assert.Contains(t, reg.unreachable, "http://hang:2")
}
