package registry

import (
	"context"
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

func newTestRegistry(t *testing.T, client peerapi.API) *Registry {
	t.Helper()

	if client == nil {
		client = &peerapi.APIMock{}
	}
	r, err := New("http://self:8080", client, slog.Default())
	require.NoError(t, err)
	return r
}

func TestRegistry_Register(t *testing.T) {
	r := newTestRegistry(t, nil)

	tests := []struct {
		name      string
		url       string
		wantAdded bool
		wantErr   bool
	}{
		{
			name:      "new peer",
			url:       "http://peer-a:8080",
			wantAdded: true,
		},
		{
			name:      "duplicate peer",
			url:       "http://peer-a:8080",
			wantAdded: false,
		},
		{
			name:      "same peer different spelling",
			url:       "HTTP://PEER-A:8080/",
			wantAdded: false,
		},
		{
			name:    "self registration",
			url:     "http://self:8080",
			wantErr: true,
		},
		{
			name:    "invalid url",
			url:     "not a url",
			wantErr: true,
		},
		{
			name:      "https default port",
			url:       "https://peer-b",
			wantAdded: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			added, err := r.Register(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAdded, added)
		})
	}

	assert.Equal(t, []string{"http://peer-a:8080", "https://peer-b:443"}, r.KnownURLs())
}

func TestRegistry_StatusTransitions(t *testing.T) {
	r := newTestRegistry(t, nil)

	_, err := r.Register("http://peer-a:8080")
	require.NoError(t, err)

	// Новый пир - Unknown и попадает в broadcast-цели
	targets := r.BroadcastTargets()
	require.Len(t, targets, 1)
	assert.Equal(t, models.PeerStatusUnknown, targets[0].Status)
	assert.Empty(t, r.HealthyPeers())

	r.MarkHealthy("http://peer-a:8080")
	healthy := r.HealthyPeers()
	require.Len(t, healthy, 1)
	assert.False(t, healthy[0].LastSeenAt.IsZero())

	// Unreachable выпадает из целей, но остается в реестре
	r.MarkUnreachable("http://peer-a:8080")
	assert.Empty(t, r.BroadcastTargets())
	assert.Len(t, r.List(), 1)

	// Отметка неизвестного URL - no-op
	r.MarkHealthy("http://ghost:8080")
	assert.Empty(t, r.HealthyPeers())
}

func TestRegistry_RegisterAndExchange(t *testing.T) {
	client := &peerapi.APIMock{
		KnownPeersFunc: func(ctx context.Context, peerURL string) ([]string, error) {
			return []string{
				"http://peer-b:8080",
				"http://self:8080", // себя из чужого списка игнорируем
			}, nil
		},
	}
	r := newTestRegistry(t, client)

	added, err := r.RegisterAndExchange(context.Background(), "http://peer-a:8080")
	require.NoError(t, err)
	assert.True(t, added)

	r.Wait()

	assert.Equal(t, []string{"http://peer-a:8080", "http://peer-b:8080"}, r.KnownURLs())

	calls := client.KnownPeersCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "http://peer-a:8080", calls[0].PeerURL)

	// Повторная регистрация не запускает обмен заново
	added, err = r.RegisterAndExchange(context.Background(), "http://peer-a:8080")
	require.NoError(t, err)
	assert.False(t, added)
	r.Wait()
	assert.Len(t, client.KnownPeersCalls(), 1)
}

func TestRegistry_Bootstrap(t *testing.T) {
	client := &peerapi.APIMock{
		RegisterPeerFunc: func(ctx context.Context, peerURL, selfURL string) (*api.RegisterPeerResponse, error) {
			assert.Equal(t, "http://self:8080", selfURL)
			if peerURL == "http://peer-a:8080" {
				// Bootstrap-пир знает про peer-b
				return &api.RegisterPeerResponse{Status: "added", KnownPeers: []string{"http://peer-b:8080"}}, nil
			}
			return &api.RegisterPeerResponse{Status: "added"}, nil
		},
	}

	r := newTestRegistry(t, client)
	r.Bootstrap(context.Background(), []string{"http://peer-a:8080"})

	assert.Equal(t, []string{"http://peer-a:8080", "http://peer-b:8080"}, r.KnownURLs())

	// Узел анонсировал себя и транзитивно узнанному peer-b
	calls := client.RegisterPeerCalls()
	announced := make([]string, 0, len(calls))
	for _, c := range calls {
		announced = append(announced, c.PeerURL)
	}
	assert.ElementsMatch(t, []string{"http://peer-a:8080", "http://peer-b:8080"}, announced)
}

func TestRegistry_SnapshotRestore(t *testing.T) {
	r := newTestRegistry(t, nil)

	_, err := r.Register("http://peer-a:8080")
	require.NoError(t, err)
	r.MarkHealthy("http://peer-a:8080")
	r.SetSyncCursor("http://peer-a:8080", 42)

	snapshot := r.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, int64(42), snapshot[0].LastSyncCursor)

	// Restore в свежий реестр: статус сбрасывается, курсор сохраняется
	fresh := newTestRegistry(t, nil)
	fresh.Restore(snapshot)

	restored := fresh.List()
	require.Len(t, restored, 1)
	assert.Equal(t, models.PeerStatusUnknown, restored[0].Status)
	assert.Equal(t, int64(42), restored[0].LastSyncCursor)

	// Restore не перетирает уже известные записи
	fresh.MarkHealthy("http://peer-a:8080")
	fresh.Restore(snapshot)
	assert.Equal(t, models.PeerStatusHealthy, fresh.List()[0].Status)
}

func TestRegistry_Counts(t *testing.T) {
	r := newTestRegistry(t, nil)

	for _, url := range []string{"http://a:1", "http://b:2", "http://c:3"} {
		_, err := r.Register(url)
		require.NoError(t, err)
	}
	r.MarkHealthy("http://a:1")
	r.MarkUnreachable("http://b:2")

	known, healthy := r.Counts()
	assert.Equal(t, 3, known)
	assert.Equal(t, 1, healthy)
}

func TestRegistry_ConcurrentRegister(t *testing.T) {
	r := newTestRegistry(t, nil)

	var wg sync.WaitGroup
	var mu sync.Mutex
	addedCount := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			added, err := r.Register("http://peer-a:8080")
			require.NoError(t, err)
			if added {
				mu.Lock()
				addedCount++
				mu.Unlock()
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("concurrent register deadlocked")
	}

	assert.Equal(t, 1, addedCount, "exactly one goroutine must observe added=true")
	assert.Len(t, r.List(), 1)
}
