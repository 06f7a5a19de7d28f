package sqlite

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/socialmesh/internal/models"
	"github.com/iudanet/socialmesh/internal/server/storage"
)

// setupTestStorage создает in-memory хранилище для тестов
func setupTestStorage(t *testing.T) (*Storage, func()) {
	t.Helper()

	s, err := New(context.Background(), ":memory:")
	require.NoError(t, err)

	return s, func() {
		_ = s.Close()
	}
}

func newTestPost(authorName, content string) *models.ReplicatedEntity {
	payload, _ := json.Marshal(models.PostPayload{Content: content})
	return &models.ReplicatedEntity{
		ID:         uuid.New().String(),
		Kind:       models.KindPost,
		AuthorID:   uuid.New().String(),
		AuthorName: authorName,
		OriginPeer: "node-1",
		Payload:    payload,
		Timestamp:  1,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

func TestEntityStorage_SaveEntity_Create(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	tests := []struct {
		entity    *models.ReplicatedEntity
		name      string
		wantSaved bool
	}{
		{
			name:      "save new post",
			entity:    newTestPost("alice", "hello mesh"),
			wantSaved: true,
		},
		{
			name: "save new like",
			entity: &models.ReplicatedEntity{
				ID:         uuid.New().String(),
				Kind:       models.KindLike,
				AuthorID:   "user-2",
				AuthorName: "bob",
				SubjectID:  "post-1",
				OriginPeer: "node-2",
				Payload:    json.RawMessage(`{}`),
				Timestamp:  2,
			},
			wantSaved: true,
		},
		{
			name: "save deleted like",
			entity: &models.ReplicatedEntity{
				ID:         uuid.New().String(),
				Kind:       models.KindLike,
				AuthorID:   "user-3",
				AuthorName: "carol",
				SubjectID:  "post-1",
				OriginPeer: "node-3",
				Payload:    json.RawMessage(`{}`),
				Timestamp:  3,
				Deleted:    true,
			},
			wantSaved: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saved, err := s.SaveEntity(ctx, tt.entity)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSaved, saved)
			assert.Greater(t, tt.entity.Seq, int64(0), "seq must be assigned on save")

			retrieved, err := s.GetEntity(ctx, tt.entity.ID)
			if tt.entity.Deleted {
				// Удаленные сущности не возвращаются через GetEntity
				assert.ErrorIs(t, err, storage.ErrEntityNotFound)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.entity.ID, retrieved.ID)
				assert.Equal(t, tt.entity.Kind, retrieved.Kind)
				assert.Equal(t, tt.entity.AuthorID, retrieved.AuthorID)
				assert.Equal(t, tt.entity.Timestamp, retrieved.Timestamp)
				assert.JSONEq(t, string(tt.entity.Payload), string(retrieved.Payload))
			}
		})
	}
}

func TestEntityStorage_SaveEntity_LWW(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	entityID := uuid.New().String()

	v1 := &models.ReplicatedEntity{
		ID:         entityID,
		Kind:       models.KindLike,
		AuthorID:   "user-1",
		AuthorName: "alice",
		SubjectID:  "post-1",
		OriginPeer: "node-1",
		Payload:    json.RawMessage(`{}`),
		Timestamp:  10,
	}

	saved, err := s.SaveEntity(ctx, v1)
	require.NoError(t, err)
	assert.True(t, saved)
	firstSeq := v1.Seq

	// Повторное применение той же версии - идемпотентный no-op
	dup := v1.Clone()
	saved, err = s.SaveEntity(ctx, dup)
	require.NoError(t, err)
	assert.False(t, saved, "duplicate must not be applied")

	// Более старая версия не перезаписывает
	older := v1.Clone()
	older.Timestamp = 5
	saved, err = s.SaveEntity(ctx, older)
	require.NoError(t, err)
	assert.False(t, saved)

	// Более новая версия (unlike) выигрывает и получает новый seq
	newer := v1.Clone()
	newer.Timestamp = 20
	newer.Deleted = true
	saved, err = s.SaveEntity(ctx, newer)
	require.NoError(t, err)
	assert.True(t, saved)
	assert.Greater(t, newer.Seq, firstSeq, "winning rewrite must bump seq")

	// Равный timestamp - решает OriginPeer лексикографически
	tie := v1.Clone()
	tie.Timestamp = 20
	tie.OriginPeer = "node-0" // проигрывает "node-1"
	saved, err = s.SaveEntity(ctx, tie)
	require.NoError(t, err)
	assert.False(t, saved)
}

func TestEntityStorage_ListEntitiesSince(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	var ids []string
	for i := 0; i < 5; i++ {
		e := newTestPost("alice", "post")
		e.Timestamp = int64(i + 1)
		saved, err := s.SaveEntity(ctx, e)
		require.NoError(t, err)
		require.True(t, saved)
		ids = append(ids, e.ID)
	}

	// Все сущности с начала
	all, err := s.ListEntitiesSince(ctx, 0, 100)
	require.NoError(t, err)
	require.Len(t, all, 5)

	// Порядок по возрастанию seq
	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i].Seq, all[i-1].Seq)
	}

	// Инкрементальный pull с курсора
	cursor := all[2].Seq
	tail, err := s.ListEntitiesSince(ctx, cursor, 100)
	require.NoError(t, err)
	require.Len(t, tail, 2)
	assert.Equal(t, ids[3], tail[0].ID)
	assert.Equal(t, ids[4], tail[1].ID)

	// Limit ограничивает размер батча
	limited, err := s.ListEntitiesSince(ctx, 0, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	// Пустой результат за последним seq
	empty, err := s.ListEntitiesSince(ctx, all[4].Seq, 100)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestEntityStorage_FindLike(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	like := &models.ReplicatedEntity{
		ID:         uuid.New().String(),
		Kind:       models.KindLike,
		AuthorID:   "user-1",
		AuthorName: "alice",
		SubjectID:  "post-1",
		OriginPeer: "node-1",
		Payload:    json.RawMessage(`{}`),
		Timestamp:  1,
		Deleted:    true, // soft-deleted лайк должен находиться
	}

	_, err := s.SaveEntity(ctx, like)
	require.NoError(t, err)

	found, err := s.FindLike(ctx, "post-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, like.ID, found.ID)
	assert.True(t, found.Deleted)

	_, err = s.FindLike(ctx, "post-1", "user-2")
	assert.ErrorIs(t, err, storage.ErrEntityNotFound)
}

func TestEntityStorage_TimelineQueries(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	post := newTestPost("alice", "first post")
	_, err := s.SaveEntity(ctx, post)
	require.NoError(t, err)

	// Два лайка, один из них снят
	for i, deleted := range []bool{false, true} {
		like := &models.ReplicatedEntity{
			ID:         uuid.New().String(),
			Kind:       models.KindLike,
			AuthorID:   "user-" + string(rune('a'+i)),
			AuthorName: "user",
			SubjectID:  post.ID,
			OriginPeer: "node-1",
			Payload:    json.RawMessage(`{}`),
			Timestamp:  int64(i + 2),
			Deleted:    deleted,
		}
		_, err := s.SaveEntity(ctx, like)
		require.NoError(t, err)
	}

	commentPayload, _ := json.Marshal(models.CommentPayload{Text: "nice"})
	comment := &models.ReplicatedEntity{
		ID:         uuid.New().String(),
		Kind:       models.KindComment,
		AuthorID:   "user-b",
		AuthorName: "bob",
		SubjectID:  post.ID,
		OriginPeer: "node-2",
		Payload:    commentPayload,
		Timestamp:  5,
	}
	_, err = s.SaveEntity(ctx, comment)
	require.NoError(t, err)

	posts, err := s.ListPosts(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, post.ID, posts[0].ID)

	likes, err := s.CountLikes(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, likes, "deleted like must not be counted")

	liked, err := s.HasLiked(ctx, post.ID, "user-a")
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = s.HasLiked(ctx, post.ID, "user-b")
	require.NoError(t, err)
	assert.False(t, liked)

	comments, err := s.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, comment.ID, comments[0].ID)
}

func TestEntityStorage_MaxTimestamp(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	// Пустое хранилище
	ts, err := s.MaxTimestamp(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), ts)

	e := newTestPost("alice", "post")
	e.Timestamp = 42
	_, err = s.SaveEntity(ctx, e)
	require.NoError(t, err)

	ts, err = s.MaxTimestamp(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), ts)
}
