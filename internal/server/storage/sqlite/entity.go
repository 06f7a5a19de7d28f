package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/socialmesh/internal/models"
	"github.com/iudanet/socialmesh/internal/server/storage"
)

const entityColumns = `id, kind, author_id, author_name, subject_id, origin_peer,
	       payload, seq, timestamp, deleted, created_at, updated_at`

// SaveEntity creates or updates a replicated entity using LWW rules.
// Store-local sequence присваивается в той же транзакции, что и запись,
// поэтому сущность становится видимой для pull атомарно с применением.
// Returns true if entity was applied, false if existing version is newer.
func (s *Storage) SaveEntity(ctx context.Context, entity *models.ReplicatedEntity) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Проверяем существующую версию
	var existing models.ReplicatedEntity
	err = tx.QueryRowContext(ctx,
		`SELECT timestamp, origin_peer FROM entities WHERE id = ?`, entity.ID,
	).Scan(&existing.Timestamp, &existing.OriginPeer)

	exists := true
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return false, fmt.Errorf("failed to check existing entity: %w", err)
		}
		exists = false
	}

	// Если существующая версия новее или идентична - идемпотентный no-op
	if exists && !entity.IsNewerThan(&existing) {
		return false, nil
	}

	// Выделяем следующий store-local sequence
	if _, err := tx.ExecContext(ctx,
		`UPDATE node_state SET local_seq = local_seq + 1 WHERE id = 1`,
	); err != nil {
		return false, fmt.Errorf("failed to advance local seq: %w", err)
	}

	var seq int64
	if err := tx.QueryRowContext(ctx,
		`SELECT local_seq FROM node_state WHERE id = 1`,
	).Scan(&seq); err != nil {
		return false, fmt.Errorf("failed to read local seq: %w", err)
	}

	if exists {
		query := `
			UPDATE entities
			SET kind = ?, author_id = ?, author_name = ?, subject_id = ?,
			    origin_peer = ?, payload = ?, seq = ?, timestamp = ?,
			    deleted = ?, updated_at = ?
			WHERE id = ?
		`

		_, err = tx.ExecContext(ctx, query,
			entity.Kind,
			entity.AuthorID,
			entity.AuthorName,
			entity.SubjectID,
			entity.OriginPeer,
			[]byte(entity.Payload),
			seq,
			entity.Timestamp,
			boolToInt(entity.Deleted),
			time.Now().Unix(),
			entity.ID,
		)
		if err != nil {
			return false, fmt.Errorf("failed to update entity: %w", err)
		}
	} else {
		query := `
			INSERT INTO entities (
				id, kind, author_id, author_name, subject_id, origin_peer,
				payload, seq, timestamp, deleted, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`

		createdAt := entity.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}

		_, err = tx.ExecContext(ctx, query,
			entity.ID,
			entity.Kind,
			entity.AuthorID,
			entity.AuthorName,
			entity.SubjectID,
			entity.OriginPeer,
			[]byte(entity.Payload),
			seq,
			entity.Timestamp,
			boolToInt(entity.Deleted),
			createdAt.Unix(),
			time.Now().Unix(),
		)
		if err != nil {
			return false, fmt.Errorf("failed to insert entity: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit entity: %w", err)
	}

	entity.Seq = seq
	return true, nil
}

// GetEntity retrieves a single non-deleted entity by ID.
// Returns ErrEntityNotFound if entity doesn't exist or is soft-deleted.
func (s *Storage) GetEntity(ctx context.Context, id string) (*models.ReplicatedEntity, error) {
	query := `SELECT ` + entityColumns + ` FROM entities WHERE id = ?`

	entity, err := s.scanEntity(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEntityNotFound
		}
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}

	// Удаленные сущности не возвращаем через внешний API
	if entity.Deleted {
		return nil, storage.ErrEntityNotFound
	}

	return entity, nil
}

// FindLike ищет лайк по паре (пост, автор), включая soft-deleted версии.
// Toggle-семантика unlike требует доступа к удаленной версии, чтобы
// воскресить лайк с большим timestamp.
func (s *Storage) FindLike(ctx context.Context, postID, authorID string) (*models.ReplicatedEntity, error) {
	query := `SELECT ` + entityColumns + `
		FROM entities
		WHERE kind = ? AND subject_id = ? AND author_id = ?`

	entity, err := s.scanEntity(s.db.QueryRowContext(ctx, query, models.KindLike, postID, authorID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEntityNotFound
		}
		return nil, fmt.Errorf("failed to find like: %w", err)
	}

	return entity, nil
}

// ListEntitiesSince retrieves all entities (including deleted) with
// sequence greater than since, ordered by sequence ascending.
// Used by the reconciliation pull handler.
func (s *Storage) ListEntitiesSince(ctx context.Context, since int64, limit int) ([]*models.ReplicatedEntity, error) {
	query := `SELECT ` + entityColumns + `
		FROM entities
		WHERE seq > ?
		ORDER BY seq ASC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query entities since seq: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return s.scanEntities(rows)
}

// MaxTimestamp returns the maximum Lamport timestamp stored locally.
// Используется для восстановления часов после рестарта узла.
func (s *Storage) MaxTimestamp(ctx context.Context) (int64, error) {
	var ts sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT MAX(timestamp) FROM entities`).Scan(&ts)
	if err != nil {
		return 0, fmt.Errorf("failed to get max timestamp: %w", err)
	}

	if !ts.Valid {
		return 0, nil
	}
	return ts.Int64, nil
}

// ListPosts returns a page of non-deleted posts, newest first.
func (s *Storage) ListPosts(ctx context.Context, limit, offset int) ([]*models.ReplicatedEntity, error) {
	query := `SELECT ` + entityColumns + `
		FROM entities
		WHERE kind = ? AND deleted = 0
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`

	rows, err := s.db.QueryContext(ctx, query, models.KindPost, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return s.scanEntities(rows)
}

// CountLikes returns the number of non-deleted likes for a post.
func (s *Storage) CountLikes(ctx context.Context, postID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM entities WHERE kind = ? AND subject_id = ? AND deleted = 0`,
		models.KindLike, postID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

// HasLiked reports whether the user has a non-deleted like on the post.
func (s *Storage) HasLiked(ctx context.Context, postID, authorID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM entities WHERE kind = ? AND subject_id = ? AND author_id = ? AND deleted = 0`,
		models.KindLike, postID, authorID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return count > 0, nil
}

// ListComments returns non-deleted comments for a post, oldest first.
func (s *Storage) ListComments(ctx context.Context, postID string) ([]*models.ReplicatedEntity, error) {
	query := `SELECT ` + entityColumns + `
		FROM entities
		WHERE kind = ? AND subject_id = ? AND deleted = 0
		ORDER BY created_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, models.KindComment, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return s.scanEntities(rows)
}

// rowScanner абстрагирует *sql.Row и *sql.Rows для единого scan-хелпера
type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Storage) scanEntity(row rowScanner) (*models.ReplicatedEntity, error) {
	entity := &models.ReplicatedEntity{}
	var payload []byte
	var deleted int
	var createdAt, updatedAt int64

	err := row.Scan(
		&entity.ID,
		&entity.Kind,
		&entity.AuthorID,
		&entity.AuthorName,
		&entity.SubjectID,
		&entity.OriginPeer,
		&payload,
		&entity.Seq,
		&entity.Timestamp,
		&deleted,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	entity.Payload = payload
	entity.Deleted = intToBool(deleted)
	entity.CreatedAt = unixToTime(createdAt)
	entity.UpdatedAt = unixToTime(updatedAt)

	return entity, nil
}

// scanEntities is a helper function to scan multiple entities from rows
func (s *Storage) scanEntities(rows *sql.Rows) ([]*models.ReplicatedEntity, error) {
	var entities []*models.ReplicatedEntity

	for rows.Next() {
		entity, err := s.scanEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		entities = append(entities, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entities, nil
}

// Helper functions for bool/int conversion
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

func unixToTime(timestamp int64) time.Time {
	return time.Unix(timestamp, 0)
}
