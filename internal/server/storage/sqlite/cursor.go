package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GetCursor возвращает последний сохраненный курсор для пира.
// Если курсора нет (первая синхронизация с этим пиром) - возвращает 0.
func (s *Storage) GetCursor(ctx context.Context, peerURL string) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx,
		`SELECT last_seq FROM sync_cursors WHERE peer_url = ?`, peerURL,
	).Scan(&seq)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get cursor: %w", err)
	}

	return seq, nil
}

// SaveCursor сохраняет курсор для пира (upsert).
// Вызывается только после того, как весь батч reconciliation применен.
func (s *Storage) SaveCursor(ctx context.Context, peerURL string, seq int64) error {
	query := `
		INSERT INTO sync_cursors (peer_url, last_seq, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(peer_url) DO UPDATE SET last_seq = excluded.last_seq, updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query, peerURL, seq, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save cursor: %w", err)
	}

	return nil
}
