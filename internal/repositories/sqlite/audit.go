package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kollect/backend/internal/models"
)

const defaultAuditLimit = 50

type AuditRepo struct {
	db *sql.DB
}

func (r *AuditRepo) Log(ctx context.Context, entry models.AuditLog) error {
	var meta any
	if entry.Meta != nil {
		raw, err := json.Marshal(entry.Meta)
		if err != nil {
			return fmt.Errorf("encode audit meta: %w", err)
		}
		meta = string(raw)
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_log (id, actor_user_id, actor_type, action, entity_type, entity_id, meta, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.New(), entry.ActorUserID, entry.ActorType, entry.Action, entry.EntityType, entry.EntityID,
		meta, toMillis(time.Now()))
	return err
}

func (r *AuditRepo) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, actor_user_id, actor_type, action, entity_type, entity_id, meta, created_at
		FROM audit_log WHERE entity_type = ? AND entity_id = ?
		ORDER BY created_at DESC, rowid DESC LIMIT ?
	`, entityType, entityID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []models.AuditLog{}
	for rows.Next() {
		var l models.AuditLog
		var actor, entity uuid.NullUUID
		var meta sql.NullString
		var createdAt int64
		if err := rows.Scan(&l.ID, &actor, &l.ActorType, &l.Action, &l.EntityType, &entity, &meta, &createdAt); err != nil {
			return nil, err
		}
		if actor.Valid {
			l.ActorUserID = &actor.UUID
		}
		if entity.Valid {
			l.EntityID = &entity.UUID
		}
		if meta.Valid {
			var decoded map[string]any
			if err := json.Unmarshal([]byte(meta.String), &decoded); err == nil {
				l.Meta = decoded
			}
		}
		l.CreatedAt = fromMillis(createdAt)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
