package postgres

import (
	"context"
	"errors"
	"fmt"

	"branch-cash-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const auditColumns = `id, actor_id, action, entity_type, entity_id, old_value, new_value, entry_hash, created_at`

// AuditRepo implements ports.AuditRepository. The audit log is append-only.
type AuditRepo struct {
	pool Pool
}

// NewAuditRepo creates a new AuditRepo.
func NewAuditRepo(pool Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

// Create inserts an audit entry.
func (r *AuditRepo) Create(ctx context.Context, entry *domain.AuditEntry) error {
	query := `INSERT INTO audit_log (` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		entry.ID, entry.ActorID, entry.Action, entry.EntityType, entry.EntityID,
		entry.OldValue, entry.NewValue, entry.EntryHash, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListByEntity returns the entity's audit entries in chain order.
func (r *AuditRepo) ListByEntity(ctx context.Context, entityID uuid.UUID) ([]domain.AuditEntry, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_log
		WHERE entity_id = $1 ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, entityID)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var out []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(
			&e.ID, &e.ActorID, &e.Action, &e.EntityType, &e.EntityID,
			&e.OldValue, &e.NewValue, &e.EntryHash, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// LatestHash returns the newest entry's hash, or "" when the log is empty.
func (r *AuditRepo) LatestHash(ctx context.Context) (string, error) {
	query := `SELECT entry_hash FROM audit_log ORDER BY created_at DESC, id DESC LIMIT 1`

	var hash string
	err := r.pool.QueryRow(ctx, query).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("latest audit hash: %w", err)
	}
	return hash, nil
}
