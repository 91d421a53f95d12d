package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/audit"
)

// AuditRepository is an append-only audit log.
type AuditRepository struct {
	db *sqlx.DB
}

func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Record(ctx context.Context, entry audit.Entry) error {
	previous, err := marshalDocument(entry.PreviousValues)
	if err != nil {
		return err
	}
	next, err := marshalDocument(entry.NewValues)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO audit_logs
		 (user_id, action, entity, entity_id, message, previous_values, new_values, ip_address, user_agent, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		entry.UserID, entry.Action, entry.Entity, entry.EntityID, entry.Message,
		previous, next, entry.IPAddress, entry.UserAgent, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
