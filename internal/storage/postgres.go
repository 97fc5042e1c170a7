package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cym-store/internal/logger"

	"go.uber.org/zap"
)

type postgresBackend struct {
	db *sql.DB
}

// NewPostgresBackend stores slots in the session_slots table so carts survive
// a server restart.
func NewPostgresBackend(db *sql.DB) Backend {
	return &postgresBackend{db: db}
}

func (p *postgresBackend) Load(ctx context.Context, namespace, key string) (string, bool, error) {
	var value string
	err := p.db.QueryRowContext(ctx, `
		SELECT slot_value
		FROM session_slots
		WHERE namespace = $1 AND slot_key = $2
	`, namespace, key).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load slot",
			zap.String("layer", "storage"),
			zap.String("key", key),
			zap.Error(err),
		)
		return "", false, fmt.Errorf("load slot %q: %w", key, err)
	}

	return value, true, nil
}

func (p *postgresBackend) Save(ctx context.Context, namespace, key, value string) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO session_slots (namespace, slot_key, slot_value)
		VALUES ($1, $2, $3)
		ON CONFLICT (namespace, slot_key)
		DO UPDATE SET slot_value = EXCLUDED.slot_value, updated_at = NOW()
	`, namespace, key, value)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to save slot",
			zap.String("layer", "storage"),
			zap.String("key", key),
			zap.Error(err),
		)
		return fmt.Errorf("save slot %q: %w", key, err)
	}
	return nil
}

func (p *postgresBackend) Remove(ctx context.Context, namespace, key string) error {
	_, err := p.db.ExecContext(ctx, `
		DELETE FROM session_slots
		WHERE namespace = $1 AND slot_key = $2
	`, namespace, key)
	if err != nil {
		return fmt.Errorf("remove slot %q: %w", key, err)
	}
	return nil
}
