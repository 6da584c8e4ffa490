package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Mazuh/bugginho-atm/src/internal/logger"
)

type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Create(ctx context.Context, ownerID int64, registerText string) error {
	const query = `
INSERT INTO account_history (register_text, owner_id)
VALUES ($1, $2)`

	if _, err := r.db.ExecContext(ctx, query, registerText, ownerID); err != nil {
		logger.Error("history repository create failed", err, logger.Fields{
			"ownerId": ownerID,
		})
		return fmt.Errorf("create history entry: %w", err)
	}

	return nil
}

func (r *HistoryRepository) GetByOwnerID(ctx context.Context, ownerID int64) ([]string, error) {
	const query = `
SELECT register_text
FROM account_history
WHERE owner_id = $1
ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		logger.Error("history repository get by owner failed", err, logger.Fields{
			"ownerId": ownerID,
		})
		return nil, fmt.Errorf("get history by owner: %w", err)
	}
	defer rows.Close()

	var texts []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		texts = append(texts, text)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}

	return texts, nil
}
