package repository

import (
	"context"
	"database/sql"

	"github.com/kalenwallin/clipsync/internal/models"
)

// ClipboardRepository implements ClipboardRepo for PostgreSQL/SQLite
type ClipboardRepository struct {
	db *sql.DB
}

// NewClipboardRepository creates a new ClipboardRepository
func NewClipboardRepository(db *sql.DB) *ClipboardRepository {
	return &ClipboardRepository{db: db}
}

const clipboardColumns = `seq, id, pairing_id, content, source_device_id, type, created_at`

func (r *ClipboardRepository) Add(ctx context.Context, item *models.ClipboardItem) error {
	query := `INSERT INTO clipboard_items (id, pairing_id, content, source_device_id, type, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.PairingID, item.Content, item.SourceDeviceID, item.Type, item.CreatedAt,
	)
	return err
}

func (r *ClipboardRepository) GetLatest(ctx context.Context, pairingID string) (*models.ClipboardItem, error) {
	query := `SELECT ` + clipboardColumns + ` FROM clipboard_items
			  WHERE pairing_id = $1 ORDER BY seq DESC LIMIT 1`

	var item models.ClipboardItem
	err := r.db.QueryRowContext(ctx, query, pairingID).Scan(
		&item.Seq, &item.ID, &item.PairingID, &item.Content,
		&item.SourceDeviceID, &item.Type, &item.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ClipboardRepository) GetHistory(ctx context.Context, pairingID string, limit int) ([]*models.ClipboardItem, error) {
	query := `SELECT ` + clipboardColumns + ` FROM clipboard_items
			  WHERE pairing_id = $1 ORDER BY seq DESC LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, pairingID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.ClipboardItem
	for rows.Next() {
		var item models.ClipboardItem
		if err := rows.Scan(&item.Seq, &item.ID, &item.PairingID, &item.Content,
			&item.SourceDeviceID, &item.Type, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

func (r *ClipboardRepository) DeleteForPairing(ctx context.Context, pairingID string) (int, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clipboard_items WHERE pairing_id = $1`, pairingID)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	return int(affected), err
}
