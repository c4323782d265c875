package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/kalenwallin/clipsync/internal/models"
)

// PairingRepository implements PairingRepo for PostgreSQL/SQLite
type PairingRepository struct {
	db *sql.DB
}

// NewPairingRepository creates a new PairingRepository
func NewPairingRepository(db *sql.DB) *PairingRepository {
	return &PairingRepository{db: db}
}

const pairingColumns = `id, android_device_id, android_device_name, mac_device_id, mac_device_name, status, created_at`

func scanPairing(row *sql.Row) (*models.Pairing, error) {
	var p models.Pairing
	err := row.Scan(
		&p.ID, &p.AndroidDeviceID, &p.AndroidDeviceName,
		&p.MacDeviceID, &p.MacDeviceName, &p.Status, &p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// createAttempts bounds the retry loop when racing creates collide on the
// active-pairing unique indexes
const createAttempts = 3

// Create inserts the pairing after removing any prior pairing for either
// device. Lookup, cascade and insert run in a single transaction, but under
// READ COMMITTED (PostgreSQL's default) two racing creates for the same
// device key can both pass the cascade lookup. The partial unique indexes on
// active device IDs make the second INSERT fail instead of committing a
// duplicate; that loser retries, now sees the winner's row, and replaces it.
func (r *PairingRepository) Create(ctx context.Context, pairing *models.Pairing) error {
	var err error
	for attempt := 0; attempt < createAttempts; attempt++ {
		err = r.tryCreate(ctx, pairing)
		if !isUniqueViolation(err) {
			return err
		}
	}
	return err
}

func (r *PairingRepository) tryCreate(ctx context.Context, pairing *models.Pairing) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := cascadeDeleteByDevice(ctx, tx, "android_device_id", pairing.AndroidDeviceID); err != nil {
		return err
	}
	if err := cascadeDeleteByDevice(ctx, tx, "mac_device_id", pairing.MacDeviceID); err != nil {
		return err
	}

	query := `INSERT INTO pairings (id, android_device_id, android_device_name, mac_device_id, mac_device_name, status, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = tx.ExecContext(ctx, query,
		pairing.ID, pairing.AndroidDeviceID, pairing.AndroidDeviceName,
		pairing.MacDeviceID, pairing.MacDeviceName, pairing.Status, pairing.CreatedAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// isUniqueViolation reports whether err is a unique-constraint failure from
// either backend
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// cascadeDeleteByDevice removes every pairing matching the device column
// together with its clipboard items. Items are deleted before their pairing
// so a crash mid-cascade leaves at worst orphaned items, never an item whose
// pairing row outlived it.
func cascadeDeleteByDevice(ctx context.Context, tx *sql.Tx, column, deviceID string) error {
	rows, err := tx.QueryContext(ctx, `SELECT id FROM pairings WHERE `+column+` = $1`, deviceID)
	if err != nil {
		return err
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, `DELETE FROM clipboard_items WHERE pairing_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM pairings WHERE id = $1`, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *PairingRepository) GetByID(ctx context.Context, id string) (*models.Pairing, error) {
	query := `SELECT ` + pairingColumns + ` FROM pairings WHERE id = $1`
	return scanPairing(r.db.QueryRowContext(ctx, query, id))
}

func (r *PairingRepository) GetActiveByMacID(ctx context.Context, macDeviceID string) (*models.Pairing, error) {
	query := `SELECT ` + pairingColumns + ` FROM pairings
			  WHERE mac_device_id = $1 AND status = $2
			  ORDER BY created_at DESC LIMIT 1`
	return scanPairing(r.db.QueryRowContext(ctx, query, macDeviceID, models.PairingStatusActive))
}

func (r *PairingRepository) GetActiveByMacIDSince(ctx context.Context, macDeviceID string, since time.Time) (*models.Pairing, error) {
	query := `SELECT ` + pairingColumns + ` FROM pairings
			  WHERE mac_device_id = $1 AND status = $2 AND created_at >= $3
			  ORDER BY created_at DESC LIMIT 1`
	return scanPairing(r.db.QueryRowContext(ctx, query, macDeviceID, models.PairingStatusActive, since))
}

func (r *PairingRepository) Delete(ctx context.Context, id string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM clipboard_items WHERE pairing_id = $1`, id); err != nil {
		return false, err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM pairings WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return affected > 0, nil
}
