package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"reviro_api/internal/common"
	"reviro_api/internal/domain/model"
)

// RefreshTokenRepository is the ledger of issued refresh tokens. A refresh
// token is usable only while its row exists, so Delete is server-side
// revocation and DeleteExpired is the periodic sweep.
type RefreshTokenRepository interface {
	Store(ctx context.Context, token string, expiresAt time.Time) error
	Find(ctx context.Context, token string) (*model.RefreshToken, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type pgRefreshTokenRepository struct {
	db *sql.DB
}

func NewPgRefreshTokenRepository(db *sql.DB) RefreshTokenRepository {
	return &pgRefreshTokenRepository{db: db}
}

func (r *pgRefreshTokenRepository) Store(ctx context.Context, token string, expiresAt time.Time) error {
	query := `INSERT INTO refresh_tokens (token, expires_at) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, token, expiresAt.UTC()); err != nil {
		return fmt.Errorf("pgRefreshTokenRepository.Store: %w", err)
	}
	return nil
}

func (r *pgRefreshTokenRepository) Find(ctx context.Context, token string) (*model.RefreshToken, error) {
	query := `SELECT id, token, expires_at FROM refresh_tokens WHERE token = $1`
	record := &model.RefreshToken{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(&record.ID, &record.Token, &record.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgRefreshTokenRepository.Find: %w", err)
	}
	return record, nil
}

func (r *pgRefreshTokenRepository) Delete(ctx context.Context, token string) error {
	query := `DELETE FROM refresh_tokens WHERE token = $1`
	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("pgRefreshTokenRepository.Delete: %w", err)
	}
	return nil
}

// DeleteExpired removes every record with expires_at < now in a single
// conditional DELETE, safe against concurrent Store/Find.
func (r *pgRefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM refresh_tokens WHERE expires_at < $1`
	result, err := r.db.ExecContext(ctx, query, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("pgRefreshTokenRepository.DeleteExpired: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pgRefreshTokenRepository.DeleteExpired: %w", err)
	}
	return count, nil
}
