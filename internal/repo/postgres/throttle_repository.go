package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manish-env/shopify-order-tracking/internal/ports"
)

// Проверка, что ThrottleRepository удовлетворяет порту ограничителя.
var _ ports.Throttle = (*ThrottleRepository)(nil)

// ThrottleRepository — скользящее окно на Postgres: общий лимит для нескольких инстансов.
// Отметки допущенных запросов лежат в throttle_hits.
type ThrottleRepository struct {
	pool   *pgxpool.Pool
	max    int
	window time.Duration
}

// NewThrottleRepository — конструктор ThrottleRepository.
func NewThrottleRepository(pool *pgxpool.Pool, maxRequests int, window time.Duration) *ThrottleRepository {
	if maxRequests <= 0 {
		maxRequests = 1
	}
	return &ThrottleRepository{pool: pool, max: maxRequests, window: window}
}

// Admit — в одной транзакции под advisory-локом клиента:
// чистит устаревшие отметки, считает оставшиеся и при наличии места добавляет новую.
func (r *ThrottleRepository) Admit(ctx context.Context, clientID string, now time.Time) (admitted bool, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		// После Commit Rollback вернёт ErrTxClosed — это норма.
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) && err == nil {
			err = fmt.Errorf("rollback: %w", rbErr)
		}
	}()

	if _, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, clientID); err != nil {
		return false, fmt.Errorf("lock client: %w", err)
	}

	cutoff := now.Add(-r.window)
	if _, err = tx.Exec(ctx, `
		DELETE FROM throttle_hits
		WHERE client_id = $1 AND hit_at < $2
	`, clientID, cutoff); err != nil {
		return false, fmt.Errorf("prune hits: %w", err)
	}

	var count int
	if err = tx.QueryRow(ctx, `
		SELECT count(*) FROM throttle_hits WHERE client_id = $1
	`, clientID).Scan(&count); err != nil {
		return false, fmt.Errorf("count hits: %w", err)
	}
	if count >= r.max {
		if err = tx.Commit(ctx); err != nil {
			return false, fmt.Errorf("commit: %w", err)
		}
		return false, nil
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO throttle_hits (client_id, hit_at) VALUES ($1, $2)
	`, clientID, now); err != nil {
		return false, fmt.Errorf("insert hit: %w", err)
	}
	if err = tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return true, nil
}

// PruneIdle — удаляет все отметки старше окна; возвращает число удалённых строк.
func (r *ThrottleRepository) PruneIdle(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM throttle_hits WHERE hit_at < $1`, now.Add(-r.window))
	if err != nil {
		return 0, fmt.Errorf("prune idle: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Close — закрывает пул соединений.
func (r *ThrottleRepository) Close() error {
	r.pool.Close()
	return nil
}
