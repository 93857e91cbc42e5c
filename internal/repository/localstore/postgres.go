package localstore

import (
	"context"
	"errors"
	"io"
	"log"

	"balaji-storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by the local_storage table.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Get(ctx context.Context, visitorID, key string) ([]byte, error) {
	const q = `
SELECT payload
FROM local_storage
WHERE visitor_id = $1 AND key = $2
`
	var payload []byte
	if err := r.pool.QueryRow(ctx, q, visitorID, key).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("localstore repo: get visitor_id=%s key=%s error=%v", visitorID, key, err)
		return nil, err
	}
	return payload, nil
}

func (r *postgresRepo) Put(ctx context.Context, visitorID, key string, payload []byte) error {
	const q = `
INSERT INTO local_storage (visitor_id, key, payload, updated_at)
VALUES ($1, $2, $3::jsonb, now())
ON CONFLICT (visitor_id, key) DO UPDATE
SET payload = EXCLUDED.payload,
    updated_at = EXCLUDED.updated_at
`
	if _, err := r.pool.Exec(ctx, q, visitorID, key, string(payload)); err != nil {
		r.logger.Printf("localstore repo: put visitor_id=%s key=%s error=%v", visitorID, key, err)
		return err
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, visitorID, key string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM local_storage WHERE visitor_id = $1 AND key = $2`, visitorID, key); err != nil {
		r.logger.Printf("localstore repo: delete visitor_id=%s key=%s error=%v", visitorID, key, err)
		return err
	}
	return nil
}

func (r *postgresRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
