package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mtlprog/freightstat/internal/domain"
)

// ErrNotFound is returned when no point is stored for an index.
var ErrNotFound = errors.New("index point not found")

// Repository mirrors index history into persistent storage.
type Repository interface {
	SavePoints(ctx context.Context, code domain.IndexCode, points []domain.IndexPoint) error
	Latest(ctx context.Context, code domain.IndexCode) (domain.IndexPoint, error)
}

// PgRepository implements Repository with PostgreSQL.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository creates a new PostgreSQL index history repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// SavePoints upserts all points in one batch.
func (r *PgRepository) SavePoints(ctx context.Context, code domain.IndexCode, points []domain.IndexPoint) error {
	if len(points) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, p := range points {
		batch.Queue(
			`INSERT INTO index_points (index_code, point_date, value, change)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (index_code, point_date)
			 DO UPDATE SET value = $3, change = $4, updated_at = NOW()`,
			string(code), p.Date, p.Value, p.Change)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()
	for range points {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("saving %s points: %w", code, err)
		}
	}
	return nil
}

// Latest returns the most recent stored point for an index.
func (r *PgRepository) Latest(ctx context.Context, code domain.IndexCode) (domain.IndexPoint, error) {
	var p domain.IndexPoint
	err := r.pool.QueryRow(ctx,
		`SELECT point_date, value, change FROM index_points
		 WHERE index_code = $1
		 ORDER BY point_date DESC
		 LIMIT 1`, string(code)).Scan(&p.Date, &p.Value, &p.Change)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.IndexPoint{}, ErrNotFound
	}
	if err != nil {
		return domain.IndexPoint{}, fmt.Errorf("getting latest %s point: %w", code, err)
	}
	return p, nil
}
