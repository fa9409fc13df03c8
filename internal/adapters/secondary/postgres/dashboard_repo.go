package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hush-backend/internal/core/domain"
	output "hush-backend/internal/core/ports/output"
)

const schema = `
	CREATE TABLE IF NOT EXISTS dashboard_data_point (
		id                    BIGSERIAL PRIMARY KEY,
		timestamp             TEXT             NOT NULL,
		avg_text_importance   DOUBLE PRECISION NOT NULL,
		avg_typing_importance DOUBLE PRECISION NOT NULL,
		avg_voice_importance  DOUBLE PRECISION NOT NULL,
		update_count          INTEGER          NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS ix_dashboard_data_point_timestamp
		ON dashboard_data_point (timestamp);
`

const insertQuery = `
	INSERT INTO dashboard_data_point
		(timestamp, avg_text_importance, avg_typing_importance, avg_voice_importance, update_count)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id
`

const selectColumns = `id, timestamp, avg_text_importance, avg_typing_importance, avg_voice_importance, update_count`

type dashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository
func NewDashboardRepository(pool *pgxpool.Pool) output.DashboardRepository {
	return &dashboardRepo{pool: pool}
}

func (r *dashboardRepo) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate dashboard_data_point: %w", err)
	}
	return nil
}

func (r *dashboardRepo) Create(ctx context.Context, point *domain.DashboardDataPoint) error {
	err := r.pool.QueryRow(ctx, insertQuery,
		point.Timestamp, point.AvgTextImportance, point.AvgTypingImportance,
		point.AvgVoiceImportance, point.UpdateCount,
	).Scan(&point.ID)
	if err != nil {
		return fmt.Errorf("create dashboard data point: %w", err)
	}
	return nil
}

func (r *dashboardRepo) CreateBatch(ctx context.Context, points []*domain.DashboardDataPoint) error {
	if len(points) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, p := range points {
		batch.Queue(insertQuery,
			p.Timestamp, p.AvgTextImportance, p.AvgTypingImportance,
			p.AvgVoiceImportance, p.UpdateCount,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for _, p := range points {
		if err := results.QueryRow().Scan(&p.ID); err != nil {
			results.Close()
			return fmt.Errorf("create dashboard data point batch: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

func (r *dashboardRepo) List(ctx context.Context) ([]*domain.DashboardDataPoint, error) {
	query := `SELECT ` + selectColumns + ` FROM dashboard_data_point ORDER BY timestamp ASC, id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list dashboard data points: %w", err)
	}
	defer rows.Close()

	points := []*domain.DashboardDataPoint{}
	for rows.Next() {
		p, err := r.scanPoint(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dashboard data point row: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dashboard data point rows: %w", err)
	}

	return points, nil
}

// Latest returns the most advanced aggregate. Ordering by update count
// rather than timestamp survives wall-clock steps.
func (r *dashboardRepo) Latest(ctx context.Context) (*domain.DashboardDataPoint, error) {
	query := `SELECT ` + selectColumns + ` FROM dashboard_data_point ORDER BY update_count DESC, id DESC LIMIT 1`

	p, err := r.scanPoint(r.pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataPointNotFound
		}
		return nil, fmt.Errorf("get latest dashboard data point: %w", err)
	}
	return p, nil
}

func (r *dashboardRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM dashboard_data_point`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count dashboard data points: %w", err)
	}
	return n, nil
}

func (r *dashboardRepo) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

func (r *dashboardRepo) Close() {
	r.pool.Close()
}

func (r *dashboardRepo) scanPoint(row pgx.Row) (*domain.DashboardDataPoint, error) {
	p := &domain.DashboardDataPoint{}
	err := row.Scan(
		&p.ID, &p.Timestamp,
		&p.AvgTextImportance, &p.AvgTypingImportance, &p.AvgVoiceImportance,
		&p.UpdateCount,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}
