package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"hush-backend/internal/core/domain"
	output "hush-backend/internal/core/ports/output"
)

const schema = `
	CREATE TABLE IF NOT EXISTS dashboard_data_point (
		id                    INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp             TEXT    NOT NULL,
		avg_text_importance   REAL    NOT NULL,
		avg_typing_importance REAL    NOT NULL,
		avg_voice_importance  REAL    NOT NULL,
		update_count          INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS ix_dashboard_data_point_timestamp
		ON dashboard_data_point (timestamp);
`

const selectColumns = `id, timestamp, avg_text_importance, avg_typing_importance, avg_voice_importance, update_count`

type dashboardRepo struct {
	db *sql.DB
}

// NewDashboardRepository opens (or creates) the SQLite database at path.
// Use ":memory:" for a throwaway store.
func NewDashboardRepository(path string) (output.DashboardRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps writes serialized and lets ":memory:"
	// databases survive across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode = WAL; PRAGMA synchronous = NORMAL;`); err != nil {
		log.WithError(err).Warn("failed to set sqlite pragmas")
	}
	return &dashboardRepo{db: db}, nil
}

func (r *dashboardRepo) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate dashboard_data_point: %w", err)
	}
	return nil
}

func (r *dashboardRepo) Create(ctx context.Context, point *domain.DashboardDataPoint) error {
	id, err := insert(ctx, r.db, point)
	if err != nil {
		return fmt.Errorf("create dashboard data point: %w", err)
	}
	point.ID = id
	return nil
}

func (r *dashboardRepo) CreateBatch(ctx context.Context, points []*domain.DashboardDataPoint) error {
	if len(points) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	defer tx.Rollback()

	for _, p := range points {
		id, err := insert(ctx, tx, p)
		if err != nil {
			return fmt.Errorf("create dashboard data point batch: %w", err)
		}
		p.ID = id
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

func (r *dashboardRepo) List(ctx context.Context) ([]*domain.DashboardDataPoint, error) {
	query := `SELECT ` + selectColumns + ` FROM dashboard_data_point ORDER BY timestamp ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list dashboard data points: %w", err)
	}
	defer rows.Close()

	points := []*domain.DashboardDataPoint{}
	for rows.Next() {
		p, err := scanPoint(rows)
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

	p, err := scanPoint(r.db.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDataPointNotFound
		}
		return nil, fmt.Errorf("get latest dashboard data point: %w", err)
	}
	return p, nil
}

func (r *dashboardRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM dashboard_data_point`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count dashboard data points: %w", err)
	}
	return n, nil
}

func (r *dashboardRepo) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

func (r *dashboardRepo) Close() {
	if err := r.db.Close(); err != nil {
		log.WithError(err).Warn("close sqlite")
	}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insert(ctx context.Context, db execer, p *domain.DashboardDataPoint) (int64, error) {
	query := `
		INSERT INTO dashboard_data_point
			(timestamp, avg_text_importance, avg_typing_importance, avg_voice_importance, update_count)
		VALUES (?, ?, ?, ?, ?)
	`
	res, err := db.ExecContext(ctx, query,
		p.Timestamp, p.AvgTextImportance, p.AvgTypingImportance, p.AvgVoiceImportance, p.UpdateCount,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPoint(row scanner) (*domain.DashboardDataPoint, error) {
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
