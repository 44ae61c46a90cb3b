package jobrunrepo

import (
	"context"
	"errors"
	"time"

	"github.com/GlebRadaev/gamehost/internal/domain"
	"github.com/GlebRadaev/gamehost/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

const runColumns = `id, job_type, status, started_at, ended_at, items_processed, items_total, items_failed, error_message`

func scanRun(row pgx.Row) (*domain.JobRun, error) {
	var run domain.JobRun
	err := row.Scan(
		&run.ID, &run.JobType, &run.Status, &run.StartedAt, &run.EndedAt,
		&run.ItemsProcessed, &run.ItemsTotal, &run.ItemsFailed, &run.ErrorMessage,
	)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *Repository) queryRuns(ctx context.Context, query string, args ...any) ([]domain.JobRun, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []domain.JobRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

func (r *Repository) Create(ctx context.Context, run *domain.JobRun) error {
	query := `
        INSERT INTO job_runs (id, job_type, status, started_at, items_processed, items_failed)
        VALUES ($1, $2, $3, $4, 0, 0)
    `
	_, err := r.db.Exec(ctx, query, run.ID, run.JobType, run.Status, run.StartedAt)
	if err != nil {
		zap.L().Error("can't save job run", zap.String("job", run.JobType), zap.Error(err))
		return err
	}
	return nil
}

// UpdateProgress only touches rows still RUNNING so a late write cannot reopen a closed run.
func (r *Repository) UpdateProgress(ctx context.Context, run *domain.JobRun) error {
	query := `
        UPDATE job_runs
        SET items_processed = $2, items_total = $3, items_failed = $4
        WHERE id = $1 AND status = 'RUNNING'
    `
	_, err := r.db.Exec(ctx, query, run.ID, run.ItemsProcessed, run.ItemsTotal, run.ItemsFailed)
	if err != nil {
		zap.L().Error("can't update job run progress", zap.String("run_id", run.ID), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) Finish(ctx context.Context, run *domain.JobRun) error {
	query := `
        UPDATE job_runs
        SET status = $2, ended_at = $3, items_processed = $4, items_total = $5, items_failed = $6, error_message = $7
        WHERE id = $1 AND status = 'RUNNING'
    `
	_, err := r.db.Exec(ctx, query,
		run.ID, run.Status, run.EndedAt, run.ItemsProcessed, run.ItemsTotal, run.ItemsFailed, run.ErrorMessage,
	)
	if err != nil {
		zap.L().Error("can't finish job run", zap.String("run_id", run.ID), zap.Error(err))
		return err
	}
	return nil
}

// Delete drops a run; its log entries go with it. Used for runs that turned out to be skipped.
func (r *Repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM job_runs WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		zap.L().Error("can't delete job run", zap.String("run_id", id), zap.Error(err))
		return err
	}
	return nil
}

// CloseStale fails runs left RUNNING by a process that died before closing them.
func (r *Repository) CloseStale(ctx context.Context, now time.Time, message string) (int, error) {
	query := `
        UPDATE job_runs
        SET status = 'FAILED', ended_at = $1, error_message = $2
        WHERE status = 'RUNNING'
    `
	tag, err := r.db.Exec(ctx, query, now, message)
	if err != nil {
		zap.L().Error("can't close stale job runs", zap.Error(err))
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// Latest returns the most recent run of every job type.
func (r *Repository) Latest(ctx context.Context) ([]domain.JobRun, error) {
	query := `
        SELECT DISTINCT ON (job_type) ` + runColumns + `
        FROM job_runs
        ORDER BY job_type, started_at DESC
    `
	runs, err := r.queryRuns(ctx, query)
	if err != nil {
		zap.L().Error("can't get latest job runs", zap.Error(err))
		return nil, err
	}
	return runs, nil
}

func (r *Repository) ListByType(ctx context.Context, jobType string, limit int) ([]domain.JobRun, error) {
	query := `
        SELECT ` + runColumns + `
        FROM job_runs
        WHERE job_type = $1
        ORDER BY started_at DESC
        LIMIT $2
    `
	runs, err := r.queryRuns(ctx, query, jobType, limit)
	if err != nil {
		zap.L().Error("can't get job runs", zap.String("job", jobType), zap.Error(err))
		return nil, err
	}
	return runs, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*domain.JobRun, error) {
	run, err := scanRun(r.db.QueryRow(ctx, `SELECT `+runColumns+` FROM job_runs WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find job run", zap.String("run_id", id), zap.Error(err))
		return nil, err
	}
	return run, nil
}

func (r *Repository) AddLog(ctx context.Context, entry *domain.JobRunLog) error {
	query := `
        INSERT INTO job_run_logs (run_id, level, message, created_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query, entry.RunID, entry.Level, entry.Message, entry.CreatedAt).Scan(&entry.ID)
	if err != nil {
		zap.L().Error("can't save job run log", zap.String("run_id", entry.RunID), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) Logs(ctx context.Context, runID string) ([]domain.JobRunLog, error) {
	query := `
        SELECT id, run_id, level, message, created_at
        FROM job_run_logs
        WHERE run_id = $1
        ORDER BY id ASC
    `
	rows, err := r.db.Query(ctx, query, runID)
	if err != nil {
		zap.L().Error("can't get job run logs", zap.String("run_id", runID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var logs []domain.JobRunLog
	for rows.Next() {
		var entry domain.JobRunLog
		if err := rows.Scan(&entry.ID, &entry.RunID, &entry.Level, &entry.Message, &entry.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}
