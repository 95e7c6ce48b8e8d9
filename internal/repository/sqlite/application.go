package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mjovanc/jobboard/internal/apperror"
	"github.com/mjovanc/jobboard/internal/model"
	"github.com/mjovanc/jobboard/internal/repository"
)

// ApplicationDB implements repository.ApplicationRepository over the shared pool.
type ApplicationDB struct {
	conn *sql.DB
}

var _ repository.ApplicationRepository = (*ApplicationDB)(nil)

// Create inserts a new application. applied_at is set to now and never
// changes afterwards; the id is assigned by the store and written back.
func (r *ApplicationDB) Create(ctx context.Context, app *model.Application) error {
	app.AppliedAt = now()

	result, err := r.conn.ExecContext(ctx,
		`INSERT INTO applications (job_seeker_id, job_id, cover_letter, resume, status, applied_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		app.JobSeekerID,
		app.JobID,
		nullString(app.CoverLetter),
		nullString(app.Resume),
		app.Status.String(),
		encodeTime(app.AppliedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating application: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new application id: %w", err)
	}
	app.ID = id

	return nil
}

func (r *ApplicationDB) GetByID(ctx context.Context, id int64) (*model.Application, error) {
	row := r.conn.QueryRowContext(ctx,
		`SELECT id, job_seeker_id, job_id, cover_letter, resume, status, applied_at
		 FROM applications WHERE id = ?`,
		id,
	)

	app, err := scanApplication(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("application", id)
		}
		return nil, fmt.Errorf("sqlite: getting application %d: %w", id, err)
	}

	return app, nil
}

func (r *ApplicationDB) List(ctx context.Context, opts repository.ListOptions) ([]model.Application, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, job_seeker_id, job_id, cover_letter, resume, status, applied_at
		 FROM applications LIMIT ? OFFSET ?`,
		opts.Limit,
		opts.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing applications: %w", err)
	}
	defer rows.Close()

	apps := make([]model.Application, 0, opts.Limit)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning application row: %w", err)
		}
		apps = append(apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating applications: %w", err)
	}

	return apps, nil
}

func (r *ApplicationDB) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting applications: %w", err)
	}
	return count, nil
}

// Update persists the mutable columns of an already-merged application.
// job_seeker_id, job_id and applied_at are immutable.
func (r *ApplicationDB) Update(ctx context.Context, app *model.Application) error {
	result, err := r.conn.ExecContext(ctx,
		`UPDATE applications SET cover_letter = ?, resume = ?, status = ?
		 WHERE id = ?`,
		nullString(app.CoverLetter),
		nullString(app.Resume),
		app.Status.String(),
		app.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating application %d: %w", app.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("application", app.ID)
	}

	return nil
}

// Delete removes an application. Deleting an absent id succeeds.
func (r *ApplicationDB) Delete(ctx context.Context, id int64) error {
	if _, err := r.conn.ExecContext(ctx, `DELETE FROM applications WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: deleting application %d: %w", id, err)
	}
	return nil
}

func scanApplication(s scanner) (*model.Application, error) {
	var (
		a                   model.Application
		coverLetter, resume sql.NullString
		status              string
		appliedAt           string
	)
	if err := s.Scan(&a.ID, &a.JobSeekerID, &a.JobID, &coverLetter, &resume, &status, &appliedAt); err != nil {
		return nil, err
	}

	a.CoverLetter = fromNullString(coverLetter)
	a.Resume = fromNullString(resume)

	var err error
	if a.Status, err = model.ParseApplicationStatus(status); err != nil {
		return nil, err
	}
	if a.AppliedAt, err = decodeTime(appliedAt); err != nil {
		return nil, err
	}

	return &a, nil
}
