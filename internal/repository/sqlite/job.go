package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mjovanc/jobboard/internal/apperror"
	"github.com/mjovanc/jobboard/internal/model"
	"github.com/mjovanc/jobboard/internal/repository"
)

// JobDB implements repository.JobRepository over the shared pool.
type JobDB struct {
	conn *sql.DB
}

var _ repository.JobRepository = (*JobDB)(nil)

// Create inserts a new job posting. posted_at and updated_at are both set
// to now; the id is assigned by the store and written back.
func (r *JobDB) Create(ctx context.Context, job *model.Job) error {
	ts := now()
	job.PostedAt = ts
	job.UpdatedAt = ts

	result, err := r.conn.ExecContext(ctx,
		`INSERT INTO jobs (employer_id, title, description, location, salary, employment_type, posted_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		job.EmployerID,
		job.Title,
		job.Description,
		job.Location,
		nullString(job.Salary),
		job.EmploymentType.String(),
		encodeTime(job.PostedAt),
		encodeTime(job.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating job: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new job id: %w", err)
	}
	job.ID = id

	return nil
}

func (r *JobDB) GetByID(ctx context.Context, id int64) (*model.Job, error) {
	row := r.conn.QueryRowContext(ctx,
		`SELECT id, employer_id, title, description, location, salary, employment_type, posted_at, updated_at
		 FROM jobs WHERE id = ?`,
		id,
	)

	job, err := scanJob(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("job", id)
		}
		return nil, fmt.Errorf("sqlite: getting job %d: %w", id, err)
	}

	return job, nil
}

func (r *JobDB) List(ctx context.Context, opts repository.ListOptions) ([]model.Job, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, employer_id, title, description, location, salary, employment_type, posted_at, updated_at
		 FROM jobs LIMIT ? OFFSET ?`,
		opts.Limit,
		opts.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]model.Job, 0, opts.Limit)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning job row: %w", err)
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating jobs: %w", err)
	}

	return jobs, nil
}

func (r *JobDB) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting jobs: %w", err)
	}
	return count, nil
}

// Update persists an already-merged job. updated_at is refreshed on every
// call, even one that changed no fields; posted_at is never written.
func (r *JobDB) Update(ctx context.Context, job *model.Job) error {
	job.UpdatedAt = now()

	result, err := r.conn.ExecContext(ctx,
		`UPDATE jobs SET employer_id = ?, title = ?, description = ?, location = ?, salary = ?, employment_type = ?, updated_at = ?
		 WHERE id = ?`,
		job.EmployerID,
		job.Title,
		job.Description,
		job.Location,
		nullString(job.Salary),
		job.EmploymentType.String(),
		encodeTime(job.UpdatedAt),
		job.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating job %d: %w", job.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("job", job.ID)
	}

	return nil
}

// Delete removes a job. Deleting an absent id succeeds; applications that
// reference the job are left in place.
func (r *JobDB) Delete(ctx context.Context, id int64) error {
	if _, err := r.conn.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: deleting job %d: %w", id, err)
	}
	return nil
}

func scanJob(s scanner) (*model.Job, error) {
	var (
		j                   model.Job
		salary              sql.NullString
		employmentType      string
		postedAt, updatedAt string
	)
	if err := s.Scan(&j.ID, &j.EmployerID, &j.Title, &j.Description, &j.Location,
		&salary, &employmentType, &postedAt, &updatedAt); err != nil {
		return nil, err
	}

	j.Salary = fromNullString(salary)

	var err error
	if j.EmploymentType, err = model.ParseEmploymentType(employmentType); err != nil {
		return nil, err
	}
	if j.PostedAt, err = decodeTime(postedAt); err != nil {
		return nil, err
	}
	if j.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return nil, err
	}

	return &j, nil
}
