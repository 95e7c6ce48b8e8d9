package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mjovanc/jobboard/internal/apperror"
	"github.com/mjovanc/jobboard/internal/model"
	"github.com/mjovanc/jobboard/internal/repository"
)

// JobService handles business logic for job postings.
type JobService struct {
	repo   repository.JobRepository
	logger *slog.Logger
}

func NewJobService(repo repository.JobRepository, logger *slog.Logger) *JobService {
	return &JobService{repo: repo, logger: logger}
}

// List returns one page of jobs together with the table-wide count.
func (s *JobService) List(ctx context.Context, limit, offset int64) (*model.Page[model.Job], error) {
	limit, offset = clampList(limit, offset)

	count, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Error("failed to count jobs", slog.String("error", err.Error()))
		return nil, apperror.Internal("error counting jobs", err)
	}

	jobs, err := s.repo.List(ctx, repository.ListOptions{Limit: limit, Offset: offset})
	if err != nil {
		s.logger.Error("failed to list jobs", slog.String("error", err.Error()))
		return nil, apperror.Internal("error listing jobs", err)
	}

	return &model.Page[model.Job]{
		Page:  pageNumber(limit, offset),
		Count: count,
		Items: jobs,
	}, nil
}

func (s *JobService) GetByID(ctx context.Context, id int64) (*model.Job, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the request and persists a new posting. The repository
// sets posted_at and updated_at.
func (s *JobService) Create(ctx context.Context, req model.JobCreateRequest) (*model.Job, error) {
	req.Title = strings.TrimSpace(req.Title)

	if req.EmployerID <= 0 {
		return nil, apperror.ValidationFailed("employer_id", "employer_id is required")
	}
	if req.Title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if req.Description == "" {
		return nil, apperror.ValidationFailed("description", "description is required")
	}
	if req.Location == "" {
		return nil, apperror.ValidationFailed("location", "location is required")
	}
	if req.EmploymentType == nil {
		return nil, apperror.ValidationFailed("employment_type", "employment_type is required")
	}

	job := &model.Job{
		EmployerID:     req.EmployerID,
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		Salary:         req.Salary,
		EmploymentType: *req.EmploymentType,
	}
	if err := s.repo.Create(ctx, job); err != nil {
		s.logger.Error("failed to create job",
			slog.Int64("employer_id", req.EmployerID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("job created",
		slog.Int64("id", job.ID),
		slog.String("title", job.Title),
	)

	return job, nil
}

// Update applies a partial update. An empty request still refreshes
// updated_at; the repository bumps it on every call. posted_at is immutable.
func (s *JobService) Update(ctx context.Context, id int64, req model.JobUpdateRequest) (*model.Job, error) {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.Salary != nil {
		job.Salary = req.Salary
	}
	if req.EmploymentType != nil {
		job.EmploymentType = *req.EmploymentType
	}

	if err := s.repo.Update(ctx, job); err != nil {
		s.logger.Error("failed to update job",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("job updated", slog.Int64("id", id))
	return job, nil
}

// Delete removes the job unconditionally; applications referencing it are
// left in place.
func (s *JobService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete job",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return err
	}

	s.logger.Info("job deleted", slog.Int64("id", id))
	return nil
}
