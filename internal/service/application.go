package service

import (
	"context"
	"log/slog"

	"github.com/mjovanc/jobboard/internal/apperror"
	"github.com/mjovanc/jobboard/internal/model"
	"github.com/mjovanc/jobboard/internal/repository"
)

// ApplicationService handles business logic for job applications.
type ApplicationService struct {
	repo   repository.ApplicationRepository
	logger *slog.Logger
}

func NewApplicationService(repo repository.ApplicationRepository, logger *slog.Logger) *ApplicationService {
	return &ApplicationService{repo: repo, logger: logger}
}

// List returns one page of applications together with the table-wide count.
func (s *ApplicationService) List(ctx context.Context, limit, offset int64) (*model.Page[model.Application], error) {
	limit, offset = clampList(limit, offset)

	count, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Error("failed to count applications", slog.String("error", err.Error()))
		return nil, apperror.Internal("error counting applications", err)
	}

	apps, err := s.repo.List(ctx, repository.ListOptions{Limit: limit, Offset: offset})
	if err != nil {
		s.logger.Error("failed to list applications", slog.String("error", err.Error()))
		return nil, apperror.Internal("error listing applications", err)
	}

	return &model.Page[model.Application]{
		Page:  pageNumber(limit, offset),
		Count: count,
		Items: apps,
	}, nil
}

func (s *ApplicationService) GetByID(ctx context.Context, id int64) (*model.Application, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the request and persists a new application. Status
// defaults to pending; the repository sets applied_at.
func (s *ApplicationService) Create(ctx context.Context, req model.ApplicationCreateRequest) (*model.Application, error) {
	if req.JobSeekerID <= 0 {
		return nil, apperror.ValidationFailed("job_seeker_id", "job_seeker_id is required")
	}
	if req.JobID <= 0 {
		return nil, apperror.ValidationFailed("job_id", "job_id is required")
	}

	status := model.StatusPending
	if req.Status != nil {
		status = *req.Status
	}

	app := &model.Application{
		JobSeekerID: req.JobSeekerID,
		JobID:       req.JobID,
		CoverLetter: req.CoverLetter,
		Resume:      req.Resume,
		Status:      status,
	}
	if err := s.repo.Create(ctx, app); err != nil {
		s.logger.Error("failed to create application",
			slog.Int64("job_id", req.JobID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("application created",
		slog.Int64("id", app.ID),
		slog.Int64("job_id", app.JobID),
	)

	return app, nil
}

// Update applies a partial update over the mutable fields only: cover
// letter, resume and status. applied_at and the two references never change.
func (s *ApplicationService) Update(ctx context.Context, id int64, req model.ApplicationUpdateRequest) (*model.Application, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CoverLetter != nil {
		app.CoverLetter = req.CoverLetter
	}
	if req.Resume != nil {
		app.Resume = req.Resume
	}
	if req.Status != nil {
		app.Status = *req.Status
	}

	if err := s.repo.Update(ctx, app); err != nil {
		s.logger.Error("failed to update application",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("application updated", slog.Int64("id", id))
	return app, nil
}

// Delete removes the application unconditionally.
func (s *ApplicationService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete application",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return err
	}

	s.logger.Info("application deleted", slog.Int64("id", id))
	return nil
}
