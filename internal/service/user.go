// Package service contains the business logic layer: validation, partial
// update merging, and pagination, kept free of HTTP and SQL concerns.
//
// The dependency chain is assembled in internal/server:
//
//	sqlite.DB → repository interface → service → handler
//
// Services receive repository interfaces, so tests swap in in-memory mocks.
package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mjovanc/jobboard/internal/apperror"
	"github.com/mjovanc/jobboard/internal/model"
	"github.com/mjovanc/jobboard/internal/repository"
)

// UserService handles business logic for user accounts.
type UserService struct {
	repo   repository.UserRepository
	logger *slog.Logger
}

func NewUserService(repo repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// List returns one page of users together with the table-wide count.
// Count and List are independent reads, not a transactional snapshot.
func (s *UserService) List(ctx context.Context, limit, offset int64) (*model.Page[model.User], error) {
	limit, offset = clampList(limit, offset)

	count, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Error("failed to count users", slog.String("error", err.Error()))
		return nil, apperror.Internal("error counting users", err)
	}

	users, err := s.repo.List(ctx, repository.ListOptions{Limit: limit, Offset: offset})
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, apperror.Internal("error listing users", err)
	}

	return &model.Page[model.User]{
		Page:  pageNumber(limit, offset),
		Count: count,
		Items: users,
	}, nil
}

// GetByID returns the user or apperror.ErrNotFound. Storage failures keep
// their own error kind and are never reported as not-found.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the request and persists a new user. Role defaults to
// job_seeker when omitted. The returned record carries the server-assigned
// id and timestamps.
func (s *UserService) Create(ctx context.Context, req model.UserCreateRequest) (*model.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if req.Name == "" {
		return nil, apperror.ValidationFailed("name", "name is required")
	}
	if req.Email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if req.Password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	role := model.RoleJobSeeker
	if req.Role != nil {
		role = *req.Role
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user",
			slog.String("email", req.Email),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("user created",
		slog.Int64("id", user.ID),
		slog.String("role", user.Role.String()),
	)

	return user, nil
}

// Update applies a partial update: only fields present in the request
// overwrite the stored record. updated_at is refreshed by the repository.
func (s *UserService) Update(ctx context.Context, id int64, req model.UserUpdateRequest) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		user.Password = *req.Password
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.repo.Update(ctx, user); err != nil {
		s.logger.Error("failed to update user",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("user updated", slog.Int64("id", id))
	return user, nil
}

// Delete removes the user unconditionally; deleting an absent id is not an
// error. Jobs and applications referencing the user are left in place.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete user",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return err
	}

	s.logger.Info("user deleted", slog.Int64("id", id))
	return nil
}
