// Package repository declares the storage interfaces the service layer
// programs against. The sqlite subpackage implements them.
package repository

import (
	"context"

	"github.com/mjovanc/jobboard/internal/model"
)

// ListOptions carries pagination bounds. Callers are expected to have
// clamped Limit to a positive value and Offset to a non-negative one.
type ListOptions struct {
	Limit  int64
	Offset int64
}

// UserRepository persists user accounts.
//
// GetByID returns apperror.ErrNotFound (wrapped) when no row matches; any
// other error is a storage failure. Delete is idempotent: deleting an
// absent id succeeds. Update persists the already-merged record and always
// refreshes updated_at.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context, opts ListOptions) ([]model.User, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id int64) error
}

// JobRepository persists job postings. Same contract as UserRepository;
// posted_at is never written by Update.
type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	GetByID(ctx context.Context, id int64) (*model.Job, error)
	List(ctx context.Context, opts ListOptions) ([]model.Job, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, job *model.Job) error
	Delete(ctx context.Context, id int64) error
}

// ApplicationRepository persists applications. Update writes only the
// mutable columns (cover_letter, resume, status); applied_at is immutable.
type ApplicationRepository interface {
	Create(ctx context.Context, app *model.Application) error
	GetByID(ctx context.Context, id int64) (*model.Application, error)
	List(ctx context.Context, opts ListOptions) ([]model.Application, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, app *model.Application) error
	Delete(ctx context.Context, id int64) error
}
