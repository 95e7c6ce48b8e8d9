package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mjovanc/jobboard/internal/apperror"
	"github.com/mjovanc/jobboard/internal/model"
	"github.com/mjovanc/jobboard/internal/repository"
)

type mockApplicationRepo struct {
	apps   map[int64]*model.Application
	nextID int64
	err    error
}

func newMockApplicationRepo() *mockApplicationRepo {
	return &mockApplicationRepo{apps: make(map[int64]*model.Application)}
}

func (m *mockApplicationRepo) Create(_ context.Context, app *model.Application) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	app.ID = m.nextID
	app.AppliedAt = time.Now().UTC().Truncate(time.Second)
	stored := *app
	m.apps[app.ID] = &stored
	return nil
}

func (m *mockApplicationRepo) GetByID(_ context.Context, id int64) (*model.Application, error) {
	if m.err != nil {
		return nil, m.err
	}
	app, ok := m.apps[id]
	if !ok {
		return nil, apperror.NotFound("application", id)
	}
	result := *app
	return &result, nil
}

func (m *mockApplicationRepo) List(_ context.Context, opts repository.ListOptions) ([]model.Application, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]model.Application, 0, len(m.apps))
	for _, a := range m.apps {
		result = append(result, *a)
	}
	if opts.Offset >= int64(len(result)) {
		return []model.Application{}, nil
	}
	result = result[opts.Offset:]
	if opts.Limit < int64(len(result)) {
		result = result[:opts.Limit]
	}
	return result, nil
}

func (m *mockApplicationRepo) Count(_ context.Context) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.apps)), nil
}

func (m *mockApplicationRepo) Update(_ context.Context, app *model.Application) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.apps[app.ID]; !ok {
		return apperror.NotFound("application", app.ID)
	}
	stored := *app
	m.apps[app.ID] = &stored
	return nil
}

func (m *mockApplicationRepo) Delete(_ context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	delete(m.apps, id)
	return nil
}

func createApplication(t *testing.T, s *ApplicationService) *model.Application {
	t.Helper()
	app, err := s.Create(context.Background(), model.ApplicationCreateRequest{
		JobSeekerID: 1,
		JobID:       2,
		CoverLetter: strp("I am a great fit."),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return app
}

func TestApplicationServiceCreateDefaultsStatus(t *testing.T) {
	s := NewApplicationService(newMockApplicationRepo(), testLogger())

	app := createApplication(t, s)
	if app.Status != model.StatusPending {
		t.Errorf("Status = %v, want pending default", app.Status)
	}
	if app.Resume != nil {
		t.Error("Resume should stay nil when omitted")
	}
	if app.AppliedAt.IsZero() {
		t.Error("Create() did not set applied_at")
	}
}

func TestApplicationServiceCreateExplicitStatus(t *testing.T) {
	s := NewApplicationService(newMockApplicationRepo(), testLogger())

	status := model.StatusReviewed
	app, err := s.Create(context.Background(), model.ApplicationCreateRequest{
		JobSeekerID: 1,
		JobID:       2,
		Status:      &status,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if app.Status != model.StatusReviewed {
		t.Errorf("Status = %v, want reviewed", app.Status)
	}
}

func TestApplicationServiceCreateValidation(t *testing.T) {
	s := NewApplicationService(newMockApplicationRepo(), testLogger())

	tests := []struct {
		name string
		req  model.ApplicationCreateRequest
	}{
		{"missing job_seeker_id", model.ApplicationCreateRequest{JobID: 2}},
		{"missing job_id", model.ApplicationCreateRequest{JobSeekerID: 1}},
		{"negative ids", model.ApplicationCreateRequest{JobSeekerID: -1, JobID: -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(context.Background(), tt.req)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("Create() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestApplicationServiceUpdateMutableFieldsOnly(t *testing.T) {
	s := NewApplicationService(newMockApplicationRepo(), testLogger())
	created := createApplication(t, s)

	status := model.StatusAccepted
	updated, err := s.Update(context.Background(), created.ID, model.ApplicationUpdateRequest{
		Status: &status,
		Resume: strp("resume-v2.pdf"),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Status != model.StatusAccepted {
		t.Errorf("Status = %v, want accepted", updated.Status)
	}
	if updated.Resume == nil || *updated.Resume != "resume-v2.pdf" {
		t.Error("Resume was not updated")
	}
	if updated.CoverLetter == nil || *updated.CoverLetter != *created.CoverLetter {
		t.Error("Update() changed cover_letter though the request omitted it")
	}
	if updated.JobSeekerID != created.JobSeekerID || updated.JobID != created.JobID {
		t.Error("job_seeker_id and job_id must never change")
	}
	if !updated.AppliedAt.Equal(created.AppliedAt) {
		t.Error("applied_at must never change on update")
	}
}

func TestApplicationServiceUpdateNotFound(t *testing.T) {
	s := NewApplicationService(newMockApplicationRepo(), testLogger())

	status := model.StatusRejected
	_, err := s.Update(context.Background(), 404, model.ApplicationUpdateRequest{Status: &status})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestApplicationServiceListStorageFailure(t *testing.T) {
	repo := newMockApplicationRepo()
	s := NewApplicationService(repo, testLogger())
	repo.err = errors.New("database is locked")

	_, err := s.List(context.Background(), 10, 0)
	if !errors.Is(err, apperror.ErrInternal) {
		t.Errorf("List() error = %v, want ErrInternal", err)
	}
}
