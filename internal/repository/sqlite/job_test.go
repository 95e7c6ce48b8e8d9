package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mjovanc/jobboard/internal/apperror"
	"github.com/mjovanc/jobboard/internal/model"
	"github.com/mjovanc/jobboard/internal/repository"
)

func createTestJob(t *testing.T, r *JobDB, employerID int64) *model.Job {
	t.Helper()
	salary := "$120,000 - $150,000"
	job := &model.Job{
		EmployerID:     employerID,
		Title:          "Software Engineer",
		Description:    "Responsible for developing and maintaining software applications.",
		Location:       "San Francisco, CA",
		Salary:         &salary,
		EmploymentType: model.FullTime,
	}
	if err := r.Create(context.Background(), job); err != nil {
		t.Fatalf("failed to create test job: %v", err)
	}
	return job
}

func TestJobCreateThenGetRoundTrip(t *testing.T) {
	db := newTestDB(t)
	jobs := db.Jobs()
	created := createTestJob(t, jobs, 1)

	if created.ID == 0 {
		t.Error("Create() did not assign job.ID")
	}
	if created.PostedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("Create() did not set timestamps")
	}

	found, err := jobs.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.Title != created.Title ||
		found.EmployerID != created.EmployerID ||
		found.EmploymentType != model.FullTime ||
		!found.PostedAt.Equal(created.PostedAt) {
		t.Errorf("GetByID() = %+v, want %+v", found, created)
	}
	if found.Salary == nil || *found.Salary != "$120,000 - $150,000" {
		t.Errorf("Salary = %v, want the created value", found.Salary)
	}
}

func TestJobNilSalaryRoundTrip(t *testing.T) {
	db := newTestDB(t)
	jobs := db.Jobs()

	job := &model.Job{
		EmployerID:     1,
		Title:          "Intern",
		Description:    "Unpaid, sadly.",
		Location:       "Remote",
		EmploymentType: model.Contract,
	}
	if err := jobs.Create(context.Background(), job); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := jobs.GetByID(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.Salary != nil {
		t.Errorf("Salary = %v, want nil (stored NULL)", *found.Salary)
	}
}

// An update that changes no fields still refreshes updated_at. posted_at is
// never written by Update.
func TestJobUpdateAlwaysRefreshesUpdatedAt(t *testing.T) {
	db := newTestDB(t)
	jobs := db.Jobs()
	created := createTestJob(t, jobs, 1)

	// Backdate the stored timestamps so the refresh is observable without
	// sleeping across a second boundary.
	past := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := jobs.conn.Exec(
		`UPDATE jobs SET posted_at = ?, updated_at = ? WHERE id = ?`,
		encodeTime(past), encodeTime(past), created.ID,
	); err != nil {
		t.Fatalf("backdating job: %v", err)
	}

	unchanged, err := jobs.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if err := jobs.Update(context.Background(), unchanged); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, err := jobs.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !found.UpdatedAt.After(past) {
		t.Errorf("updated_at = %v, should have been refreshed past %v", found.UpdatedAt, past)
	}
	if !found.PostedAt.Equal(past) {
		t.Errorf("posted_at = %v, want unchanged %v", found.PostedAt, past)
	}
}

func TestJobUpdateFields(t *testing.T) {
	db := newTestDB(t)
	jobs := db.Jobs()
	created := createTestJob(t, jobs, 1)

	created.Title = "Senior Software Engineer"
	created.EmploymentType = model.Contract
	if err := jobs.Update(context.Background(), created); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, err := jobs.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.Title != "Senior Software Engineer" {
		t.Errorf("Title = %q", found.Title)
	}
	if found.EmploymentType != model.Contract {
		t.Errorf("EmploymentType = %v, want contract", found.EmploymentType)
	}
}

func TestJobUpdateNotFound(t *testing.T) {
	db := newTestDB(t)
	jobs := db.Jobs()

	ghost := &model.Job{ID: 4242, Title: "x", Description: "x", Location: "x", EmploymentType: model.FullTime}
	if err := jobs.Update(context.Background(), ghost); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestJobDeleteAndCount(t *testing.T) {
	db := newTestDB(t)
	jobs := db.Jobs()
	first := createTestJob(t, jobs, 1)
	createTestJob(t, jobs, 2)

	count, err := jobs.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 2 {
		t.Errorf("Count() = %d, want 2", count)
	}

	if err := jobs.Delete(context.Background(), first.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := jobs.Delete(context.Background(), first.ID); err != nil {
		t.Errorf("second Delete() error = %v, want nil", err)
	}

	listed, err := jobs.List(context.Background(), repository.ListOptions{Limit: 10, Offset: 0})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(listed) != 1 {
		t.Errorf("List() returned %d jobs, want 1", len(listed))
	}
}
