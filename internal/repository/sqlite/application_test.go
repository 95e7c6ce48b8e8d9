package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/mjovanc/jobboard/internal/apperror"
	"github.com/mjovanc/jobboard/internal/model"
	"github.com/mjovanc/jobboard/internal/repository"
)

func createTestApplication(t *testing.T, r *ApplicationDB, jobSeekerID, jobID int64) *model.Application {
	t.Helper()
	cover := "I am very excited about this opportunity."
	app := &model.Application{
		JobSeekerID: jobSeekerID,
		JobID:       jobID,
		CoverLetter: &cover,
		Status:      model.StatusPending,
	}
	if err := r.Create(context.Background(), app); err != nil {
		t.Fatalf("failed to create test application: %v", err)
	}
	return app
}

func TestApplicationCreateThenGetRoundTrip(t *testing.T) {
	db := newTestDB(t)
	apps := db.Applications()
	created := createTestApplication(t, apps, 1, 1)

	if created.ID == 0 {
		t.Error("Create() did not assign app.ID")
	}
	if created.AppliedAt.IsZero() {
		t.Error("Create() did not set applied_at")
	}

	found, err := apps.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.JobSeekerID != 1 || found.JobID != 1 || found.Status != model.StatusPending {
		t.Errorf("GetByID() = %+v, want %+v", found, created)
	}
	if found.CoverLetter == nil || *found.CoverLetter != *created.CoverLetter {
		t.Errorf("CoverLetter = %v, want the created value", found.CoverLetter)
	}
	if found.Resume != nil {
		t.Errorf("Resume = %v, want nil (stored NULL)", *found.Resume)
	}
	if !found.AppliedAt.Equal(created.AppliedAt) {
		t.Errorf("AppliedAt = %v, want %v", found.AppliedAt, created.AppliedAt)
	}
}

func TestApplicationUpdateMutableFieldsOnly(t *testing.T) {
	db := newTestDB(t)
	apps := db.Applications()
	created := createTestApplication(t, apps, 1, 1)
	appliedAt := created.AppliedAt

	resume := "https://example.com/updated_resume.pdf"
	created.Resume = &resume
	created.Status = model.StatusReviewed
	if err := apps.Update(context.Background(), created); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, err := apps.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.Status != model.StatusReviewed {
		t.Errorf("Status = %v, want reviewed", found.Status)
	}
	if found.Resume == nil || *found.Resume != resume {
		t.Errorf("Resume = %v, want %q", found.Resume, resume)
	}
	// applied_at is immutable; update must not touch it.
	if !found.AppliedAt.Equal(appliedAt) {
		t.Errorf("AppliedAt = %v, want unchanged %v", found.AppliedAt, appliedAt)
	}
}

func TestApplicationUpdateNotFound(t *testing.T) {
	db := newTestDB(t)
	apps := db.Applications()

	ghost := &model.Application{ID: 777, JobSeekerID: 1, JobID: 1, Status: model.StatusPending}
	if err := apps.Update(context.Background(), ghost); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestApplicationDeleteIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	apps := db.Applications()
	created := createTestApplication(t, apps, 1, 1)

	if err := apps.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := apps.GetByID(context.Background(), created.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}
	if err := apps.Delete(context.Background(), created.ID); err != nil {
		t.Errorf("second Delete() error = %v, want nil", err)
	}
}

// Deleting a user does not cascade: applications referencing them survive
// as orphans. Chosen behavior, matching the store's lack of cascade rules.
func TestUserDeleteLeavesApplicationsOrphaned(t *testing.T) {
	db := newTestDB(t)
	users := db.Users()
	apps := db.Applications()

	seeker := createTestUser(t, users, "orphan@example.com", model.RoleJobSeeker)
	app := createTestApplication(t, apps, seeker.ID, 1)

	if err := users.Delete(context.Background(), seeker.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	found, err := apps.GetByID(context.Background(), app.ID)
	if err != nil {
		t.Fatalf("GetByID() after user delete error = %v", err)
	}
	if found.JobSeekerID != seeker.ID {
		t.Errorf("JobSeekerID = %d, want %d (orphaned reference kept)", found.JobSeekerID, seeker.ID)
	}
}

func TestApplicationListAndCount(t *testing.T) {
	db := newTestDB(t)
	apps := db.Applications()
	for i := int64(1); i <= 5; i++ {
		createTestApplication(t, apps, i, i)
	}

	count, err := apps.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 5 {
		t.Errorf("Count() = %d, want 5", count)
	}

	listed, err := apps.List(context.Background(), repository.ListOptions{Limit: 2, Offset: 4})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(listed) != 1 {
		t.Errorf("List(limit=2, offset=4) returned %d rows, want 1", len(listed))
	}
}
