package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// ApplicationStatus tracks where an application sits in the review pipeline.
type ApplicationStatus int

const (
	StatusPending ApplicationStatus = iota
	StatusReviewed
	StatusAccepted
	StatusRejected
)

var applicationStatusNames = map[ApplicationStatus]string{
	StatusPending:  "pending",
	StatusReviewed: "reviewed",
	StatusAccepted: "accepted",
	StatusRejected: "rejected",
}

func (s ApplicationStatus) String() string {
	if name, ok := applicationStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("ApplicationStatus(%d)", int(s))
}

// ParseApplicationStatus decodes a wire/storage string, case-sensitively.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	for status, name := range applicationStatusNames {
		if name == s {
			return status, nil
		}
	}
	return 0, &InvalidEnumError{Kind: "application status", Value: s}
}

func (s ApplicationStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ApplicationStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	status, err := ParseApplicationStatus(str)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// Application is a job seeker's submission for a posting.
//
// AppliedAt is set once at creation; updates never touch it.
type Application struct {
	ID          int64             `json:"id"`
	JobSeekerID int64             `json:"job_seeker_id"`
	JobID       int64             `json:"job_id"`
	CoverLetter *string           `json:"cover_letter"`
	Resume      *string           `json:"resume"` // URL to the resume file
	Status      ApplicationStatus `json:"status"`
	AppliedAt   time.Time         `json:"applied_at"`
}

// ApplicationCreateRequest is the POST /v1/applications body. Status is
// optional and defaults to pending.
type ApplicationCreateRequest struct {
	JobSeekerID int64              `json:"job_seeker_id"`
	JobID       int64              `json:"job_id"`
	CoverLetter *string            `json:"cover_letter"`
	Resume      *string            `json:"resume"`
	Status      *ApplicationStatus `json:"status"`
}

// ApplicationUpdateRequest is the PUT /v1/applications/{id} body. Only
// cover_letter, resume and status are mutable.
type ApplicationUpdateRequest struct {
	CoverLetter *string            `json:"cover_letter"`
	Resume      *string            `json:"resume"`
	Status      *ApplicationStatus `json:"status"`
}
