package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// EmploymentType is the contract type of a job posting.
type EmploymentType int

const (
	FullTime EmploymentType = iota
	PartTime
	Contract
)

var employmentTypeNames = map[EmploymentType]string{
	FullTime: "full_time",
	PartTime: "part_time",
	Contract: "contract",
}

func (t EmploymentType) String() string {
	if name, ok := employmentTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("EmploymentType(%d)", int(t))
}

// ParseEmploymentType decodes a wire/storage string, case-sensitively.
func ParseEmploymentType(s string) (EmploymentType, error) {
	for typ, name := range employmentTypeNames {
		if name == s {
			return typ, nil
		}
	}
	return 0, &InvalidEnumError{Kind: "employment type", Value: s}
}

func (t EmploymentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *EmploymentType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	typ, err := ParseEmploymentType(s)
	if err != nil {
		return err
	}
	*t = typ
	return nil
}

// Job is a posting created by an employer.
//
// PostedAt is set once at creation and never changes. UpdatedAt is refreshed
// on every update, even one that changes no fields.
type Job struct {
	ID             int64          `json:"id"`
	EmployerID     int64          `json:"employer_id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Location       string         `json:"location"`
	Salary         *string        `json:"salary"` // free-form, e.g. "$120,000 - $150,000"
	EmploymentType EmploymentType `json:"employment_type"`
	PostedAt       time.Time      `json:"posted_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// JobCreateRequest is the POST /v1/jobs body.
type JobCreateRequest struct {
	EmployerID     int64           `json:"employer_id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Location       string          `json:"location"`
	Salary         *string         `json:"salary"`
	EmploymentType *EmploymentType `json:"employment_type"`
}

// JobUpdateRequest is the PUT /v1/jobs/{id} body. Nil fields keep their
// stored value; posted_at is immutable.
type JobUpdateRequest struct {
	Title          *string         `json:"title"`
	Description    *string         `json:"description"`
	Location       *string         `json:"location"`
	Salary         *string         `json:"salary"`
	EmploymentType *EmploymentType `json:"employment_type"`
}
