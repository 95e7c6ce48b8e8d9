// Package model defines the data structures used throughout the application.
package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// InvalidEnumError reports a string that matches none of an enum's variants.
// Decoding request bodies surfaces it as a 400; a stored row carrying a value
// outside its CHECK constraint surfaces it as a 500.
type InvalidEnumError struct {
	Kind  string // enum name, e.g. "user role"
	Value string // the offending string
}

func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Kind, e.Value)
}

// UserRole is the role of a registered user.
//
// Roles are persisted and transmitted as their lowercase snake_case string
// ("job_seeker", "employer"). The int representation never leaves the process.
type UserRole int

const (
	RoleJobSeeker UserRole = iota
	RoleEmployer
)

var userRoleNames = map[UserRole]string{
	RoleJobSeeker: "job_seeker",
	RoleEmployer:  "employer",
}

// String returns the canonical wire representation of the role.
func (r UserRole) String() string {
	if name, ok := userRoleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("UserRole(%d)", int(r))
}

// ParseUserRole decodes a wire/storage string. The match is exact and
// case-sensitive; anything else is an InvalidEnumError.
func ParseUserRole(s string) (UserRole, error) {
	for role, name := range userRoleNames {
		if name == s {
			return role, nil
		}
	}
	return 0, &InvalidEnumError{Kind: "user role", Value: s}
}

func (r UserRole) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *UserRole) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	role, err := ParseUserRole(s)
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// User represents a registered account, either a job seeker or an employer.
//
// Password holds the already-hashed credential; hashing happens upstream of
// this API and the value is stored verbatim.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"` // unique, enforced by the store
	Password  string    `json:"password"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserCreateRequest is the POST /v1/users body. Role is optional and
// defaults to job_seeker.
type UserCreateRequest struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Role     *UserRole `json:"role"`
}

// UserUpdateRequest is the PUT /v1/users/{id} body. Nil fields keep their
// stored value.
type UserUpdateRequest struct {
	Name     *string   `json:"name"`
	Email    *string   `json:"email"`
	Password *string   `json:"password"`
	Role     *UserRole `json:"role"`
}
