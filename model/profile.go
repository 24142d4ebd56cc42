package model

import "time"

// EmployeeProfile is HR-maintained employee data, keyed by the user's email
// rather than a foreign key so profiles can be imported ahead of signup.
type EmployeeProfile struct {
	ID           int       `json:"id"`
	UserEmail    string    `json:"user_email"`
	FullName     *string   `json:"full_name,omitempty"`
	Department   *string   `json:"department,omitempty"`
	JobTitle     *string   `json:"job_title,omitempty"`
	Level        *string   `json:"level,omitempty"`
	ManagerEmail *string   `json:"manager_email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
