package model

import "time"

// MasterData is a generic reference-data row (levels, departments, course
// catalogs and the like), grouped by category.
type MasterData struct {
	ID        int       `json:"id"`
	Category  string    `json:"category"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// RoleSkillMapping describes the skill expectation for a role at a level.
type RoleSkillMapping struct {
	ID          int       `json:"id"`
	Role        string    `json:"role"`
	Level       string    `json:"level"`
	SkillName   string    `json:"skill_name"`
	Expectation *string   `json:"expectation,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ConfigData is a simple named application setting.
type ConfigData struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}
