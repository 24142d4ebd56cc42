package model

import "time"

// UserSkill is a self-reported skill entry belonging to one user.
type UserSkill struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	SkillName  string    `json:"skill_name"`
	Experience *string   `json:"experience,omitempty"`
	Level      *string   `json:"level,omitempty"`
	CareerGoal *string   `json:"career_goal,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
