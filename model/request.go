// file: model/request.go

package model

// RegisterRequest defines the payload for creating a new account.
// It includes validation tags to ensure data integrity at the entry point.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

// LoginRequest defines the payload for user authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// CreateUserRequest is the admin payload for creating a user directly.
type CreateUserRequest struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	Name     string   `json:"name" validate:"required"`
	Roles    []string `json:"roles" validate:"omitempty,dive,oneof=MEMBER MANAGER HR ADMIN"`
	Level    *string  `json:"level"`
	JobTitle *string  `json:"job_title"`
}

// UpdateUserRequest carries the mutable profile fields. Nil means "leave as is".
type UpdateUserRequest struct {
	Name      *string `json:"name"`
	Level     *string `json:"level"`
	JobTitle  *string `json:"job_title"`
	ManagerID *int    `json:"manager_id"`
}

// UpdateUserRolesRequest replaces a user's role set.
type UpdateUserRolesRequest struct {
	Roles []string `json:"roles" validate:"required,min=1,dive,oneof=MEMBER MANAGER HR ADMIN"`
}

// CreateUserSkillRequest defines the payload for adding a skill entry.
type CreateUserSkillRequest struct {
	SkillName  string  `json:"skill_name" validate:"required"`
	Experience *string `json:"experience"`
	Level      *string `json:"level"`
	CareerGoal *string `json:"career_goal"`
}

// UpdateUserSkillRequest carries the mutable skill fields.
type UpdateUserSkillRequest struct {
	SkillName  *string `json:"skill_name"`
	Experience *string `json:"experience"`
	Level      *string `json:"level"`
	CareerGoal *string `json:"career_goal"`
}

type CreateMasterDataRequest struct {
	Category string `json:"category" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Value    string `json:"value" validate:"required"`
}

type UpdateMasterDataRequest struct {
	Category *string `json:"category"`
	Name     *string `json:"name"`
	Value    *string `json:"value"`
}

// ImportMasterDataRequest is the batch form used by the import endpoint.
type ImportMasterDataRequest struct {
	Rows []CreateMasterDataRequest `json:"rows" validate:"required,min=1,dive"`
}

type CreateRoleSkillMappingRequest struct {
	Role        string  `json:"role" validate:"required"`
	Level       string  `json:"level" validate:"required"`
	SkillName   string  `json:"skill_name" validate:"required"`
	Expectation *string `json:"expectation"`
}

type UpdateRoleSkillMappingRequest struct {
	Role        *string `json:"role"`
	Level       *string `json:"level"`
	SkillName   *string `json:"skill_name"`
	Expectation *string `json:"expectation"`
}

type CreateEmployeeProfileRequest struct {
	UserEmail    string  `json:"user_email" validate:"required,email"`
	FullName     *string `json:"full_name"`
	Department   *string `json:"department"`
	JobTitle     *string `json:"job_title"`
	Level        *string `json:"level"`
	ManagerEmail *string `json:"manager_email"`
}

type UpdateEmployeeProfileRequest struct {
	FullName     *string `json:"full_name"`
	Department   *string `json:"department"`
	JobTitle     *string `json:"job_title"`
	Level        *string `json:"level"`
	ManagerEmail *string `json:"manager_email"`
}

type CreateConfigDataRequest struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value" validate:"required"`
}

type UpdateConfigDataRequest struct {
	Name  *string `json:"name"`
	Value *string `json:"value"`
}

// CreateCareerPlanRequest defines the payload for opening a new yearly plan.
type CreateCareerPlanRequest struct {
	Year         int     `json:"year" validate:"required,gte=2000,lte=2100"`
	TargetLevel  *string `json:"target_level"`
	ReviewPeriod *string `json:"review_period"`
}

// UpdatePlanStatusRequest moves a plan through its lifecycle.
type UpdatePlanStatusRequest struct {
	Status PlanStatus `json:"status" validate:"required,oneof=DRAFT SUBMITTED IN_REVIEW APPROVED"`
}

// GenerateGrowthMapRequest is the profile snapshot handed to the generator.
// The payload is forwarded to the upstream model as-is.
type GenerateGrowthMapRequest struct {
	Name         string      `json:"name"`
	JobTitle     string      `json:"job_title"`
	Level        string      `json:"level"`
	TargetLevel  string      `json:"target_level"`
	ReviewPeriod string      `json:"review_period"`
	Skills       []UserSkill `json:"skills,omitempty"`
}
