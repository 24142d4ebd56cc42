package repository

import (
	"database/sql"
	"wiser-api/model"
)

// ISkillRepository defines the contract for user-skill database operations.
type ISkillRepository interface {
	Create(skill *model.UserSkill) error
	GetByID(id int) (*model.UserSkill, error)
	GetByUserID(userID int) ([]*model.UserSkill, error)
	GetAll() ([]*model.UserSkill, error)
	Update(id int, req model.UpdateUserSkillRequest) (*model.UserSkill, error)
	Delete(id int) error
}

type SkillRepository struct {
	DB *sql.DB
}

func NewSkillRepository(db *sql.DB) *SkillRepository {
	return &SkillRepository{DB: db}
}

const skillColumns = `id, user_id, skill_name, experience, level, career_goal, created_at`

func scanSkill(row interface{ Scan(...interface{}) error }) (*model.UserSkill, error) {
	skill := &model.UserSkill{}
	err := row.Scan(&skill.ID, &skill.UserID, &skill.SkillName, &skill.Experience,
		&skill.Level, &skill.CareerGoal, &skill.CreatedAt)
	if err != nil {
		return nil, err
	}
	return skill, nil
}

func (r *SkillRepository) Create(skill *model.UserSkill) error {
	query := `INSERT INTO user_skills (user_id, skill_name, experience, level, career_goal)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	return r.DB.QueryRow(query, skill.UserID, skill.SkillName, skill.Experience,
		skill.Level, skill.CareerGoal).Scan(&skill.ID, &skill.CreatedAt)
}

func (r *SkillRepository) GetByID(id int) (*model.UserSkill, error) {
	query := `SELECT ` + skillColumns + ` FROM user_skills WHERE id = $1`
	return scanSkill(r.DB.QueryRow(query, id))
}

func (r *SkillRepository) GetByUserID(userID int) ([]*model.UserSkill, error) {
	query := `SELECT ` + skillColumns + ` FROM user_skills WHERE user_id = $1 ORDER BY id`
	return r.querySkills(query, userID)
}

func (r *SkillRepository) GetAll() ([]*model.UserSkill, error) {
	query := `SELECT ` + skillColumns + ` FROM user_skills ORDER BY id`
	return r.querySkills(query)
}

func (r *SkillRepository) querySkills(query string, args ...interface{}) ([]*model.UserSkill, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var skills []*model.UserSkill
	for rows.Next() {
		skill, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}
	return skills, rows.Err()
}

func (r *SkillRepository) Update(id int, req model.UpdateUserSkillRequest) (*model.UserSkill, error) {
	query := `UPDATE user_skills SET
			skill_name = COALESCE($2, skill_name),
			experience = COALESCE($3, experience),
			level = COALESCE($4, level),
			career_goal = COALESCE($5, career_goal)
		WHERE id = $1 RETURNING ` + skillColumns
	return scanSkill(r.DB.QueryRow(query, id, req.SkillName, req.Experience, req.Level, req.CareerGoal))
}

func (r *SkillRepository) Delete(id int) error {
	result, err := r.DB.Exec(`DELETE FROM user_skills WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
