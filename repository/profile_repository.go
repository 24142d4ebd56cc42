package repository

import (
	"database/sql"
	"wiser-api/model"
)

// IProfileRepository defines the contract for employee-profile operations.
type IProfileRepository interface {
	Create(profile *model.EmployeeProfile) error
	GetByID(id int) (*model.EmployeeProfile, error)
	GetAll() ([]*model.EmployeeProfile, error)
	Update(id int, req model.UpdateEmployeeProfileRequest) (*model.EmployeeProfile, error)
	Delete(id int) error
}

type ProfileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

const profileColumns = `id, user_email, full_name, department, job_title, level, manager_email, created_at`

func scanProfile(row interface{ Scan(...interface{}) error }) (*model.EmployeeProfile, error) {
	p := &model.EmployeeProfile{}
	err := row.Scan(&p.ID, &p.UserEmail, &p.FullName, &p.Department, &p.JobTitle,
		&p.Level, &p.ManagerEmail, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProfileRepository) Create(profile *model.EmployeeProfile) error {
	query := `INSERT INTO employee_profiles (user_email, full_name, department, job_title, level, manager_email)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	return r.DB.QueryRow(query, profile.UserEmail, profile.FullName, profile.Department,
		profile.JobTitle, profile.Level, profile.ManagerEmail).Scan(&profile.ID, &profile.CreatedAt)
}

func (r *ProfileRepository) GetByID(id int) (*model.EmployeeProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM employee_profiles WHERE id = $1`
	return scanProfile(r.DB.QueryRow(query, id))
}

func (r *ProfileRepository) GetAll() ([]*model.EmployeeProfile, error) {
	rows, err := r.DB.Query(`SELECT ` + profileColumns + ` FROM employee_profiles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*model.EmployeeProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *ProfileRepository) Update(id int, req model.UpdateEmployeeProfileRequest) (*model.EmployeeProfile, error) {
	query := `UPDATE employee_profiles SET
			full_name = COALESCE($2, full_name),
			department = COALESCE($3, department),
			job_title = COALESCE($4, job_title),
			level = COALESCE($5, level),
			manager_email = COALESCE($6, manager_email)
		WHERE id = $1 RETURNING ` + profileColumns
	return scanProfile(r.DB.QueryRow(query, id, req.FullName, req.Department, req.JobTitle, req.Level, req.ManagerEmail))
}

func (r *ProfileRepository) Delete(id int) error {
	result, err := r.DB.Exec(`DELETE FROM employee_profiles WHERE id = $1`, id)
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
