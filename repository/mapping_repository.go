package repository

import (
	"database/sql"
	"wiser-api/model"
)

// IMappingRepository defines the contract for role-skill mapping operations.
type IMappingRepository interface {
	Create(mapping *model.RoleSkillMapping) error
	GetByID(id int) (*model.RoleSkillMapping, error)
	GetAll() ([]*model.RoleSkillMapping, error)
	Update(id int, req model.UpdateRoleSkillMappingRequest) (*model.RoleSkillMapping, error)
	Delete(id int) error
}

type MappingRepository struct {
	DB *sql.DB
}

func NewMappingRepository(db *sql.DB) *MappingRepository {
	return &MappingRepository{DB: db}
}

const mappingColumns = `id, role, level, skill_name, expectation, created_at`

func scanMapping(row interface{ Scan(...interface{}) error }) (*model.RoleSkillMapping, error) {
	m := &model.RoleSkillMapping{}
	err := row.Scan(&m.ID, &m.Role, &m.Level, &m.SkillName, &m.Expectation, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MappingRepository) Create(mapping *model.RoleSkillMapping) error {
	query := `INSERT INTO role_skill_mappings (role, level, skill_name, expectation)
		VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	return r.DB.QueryRow(query, mapping.Role, mapping.Level, mapping.SkillName, mapping.Expectation).
		Scan(&mapping.ID, &mapping.CreatedAt)
}

func (r *MappingRepository) GetByID(id int) (*model.RoleSkillMapping, error) {
	query := `SELECT ` + mappingColumns + ` FROM role_skill_mappings WHERE id = $1`
	return scanMapping(r.DB.QueryRow(query, id))
}

func (r *MappingRepository) GetAll() ([]*model.RoleSkillMapping, error) {
	rows, err := r.DB.Query(`SELECT ` + mappingColumns + ` FROM role_skill_mappings ORDER BY role, level`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mappings []*model.RoleSkillMapping
	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}
	return mappings, rows.Err()
}

func (r *MappingRepository) Update(id int, req model.UpdateRoleSkillMappingRequest) (*model.RoleSkillMapping, error) {
	query := `UPDATE role_skill_mappings SET
			role = COALESCE($2, role),
			level = COALESCE($3, level),
			skill_name = COALESCE($4, skill_name),
			expectation = COALESCE($5, expectation)
		WHERE id = $1 RETURNING ` + mappingColumns
	return scanMapping(r.DB.QueryRow(query, id, req.Role, req.Level, req.SkillName, req.Expectation))
}

func (r *MappingRepository) Delete(id int) error {
	result, err := r.DB.Exec(`DELETE FROM role_skill_mappings WHERE id = $1`, id)
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
