package repository

import (
	"database/sql"
	"wiser-api/model"
)

// IConfigDataRepository defines the contract for config-data operations.
type IConfigDataRepository interface {
	Create(row *model.ConfigData) error
	GetAll() ([]*model.ConfigData, error)
	Update(id int, req model.UpdateConfigDataRequest) (*model.ConfigData, error)
	Delete(id int) error
}

type ConfigDataRepository struct {
	DB *sql.DB
}

func NewConfigDataRepository(db *sql.DB) *ConfigDataRepository {
	return &ConfigDataRepository{DB: db}
}

func (r *ConfigDataRepository) Create(row *model.ConfigData) error {
	query := `INSERT INTO config_data (name, value) VALUES ($1, $2) RETURNING id, created_at`
	return r.DB.QueryRow(query, row.Name, row.Value).Scan(&row.ID, &row.CreatedAt)
}

func (r *ConfigDataRepository) GetAll() ([]*model.ConfigData, error) {
	rows, err := r.DB.Query(`SELECT id, name, value, created_at FROM config_data ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*model.ConfigData
	for rows.Next() {
		cd := &model.ConfigData{}
		if err := rows.Scan(&cd.ID, &cd.Name, &cd.Value, &cd.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, cd)
	}
	return result, rows.Err()
}

func (r *ConfigDataRepository) Update(id int, req model.UpdateConfigDataRequest) (*model.ConfigData, error) {
	query := `UPDATE config_data SET
			name = COALESCE($2, name),
			value = COALESCE($3, value)
		WHERE id = $1 RETURNING id, name, value, created_at`
	cd := &model.ConfigData{}
	err := r.DB.QueryRow(query, id, req.Name, req.Value).Scan(&cd.ID, &cd.Name, &cd.Value, &cd.CreatedAt)
	if err != nil {
		return nil, err
	}
	return cd, nil
}

func (r *ConfigDataRepository) Delete(id int) error {
	result, err := r.DB.Exec(`DELETE FROM config_data WHERE id = $1`, id)
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
