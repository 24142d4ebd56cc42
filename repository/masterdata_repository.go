package repository

import (
	"database/sql"
	"wiser-api/model"
)

// IMasterDataRepository defines the contract for master-data operations.
type IMasterDataRepository interface {
	Create(row *model.MasterData) error
	CreateBatch(rows []model.CreateMasterDataRequest) (int, error)
	GetByID(id int) (*model.MasterData, error)
	GetAll() ([]*model.MasterData, error)
	Update(id int, req model.UpdateMasterDataRequest) (*model.MasterData, error)
	Delete(id int) error
}

type MasterDataRepository struct {
	DB *sql.DB
}

func NewMasterDataRepository(db *sql.DB) *MasterDataRepository {
	return &MasterDataRepository{DB: db}
}

func scanMasterData(row interface{ Scan(...interface{}) error }) (*model.MasterData, error) {
	md := &model.MasterData{}
	err := row.Scan(&md.ID, &md.Category, &md.Name, &md.Value, &md.CreatedAt)
	if err != nil {
		return nil, err
	}
	return md, nil
}

func (r *MasterDataRepository) Create(row *model.MasterData) error {
	query := `INSERT INTO master_data (category, name, value) VALUES ($1, $2, $3) RETURNING id, created_at`
	return r.DB.QueryRow(query, row.Category, row.Name, row.Value).Scan(&row.ID, &row.CreatedAt)
}

// CreateBatch inserts an imported batch in a single transaction so a bad row
// does not leave a partial import behind.
func (r *MasterDataRepository) CreateBatch(rows []model.CreateMasterDataRequest) (int, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO master_data (category, name, value) VALUES ($1, $2, $3)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.Exec(row.Category, row.Name, row.Value); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (r *MasterDataRepository) GetByID(id int) (*model.MasterData, error) {
	query := `SELECT id, category, name, value, created_at FROM master_data WHERE id = $1`
	return scanMasterData(r.DB.QueryRow(query, id))
}

func (r *MasterDataRepository) GetAll() ([]*model.MasterData, error) {
	rows, err := r.DB.Query(`SELECT id, category, name, value, created_at FROM master_data ORDER BY category, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*model.MasterData
	for rows.Next() {
		md, err := scanMasterData(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, md)
	}
	return result, rows.Err()
}

func (r *MasterDataRepository) Update(id int, req model.UpdateMasterDataRequest) (*model.MasterData, error) {
	query := `UPDATE master_data SET
			category = COALESCE($2, category),
			name = COALESCE($3, name),
			value = COALESCE($4, value)
		WHERE id = $1 RETURNING id, category, name, value, created_at`
	return scanMasterData(r.DB.QueryRow(query, id, req.Category, req.Name, req.Value))
}

func (r *MasterDataRepository) Delete(id int) error {
	result, err := r.DB.Exec(`DELETE FROM master_data WHERE id = $1`, id)
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
