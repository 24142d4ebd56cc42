package repository

import (
	"database/sql"
	"wiser-api/model"

	"github.com/lib/pq"
)

// IUserRepository defines the contract for user database operations.
type IUserRepository interface {
	CreateUser(user *model.User) error
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	GetAllUsers() ([]*model.User, error)
	UpdateUser(id int, req model.UpdateUserRequest) (*model.User, error)
	UpdateUserRoles(id int, roles []string) error
	DeleteUser(id int) error
}

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, email, name, password, roles, level, job_title, manager_id, created_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.Password, pq.Array(&user.Roles),
		&user.Level, &user.JobTitle, &user.ManagerID, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) CreateUser(user *model.User) error {
	if len(user.Roles) == 0 {
		user.Roles = []string{string(model.RoleMember)}
	}
	query := `INSERT INTO users (email, name, password, roles, level, job_title, manager_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at`
	return r.DB.QueryRow(query, user.Email, user.Name, user.Password, pq.Array(user.Roles),
		user.Level, user.JobTitle, user.ManagerID).Scan(&user.ID, &user.CreatedAt)
}

func (r *UserRepository) GetUserByEmail(email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.DB.QueryRow(query, email))
}

func (r *UserRepository) GetUserByID(id int) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.DB.QueryRow(query, id))
}

func (r *UserRepository) GetAllUsers() ([]*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// UpdateUser applies the non-nil fields of req and returns the updated row.
func (r *UserRepository) UpdateUser(id int, req model.UpdateUserRequest) (*model.User, error) {
	query := `UPDATE users SET
			name = COALESCE($2, name),
			level = COALESCE($3, level),
			job_title = COALESCE($4, job_title),
			manager_id = COALESCE($5, manager_id)
		WHERE id = $1 RETURNING ` + userColumns
	return scanUser(r.DB.QueryRow(query, id, req.Name, req.Level, req.JobTitle, req.ManagerID))
}

func (r *UserRepository) UpdateUserRoles(id int, roles []string) error {
	query := `UPDATE users SET roles = $2 WHERE id = $1`
	result, err := r.DB.Exec(query, id, pq.Array(roles))
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

func (r *UserRepository) DeleteUser(id int) error {
	result, err := r.DB.Exec(`DELETE FROM users WHERE id = $1`, id)
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
