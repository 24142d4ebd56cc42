package repository

import (
	"database/sql"
	"encoding/json"
	"wiser-api/logger"
	"wiser-api/model"

	"github.com/sirupsen/logrus"
)

// ICareerPlanRepository defines the contract for career-plan operations.
type ICareerPlanRepository interface {
	Create(plan *model.CareerPlan) error
	CountByUserAndYear(userID, year int) (int, error)
	GetByID(id int) (*model.CareerPlan, error)
	GetByUserID(userID int) ([]*model.CareerPlan, error)
	GetByManagerID(managerID int) ([]*model.CareerPlan, error)
	FindDraftByUserID(userID int) (*model.CareerPlan, error)
	SetManagerComments(id int, comments json.RawMessage) error
	SetEmployeeComments(id int, comments json.RawMessage) error
	UpdateStatus(id int, status model.PlanStatus) error
	UpdateCertificates(id int, certs []model.Certificate) error
}

type CareerPlanRepository struct {
	DB *sql.DB
}

func NewCareerPlanRepository(db *sql.DB) *CareerPlanRepository {
	return &CareerPlanRepository{DB: db}
}

const planColumns = `id, user_id, manager_id, year, status, target_level, review_period,
	growth_map, manager_comments, employee_comments, certificates, created_at`

func scanPlan(row interface{ Scan(...interface{}) error }) (*model.CareerPlan, error) {
	plan := &model.CareerPlan{}
	// The JSON columns are nullable, so they go through []byte intermediates.
	var growthMap, managerComments, employeeComments, certs []byte
	err := row.Scan(&plan.ID, &plan.UserID, &plan.ManagerID, &plan.Year, &plan.Status,
		&plan.TargetLevel, &plan.ReviewPeriod, &growthMap, &managerComments,
		&employeeComments, &certs, &plan.CreatedAt)
	if err != nil {
		return nil, err
	}
	plan.GrowthMap = json.RawMessage(growthMap)
	plan.ManagerComments = json.RawMessage(managerComments)
	plan.EmployeeComments = json.RawMessage(employeeComments)
	if certs != nil {
		if err := json.Unmarshal(certs, &plan.Certificates); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

func (r *CareerPlanRepository) Create(plan *model.CareerPlan) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id": plan.UserID,
		"year":    plan.Year,
	})
	log.Info("Executing query to create a new career plan")

	certs, err := marshalCertificates(plan.Certificates)
	if err != nil {
		return err
	}

	query := `INSERT INTO career_plans (user_id, manager_id, year, status, target_level, review_period, growth_map, certificates)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at`
	err = r.DB.QueryRow(query, plan.UserID, plan.ManagerID, plan.Year, plan.Status,
		plan.TargetLevel, plan.ReviewPeriod, nullableJSON(plan.GrowthMap), certs).
		Scan(&plan.ID, &plan.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create career plan query")
		return err
	}
	return nil
}

func (r *CareerPlanRepository) CountByUserAndYear(userID, year int) (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM career_plans WHERE user_id = $1 AND year = $2`, userID, year).Scan(&count)
	return count, err
}

func (r *CareerPlanRepository) GetByID(id int) (*model.CareerPlan, error) {
	query := `SELECT ` + planColumns + ` FROM career_plans WHERE id = $1`
	return scanPlan(r.DB.QueryRow(query, id))
}

func (r *CareerPlanRepository) GetByUserID(userID int) ([]*model.CareerPlan, error) {
	query := `SELECT ` + planColumns + ` FROM career_plans WHERE user_id = $1 ORDER BY year DESC`
	return r.queryPlans(query, userID)
}

func (r *CareerPlanRepository) GetByManagerID(managerID int) ([]*model.CareerPlan, error) {
	query := `SELECT ` + planColumns + ` FROM career_plans WHERE manager_id = $1 ORDER BY year DESC`
	return r.queryPlans(query, managerID)
}

// FindDraftByUserID returns the user's most recent draft plan, or
// sql.ErrNoRows when there is none.
func (r *CareerPlanRepository) FindDraftByUserID(userID int) (*model.CareerPlan, error) {
	query := `SELECT ` + planColumns + ` FROM career_plans
		WHERE user_id = $1 AND status = $2 ORDER BY id DESC LIMIT 1`
	return scanPlan(r.DB.QueryRow(query, userID, model.PlanStatusDraft))
}

func (r *CareerPlanRepository) queryPlans(query string, args ...interface{}) ([]*model.CareerPlan, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*model.CareerPlan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

func (r *CareerPlanRepository) SetManagerComments(id int, comments json.RawMessage) error {
	return r.updateColumn(id, `manager_comments`, []byte(comments))
}

func (r *CareerPlanRepository) SetEmployeeComments(id int, comments json.RawMessage) error {
	return r.updateColumn(id, `employee_comments`, []byte(comments))
}

func (r *CareerPlanRepository) UpdateStatus(id int, status model.PlanStatus) error {
	result, err := r.DB.Exec(`UPDATE career_plans SET status = $2 WHERE id = $1`, id, status)
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

func (r *CareerPlanRepository) UpdateCertificates(id int, certs []model.Certificate) error {
	data, err := marshalCertificates(certs)
	if err != nil {
		return err
	}
	return r.updateColumn(id, `certificates`, data)
}

func (r *CareerPlanRepository) updateColumn(id int, column string, value []byte) error {
	// column is always one of our own constants, never user input.
	result, err := r.DB.Exec(`UPDATE career_plans SET `+column+` = $2 WHERE id = $1`, id, value)
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

func marshalCertificates(certs []model.Certificate) ([]byte, error) {
	if certs == nil {
		return nil, nil
	}
	return json.Marshal(certs)
}

func nullableJSON(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}
