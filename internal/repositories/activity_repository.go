package repositories

import (
	"github.com/pawhaven/backend/internal/models"
	"gorm.io/gorm"
)

// ActivityRepository defines the interface for the append-only audit trail
type ActivityRepository interface {
	Append(activity *models.Activity) error
	ListRecent(limit int) ([]models.Activity, error)
}

// PostgresActivityRepository implements ActivityRepository for PostgreSQL
type PostgresActivityRepository struct {
	db *gorm.DB
}

// NewPostgresActivityRepository creates a new PostgresActivityRepository
func NewPostgresActivityRepository(db *gorm.DB) *PostgresActivityRepository {
	return &PostgresActivityRepository{db: db}
}

// Append records one admin-attributed action
func (r *PostgresActivityRepository) Append(activity *models.Activity) error {
	return r.db.Create(activity).Error
}

// ListRecent retrieves the latest audit entries, newest first
func (r *PostgresActivityRepository) ListRecent(limit int) ([]models.Activity, error) {
	var activities []models.Activity
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}
