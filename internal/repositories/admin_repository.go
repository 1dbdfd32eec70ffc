package repositories

import (
	"github.com/pawhaven/backend/internal/models"
	"gorm.io/gorm"
)

// AdminRepository defines the interface for admin data operations
type AdminRepository interface {
	CreateAdmin(admin *models.Admin) error
	GetAdminByID(id uint) (*models.Admin, error)
	GetAdminByEmail(email string) (*models.Admin, error)
	GetAdmins() ([]models.Admin, error)
	SetFCMToken(id uint, token string) error
}

// PostgresAdminRepository implements AdminRepository for PostgreSQL
type PostgresAdminRepository struct {
	db *gorm.DB
}

// NewPostgresAdminRepository creates a new PostgresAdminRepository
func NewPostgresAdminRepository(db *gorm.DB) *PostgresAdminRepository {
	return &PostgresAdminRepository{db: db}
}

// CreateAdmin creates a new admin in PostgreSQL
func (r *PostgresAdminRepository) CreateAdmin(admin *models.Admin) error {
	return r.db.Create(admin).Error
}

// GetAdminByID retrieves an admin by ID from PostgreSQL
func (r *PostgresAdminRepository) GetAdminByID(id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.First(&admin, id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// GetAdminByEmail retrieves an admin by email from PostgreSQL
func (r *PostgresAdminRepository) GetAdminByEmail(email string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// SetFCMToken stores the device token used for push delivery
func (r *PostgresAdminRepository) SetFCMToken(id uint, token string) error {
	return r.db.Model(&models.Admin{}).Where("id = ?", id).Update("fcm_token", token).Error
}

// GetAdmins retrieves all admins from PostgreSQL
func (r *PostgresAdminRepository) GetAdmins() ([]models.Admin, error) {
	var admins []models.Admin
	if err := r.db.Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}
