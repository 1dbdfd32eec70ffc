package repositories

import (
	"github.com/pawhaven/backend/internal/models"
	"gorm.io/gorm"
)

// VerifiedUserRepository defines the interface for verified-user data operations
type VerifiedUserRepository interface {
	CreateVerifiedUser(user *models.VerifiedUser) error
	GetVerifiedUserByID(id uint) (*models.VerifiedUser, error)
	GetVerifiedUserByEmail(email string) (*models.VerifiedUser, error)
	GetVerifiedUsers() ([]models.VerifiedUser, error)
	SetFCMToken(id uint, token string) error
}

// PostgresVerifiedUserRepository implements VerifiedUserRepository for PostgreSQL
type PostgresVerifiedUserRepository struct {
	db *gorm.DB
}

// NewPostgresVerifiedUserRepository creates a new PostgresVerifiedUserRepository
func NewPostgresVerifiedUserRepository(db *gorm.DB) *PostgresVerifiedUserRepository {
	return &PostgresVerifiedUserRepository{db: db}
}

// CreateVerifiedUser creates a new verified user in PostgreSQL
func (r *PostgresVerifiedUserRepository) CreateVerifiedUser(user *models.VerifiedUser) error {
	return r.db.Create(user).Error
}

// GetVerifiedUserByID retrieves a verified user by ID from PostgreSQL
func (r *PostgresVerifiedUserRepository) GetVerifiedUserByID(id uint) (*models.VerifiedUser, error) {
	var user models.VerifiedUser
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetVerifiedUserByEmail retrieves a verified user by email from PostgreSQL
func (r *PostgresVerifiedUserRepository) GetVerifiedUserByEmail(email string) (*models.VerifiedUser, error) {
	var user models.VerifiedUser
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetVerifiedUsers retrieves all verified users from PostgreSQL
func (r *PostgresVerifiedUserRepository) GetVerifiedUsers() ([]models.VerifiedUser, error) {
	var users []models.VerifiedUser
	if err := r.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// SetFCMToken stores the device token used for push delivery
func (r *PostgresVerifiedUserRepository) SetFCMToken(id uint, token string) error {
	return r.db.Model(&models.VerifiedUser{}).Where("id = ?", id).Update("fcm_token", token).Error
}
