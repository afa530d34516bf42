package repositories

import (
	"aftech-backend/models"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(DB *gorm.DB) *UserRepository {
	return &UserRepository{DB: DB}
}

// Create stores the user and its profile together.
func (r *UserRepository) Create(user *models.User, profile *models.UserProfile) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Omit("User", "Region").Create(profile).Error
	})
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

// GetByLogin matches either the username or the email.
func (r *UserRepository) GetByLogin(login string) (*models.User, error) {
	var user models.User
	err := r.DB.Where("username = ? OR email = ?", login, login).Order("id").First(&user).Error
	return &user, err
}

func (r *UserRepository) GetProfile(userID uint) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.DB.Preload("Region").Where("user_id = ?", userID).First(&profile).Error
	return &profile, err
}

func (r *UserRepository) CreateSession(session *models.UserSession) error {
	return r.DB.Create(session).Error
}

// ActiveSession returns the live session with the given id.
func (r *UserRepository) ActiveSession(sessionID string, now time.Time) (*models.UserSession, error) {
	var session models.UserSession
	err := r.DB.Where("session_id = ? AND is_active = ? AND expires_at > ?", sessionID, true, now).First(&session).Error
	return &session, err
}

func (r *UserRepository) TouchSession(id uint, now time.Time) error {
	return r.DB.Model(&models.UserSession{}).Where("id = ?", id).Update("last_activity_at", now).Error
}

func (r *UserRepository) DeactivateSession(sessionID string, now time.Time) (int64, error) {
	res := r.DB.Model(&models.UserSession{}).
		Where("session_id = ? AND is_active = ?", sessionID, true).
		Updates(map[string]interface{}{"is_active": false, "last_activity_at": now})
	return res.RowsAffected, res.Error
}
