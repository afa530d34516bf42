package models

import "time"

type User struct {
	Model
	Username string `json:"username" gorm:"size:150;not null;uniqueIndex"`
	Password string `json:"-" gorm:"size:255;not null"`
	Name     string `json:"name" gorm:"size:150"`
	Email    string `json:"email" gorm:"size:254;index"`
	IsActive bool   `json:"is_active" gorm:"not null;default:true"`
}

const (
	RoleSuperAdmin      = "super_admin"
	RoleAdmin           = "admin"
	RoleRegionalManager = "regional_manager"
)

var roleDisplay = map[string]string{
	RoleSuperAdmin:      "Super Admin",
	RoleAdmin:           "Admin",
	RoleRegionalManager: "Regional Manager",
}

func ValidRole(role string) bool {
	_, ok := roleDisplay[role]
	return ok
}

func RoleDisplay(role string) string {
	if d, ok := roleDisplay[role]; ok {
		return d
	}
	return role
}

// UserProfile scopes an account to a role and, for regional managers, a region.
type UserProfile struct {
	Model
	UserID   uint    `json:"user" gorm:"not null;uniqueIndex"`
	User     User    `json:"-" gorm:"foreignKey:UserID"`
	Role     string  `json:"role" gorm:"size:32;not null"`
	RegionID *uint   `json:"region" gorm:"index"`
	Region   *Region `json:"-" gorm:"foreignKey:RegionID"`
}

type UserSession struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"not null;index"`
	SessionID      string    `json:"session_id" gorm:"size:36;not null;uniqueIndex"`
	IPAddress      string    `json:"ip_address" gorm:"size:64"`
	UserAgent      string    `json:"user_agent" gorm:"size:255"`
	IsActive       bool      `json:"is_active" gorm:"not null;default:true"`
	LastActivityAt time.Time `json:"last_activity_at"`
	ExpiresAt      time.Time `json:"expires_at"`
	CreatedAt      time.Time `json:"created_at"`
}
