package services

import (
	"aftech-backend/config"
	"aftech-backend/models"
	"aftech-backend/repositories"
	"aftech-backend/utils"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

type CreateUserInput struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"max=150"`
	Email    string `json:"email" validate:"omitempty,email,max=254"`
	Role     string `json:"role" validate:"required"`
	Region   *uint  `json:"region"`
}

type LoginResult struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user"`
}

// ProfileView is the shape of /core/user-profile/me.
type ProfileView struct {
	ID          uint    `json:"id"`
	User        uint    `json:"user"`
	Role        string  `json:"role"`
	RoleDisplay string  `json:"role_display"`
	Region      *uint   `json:"region"`
	RegionName  *string `json:"region_name"`
}

// Claims holds what the middleware needs from an access token.
type Claims struct {
	UserID    uint
	SessionID string
	Type      string
	ExpiresAt time.Time
}

type UserService struct {
	repo *repositories.UserRepository
	now  func() time.Time
}

func NewUserService(repo *repositories.UserRepository) *UserService {
	return &UserService{repo: repo, now: time.Now}
}

func (s *UserService) CreateUser(in CreateUserInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	if !models.ValidRole(in.Role) {
		return nil, utils.NewValidationError("role", fmt.Sprintf("\"%s\" is not a valid choice.", in.Role))
	}
	if in.Role == models.RoleRegionalManager && in.Region == nil {
		return nil, utils.NewValidationError("region", "Regional managers must be scoped to a region.")
	}
	if in.Region != nil {
		if err := checkRefs(s.repo.DB, refCheck{"region", &models.Region{}, *in.Region}); err != nil {
			return nil, err
		}
	}
	if n, err := countWhere(s.repo.DB, &models.User{}, "username = ?", in.Username); err != nil {
		return nil, err
	} else if n > 0 {
		return nil, utils.NewValidationError("username", "A user with that username already exists.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := models.User{
		Username: in.Username,
		Password: string(hash),
		Name:     strings.TrimSpace(in.Name),
		Email:    in.Email,
		IsActive: true,
	}
	profile := models.UserProfile{Role: in.Role, RegionID: in.Region}
	if err := s.repo.Create(&user, &profile); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login checks the password and opens a session. Unknown users and wrong
// passwords fail the same way.
func (s *UserService) Login(login, password, ip, userAgent string) (*LoginResult, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, utils.NewValidationError("password", "Missing required fields")
	}
	user, err := s.repo.GetByLogin(login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			config.LogWarn(config.GetLogger(), "services", "UserService.Login", "login for unknown user", login)
			return nil, utils.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		config.LogWarn(config.GetLogger(), "services", "UserService.Login", "login rejected", login)
		return nil, utils.ErrInvalidCredentials
	}

	now := s.now()
	session := models.UserSession{
		UserID:         user.ID,
		SessionID:      uuid.NewString(),
		IPAddress:      ip,
		UserAgent:      truncate(userAgent, 255),
		IsActive:       true,
		LastActivityAt: now,
		ExpiresAt:      now.Add(time.Duration(config.JWTRefreshExpiration) * time.Second),
	}
	if err := s.repo.CreateSession(&session); err != nil {
		return nil, err
	}

	access, err := s.sign(user.ID, session.SessionID, TokenAccess, time.Duration(config.JWTExpiration)*time.Second)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(user.ID, session.SessionID, TokenRefresh, time.Duration(config.JWTRefreshExpiration)*time.Second)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

// Refresh issues a new access token for a live session.
func (s *UserService) Refresh(refreshToken string) (string, error) {
	claims, err := ParseToken(refreshToken)
	if err != nil || claims.Type != TokenRefresh {
		return "", utils.ErrUnauthorized
	}
	if _, err := s.ValidateSession(claims.SessionID); err != nil {
		return "", err
	}
	return s.sign(claims.UserID, claims.SessionID, TokenAccess, time.Duration(config.JWTExpiration)*time.Second)
}

// ValidateSession returns the live session and records activity on it.
func (s *UserService) ValidateSession(sessionID string) (*models.UserSession, error) {
	now := s.now()
	session, err := s.repo.ActiveSession(sessionID, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrUnauthorized
		}
		return nil, err
	}
	if err := s.repo.TouchSession(session.ID, now); err != nil {
		config.LogError(config.GetLogger(), "services", "UserService.ValidateSession", "touch session", sessionID, err)
	}
	return session, nil
}

func (s *UserService) Logout(sessionID string) error {
	n, err := s.repo.DeactivateSession(sessionID, s.now())
	if err != nil {
		return err
	}
	if n == 0 {
		return utils.ErrUnauthorized
	}
	return nil
}

func (s *UserService) Profile(userID uint) (*ProfileView, error) {
	profile, err := s.repo.GetProfile(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	view := &ProfileView{
		ID:          profile.ID,
		User:        profile.UserID,
		Role:        profile.Role,
		RoleDisplay: models.RoleDisplay(profile.Role),
		Region:      profile.RegionID,
	}
	if profile.Region != nil {
		view.RegionName = &profile.Region.Name
	}
	return view, nil
}

func (s *UserService) sign(userID uint, sessionID, kind string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    userID,
		"session_id": sessionID,
		"type":       kind,
		"exp":        s.now().Add(ttl).Unix(),
		"jti":        uuid.NewString(),
	})
	signed, err := token.SignedString([]byte(config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signed, nil
}

// ParseToken verifies an HS256 token and extracts its claims.
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, utils.ErrUnauthorized
	}

	userID, ok := mc["user_id"].(float64)
	if !ok || userID <= 0 {
		return nil, utils.ErrUnauthorized
	}
	sessionID, _ := mc["session_id"].(string)
	kind, _ := mc["type"].(string)
	if sessionID == "" {
		return nil, utils.ErrUnauthorized
	}
	claims := &Claims{UserID: uint(userID), SessionID: sessionID, Type: kind}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
