package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "jainvest/internal/errors"
	"jainvest/internal/logger"
	"jainvest/internal/models"
)

// DemoPassword is the shared password of the seeded demo accounts.
const DemoPassword = "demo123"

// demoUsers are seeded with fixed IDs so that the demo learner lines up
// with its leaderboard entry.
var demoUsers = []models.User{
	{Base: models.Base{ID: "1"}, Email: "learner@demo.com", Name: "Demo Learner", Role: models.RoleLearner},
	{Base: models.Base{ID: "2"}, Email: "reviewer@demo.com", Name: "Demo Reviewer", Role: models.RoleReviewer},
	{Base: models.Base{ID: "3"}, Email: "admin@demo.com", Name: "Demo Admin", Role: models.RoleAdmin},
}

// userService handles identity business logic.
type userService struct {
	db          *gorm.DB
	leaderboard LeaderboardServicer
}

// NewUserService creates a new UserServicer. New signups are enrolled on
// the leaderboard when one is given.
func NewUserService(db *gorm.DB, leaderboard LeaderboardServicer) UserServicer {
	return &userService{db: db, leaderboard: leaderboard}
}

// Signup registers a new user. An empty role defaults to learner.
func (s *userService) Signup(ctx context.Context, email, password, name string, role models.Role) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email and password are required")
	}
	if role == "" {
		role = models.RoleLearner
	}
	if !role.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown role: "+string(role))
	}

	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hashedPassword),
		Name:     strings.TrimSpace(name),
		Role:     role,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if s.leaderboard != nil {
		if err := s.leaderboard.Enroll(ctx, user.ID, user.Name); err != nil {
			logger.Get().Errorw("failed to enroll new user on leaderboard", "error", err, "user_id", user.ID)
		}
	}

	logger.Get().Infow("user signed up", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Login verifies credentials. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (s *userService) Login(ctx context.Context, email, password string) (*models.User, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := db.Model(&user).Update("last_login_at", now).Error; err != nil {
		logger.Get().Warnw("failed to record login time", "error", err, "user_id", user.ID)
	}
	user.LastLoginAt = &now
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// ListUserIDs returns the IDs of every registered user.
func (s *userService) ListUserIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := s.db.WithContext(ctx).Model(&models.User{}).Order("created_at").Pluck("id", &ids).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return ids, nil
}

// SeedDemoUsers creates the demo accounts that are missing. Existing
// accounts are left alone.
func (s *userService) SeedDemoUsers(ctx context.Context) error {
	db := s.db.WithContext(ctx)

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, demo := range demoUsers {
		var count int64
		if err := db.Model(&models.User{}).Where("email = ? OR id = ?", demo.Email, demo.ID).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			continue
		}

		user := demo
		user.Password = string(hash)
		if err := db.Create(&user).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		logger.Get().Infow("seeded demo user", "email", user.Email, "role", user.Role)
	}
	return nil
}
