package repository

import (
	"errors"
	"fmt"

	userPkg "github.com/dustin/movies-backend/internal/user"
	"github.com/dustin/movies-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormUserRepository implements the user.Repository interface with GORM optimizations
type gormUserRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewGORMUserRepository creates a new GORM-based user repository
func NewGORMUserRepository(db *gorm.DB, log *logger.Logger) userPkg.Repository {
	return &gormUserRepository{
		db:     db,
		logger: log.WithComponent("gorm-user-repository"),
	}
}

func (r *gormUserRepository) Create(user *userPkg.User) error {
	r.logger.Info("Creating user " + user.ID.String() + " email " + user.Email)

	if err := r.db.Create(user).Error; err != nil {
		r.logger.Error("Failed to create user " + user.Email + ": " + err.Error())
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *gormUserRepository) FindByEmail(email string) (*userPkg.User, error) {
	var user userPkg.User

	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userPkg.ErrNotFound
		}

		r.logger.Error("Database error finding user by email " + email + ": " + err.Error())
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &user, nil
}

func (r *gormUserRepository) FindByID(id uuid.UUID) (*userPkg.User, error) {
	var user userPkg.User

	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userPkg.ErrNotFound
		}

		r.logger.Error("Database error finding user " + id.String() + ": " + err.Error())
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &user, nil
}

func (r *gormUserRepository) Update(user *userPkg.User) error {
	r.logger.Info("Updating user " + user.ID.String())

	if err := r.db.Save(user).Error; err != nil {
		r.logger.Error("Failed to update user " + user.ID.String() + ": " + err.Error())
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}
