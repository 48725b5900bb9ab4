package user

import (
	"errors"
	"fmt"

	"github.com/xpanvictor/voicetaker/internal/domains/user"
	"gorm.io/gorm"
)

type GormUserRepo struct {
	db *gorm.DB
}

// Create implements user.UserRepository
func (g *GormUserRepo) Create(u *user.User) error {
	entity := NewUserEntityFromDomain(u)
	if err := g.db.Create(entity).Error; err != nil {
		// needs gorm.Config.TranslateError
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return user.ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	*u = *entity.ToDomain()
	return nil
}

// GetByUsername implements user.UserRepository
func (g *GormUserRepo) GetByUsername(username string) (*user.User, error) {
	var entity UserEntity
	if err := g.db.Where("username = ?", username).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return entity.ToDomain(), nil
}

// UsernameExists implements user.UserRepository
func (g *GormUserRepo) UsernameExists(username string) (bool, error) {
	var count int64
	if err := g.db.Model(&UserEntity{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}
	return count > 0, nil
}

func NewGormUserRepo(db *gorm.DB) user.UserRepository {
	return &GormUserRepo{db: db}
}
