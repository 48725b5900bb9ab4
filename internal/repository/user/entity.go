package user

import (
	"time"

	"github.com/google/uuid"
	"github.com/xpanvictor/voicetaker/internal/domains/user"
	"gorm.io/gorm"
)

// UserEntity represents the database entity for User with GORM tags
type UserEntity struct {
	ID        string    `gorm:"primaryKey;type:char(36);not null"`
	Username  string    `gorm:"uniqueIndex;type:varchar(191);not null"`
	Password  string    `gorm:"column:password_hash;type:char(60);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for GORM
func (UserEntity) TableName() string {
	return "users"
}

// BeforeCreate is a GORM hook to ensure UUID is set
func (u *UserEntity) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// ToDomain converts UserEntity to domain User
func (u *UserEntity) ToDomain() *user.User {
	return &user.User{
		ID:        u.ID,
		Username:  u.Username,
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
	}
}

// NewUserEntityFromDomain creates a new UserEntity from domain User
func NewUserEntityFromDomain(domainUser *user.User) *UserEntity {
	return &UserEntity{
		ID:        domainUser.ID,
		Username:  domainUser.Username,
		Password:  domainUser.Password,
		CreatedAt: domainUser.CreatedAt,
	}
}
