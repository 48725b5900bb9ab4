package database

import (
	"fmt"

	feedbackRepo "github.com/xpanvictor/voicetaker/internal/repository/feedback"
	noteRepo "github.com/xpanvictor/voicetaker/internal/repository/note"
	userRepo "github.com/xpanvictor/voicetaker/internal/repository/user"
	"gorm.io/gorm"
)

func MigrateDB(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userRepo.UserEntity{},
		&feedbackRepo.FeedbackEntity{},
		&noteRepo.NoteOwnerEntity{},
		&noteRepo.NoteEntity{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
