package feedback

import (
	"fmt"

	"github.com/xpanvictor/voicetaker/internal/domains/feedback"
	"gorm.io/gorm"
)

type GormFeedbackRepo struct {
	db *gorm.DB
}

// Append implements feedback.FeedbackRepository
func (g *GormFeedbackRepo) Append(f *feedback.Feedback) error {
	if err := g.db.Create(NewFeedbackEntityFromDomain(f)).Error; err != nil {
		return fmt.Errorf("failed to append feedback: %w", err)
	}
	return nil
}

func NewGormFeedbackRepo(db *gorm.DB) feedback.FeedbackRepository {
	return &GormFeedbackRepo{db: db}
}
