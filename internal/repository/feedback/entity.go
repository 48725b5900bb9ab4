package feedback

import (
	"time"

	"github.com/xpanvictor/voicetaker/internal/domains/feedback"
)

type FeedbackEntity struct {
	ID        string    `gorm:"primaryKey;type:char(36);not null"`
	Username  string    `gorm:"type:varchar(191);not null;index"`
	Text      string    `gorm:"column:feedback;type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (FeedbackEntity) TableName() string {
	return "feedback"
}

func NewFeedbackEntityFromDomain(f *feedback.Feedback) *FeedbackEntity {
	return &FeedbackEntity{
		ID:        f.ID,
		Username:  f.Username,
		Text:      f.Text,
		CreatedAt: f.CreatedAt,
	}
}
