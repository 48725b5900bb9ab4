package feedback

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is a free text message left by a user. Write only.
type Feedback struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Text      string    `json:"feedback"`
	CreatedAt time.Time `json:"createdAt"`
}

// SubmitFeedbackRequest represents a feedback submission
// @Description Request body for feedback
type SubmitFeedbackRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Feedback string `json:"feedback" example:"The Tamil transcription is great"`
}

func NewFeedback(username, text string) *Feedback {
	return &Feedback{
		ID:        uuid.New().String(),
		Username:  username,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// FeedbackRepository is append-only; there is no read path.
type FeedbackRepository interface {
	Append(f *Feedback) error
}
