package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xpanvictor/voicetaker/pkg/Logger"
)

var (
	ErrEmptyFeedback   = errors.New("feedback cannot be empty")
	ErrMissingUsername = errors.New("username is required")
)

type FeedbackService interface {
	Submit(ctx context.Context, req SubmitFeedbackRequest) error
}

type feedbackService struct {
	repository FeedbackRepository
	logger     *Logger.Logger
}

func (s *feedbackService) Submit(ctx context.Context, req SubmitFeedbackRequest) error {
	if strings.TrimSpace(req.Username) == "" {
		return ErrMissingUsername
	}
	text := strings.TrimSpace(req.Feedback)
	if text == "" {
		return ErrEmptyFeedback
	}

	f := NewFeedback(req.Username, text)
	if err := s.repository.Append(f); err != nil {
		s.logger.Errorf("error storing feedback: %v", err)
		return fmt.Errorf("failed to store feedback: %w", err)
	}
	s.logger.Infof("feedback received from %s", req.Username)
	return nil
}

func NewFeedbackService(repository FeedbackRepository, logger *Logger.Logger) FeedbackService {
	return &feedbackService{repository: repository, logger: logger}
}
