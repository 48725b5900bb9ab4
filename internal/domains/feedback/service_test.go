package feedback_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xpanvictor/voicetaker/internal/domains/feedback"
	"github.com/xpanvictor/voicetaker/pkg/Logger"
)

type sliceRepo struct {
	items []feedback.Feedback
	err   error
}

func (r *sliceRepo) Append(f *feedback.Feedback) error {
	if r.err != nil {
		return r.err
	}
	r.items = append(r.items, *f)
	return nil
}

func TestSubmit(t *testing.T) {
	repo := &sliceRepo{}
	svc := feedback.NewFeedbackService(repo, Logger.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.Submit(ctx, feedback.SubmitFeedbackRequest{Username: "alice", Feedback: "  love it  "}))
	require.NoError(t, svc.Submit(ctx, feedback.SubmitFeedbackRequest{Username: "alice", Feedback: "love it"}))

	require.Len(t, repo.items, 2)
	assert.Equal(t, "love it", repo.items[0].Text)
	assert.NotEqual(t, repo.items[0].ID, repo.items[1].ID, "duplicates are kept as separate entries")
}

func TestSubmitRejects(t *testing.T) {
	repo := &sliceRepo{}
	svc := feedback.NewFeedbackService(repo, Logger.NewNop())
	ctx := context.Background()

	assert.ErrorIs(t, svc.Submit(ctx, feedback.SubmitFeedbackRequest{Username: "alice", Feedback: " \n\t"}), feedback.ErrEmptyFeedback)
	assert.ErrorIs(t, svc.Submit(ctx, feedback.SubmitFeedbackRequest{Feedback: "hi"}), feedback.ErrMissingUsername)
	assert.Empty(t, repo.items)
}

func TestSubmitStoreFailure(t *testing.T) {
	boom := errors.New("disk full")
	svc := feedback.NewFeedbackService(&sliceRepo{err: boom}, Logger.NewNop())

	err := svc.Submit(context.Background(), feedback.SubmitFeedbackRequest{Username: "alice", Feedback: "hi"})
	assert.ErrorIs(t, err, boom)
}
