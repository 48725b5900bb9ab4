package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xpanvictor/voicetaker/internal/domains/feedback"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback [message...]",
	Short: "Tell us what you think",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, err := requireLogin("Please log in to submit feedback.")
		if err != nil {
			return err
		}
		text := strings.Join(args, " ")
		if err := ask(&text, "Feedback", false); err != nil {
			return err
		}

		err = env.api.SubmitFeedback(cmd.Context(), username, text)
		switch {
		case err == nil:
			fmt.Fprintln(cmd.OutOrStdout(), "Feedback submitted successfully!")
			return nil
		case errors.Is(err, feedback.ErrEmptyFeedback):
			return fail("Feedback cannot be empty!")
		default:
			env.logger.Errorf("feedback: %v", err)
			return fail("There was an issue submitting your feedback.")
		}
	},
}

func init() {
	rootCmd.AddCommand(feedbackCmd)
}
