package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/manifoldco/promptui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/xpanvictor/voicetaker/internal/app"
	"github.com/xpanvictor/voicetaker/internal/config"
	"github.com/xpanvictor/voicetaker/internal/domains/note"
	"github.com/xpanvictor/voicetaker/internal/domains/notetaker"
	"github.com/xpanvictor/voicetaker/pkg/Logger"
)

const loginHint = "Please log in to access the notes page."

// languages the recognizer is known to handle well, code -> display name
var languages = map[string]string{
	"ta": "Tamil",
	"es": "Spanish",
	"fr": "French",
	"en": "English",
	"hi": "Hindi",
	"ml": "Malayalam",
	"te": "Telugu",
}

type noteTaker interface {
	TakeNote(ctx context.Context, language string) (notetaker.Result, error)
	Close() error
}

// swapped in tests; production builds the full microphone pipeline
var (
	buildNoteTaker = func(ctx context.Context, cfg *config.Settings, logger *Logger.Logger, fs afero.Fs) (noteTaker, error) {
		return app.NewNoteTaker(ctx, cfg, logger, fs)
	}
	buildPlaybackStore = app.NewPlaybackStore
)

var (
	noteLanguage string
	listJSON     bool
	playTrack    string
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Record notes",
}

var takeCmd = &cobra.Command{
	Use:   "take",
	Short: "Speak a note and save it",
	Long: `take listens on the microphone until you stop speaking, then transcribes,
translates to English, uploads the media and saves the note to your account.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, err := requireLogin(loginHint)
		if err != nil {
			return err
		}
		lang, err := pickLanguage(noteLanguage)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		taker, err := buildNoteTaker(ctx, env.cfg, env.logger, env.fs)
		if err != nil {
			return err
		}
		defer taker.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Say something...")
		res, err := taker.TakeNote(ctx, lang)
		if err != nil {
			return err
		}

		switch res.Outcome {
		case notetaker.Unintelligible:
			return fail("Sorry, I could not understand what you said.")
		case notetaker.Unavailable:
			return fail("Sorry, I'm having trouble accessing the speech service. Please try again later.")
		}

		fmt.Fprintln(out, "You said:", res.OriginalText)
		if res.TranslatedText != "" {
			fmt.Fprintln(out, "Translated:", res.TranslatedText)
		}

		id, err := env.api.SaveNote(ctx, res.SaveRequest(username))
		if err != nil {
			env.logger.Errorf("save note: %v", err)
			return fail("There was an issue saving your note.")
		}
		fmt.Fprintf(out, "Note saved successfully! (%s)\n", id)
		return nil
	},
}

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Browse your saved notes",
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your notes, oldest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, err := requireLogin(loginHint)
		if err != nil {
			return err
		}
		notes, err := env.api.ListNotes(cmd.Context(), username)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if listJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(notes)
		}
		if len(notes) == 0 {
			fmt.Fprintln(out, "No notes yet.")
			return nil
		}
		for _, n := range notes {
			fmt.Fprintf(out, "%s  %s\n", n.ID, n.CreatedAt.Local().Format("2006-01-02 15:04"))
			fmt.Fprintln(out, "  Original Note:", n.OriginalNote)
			fmt.Fprintln(out, "  Translated Note:", n.TranslatedNote)
		}
		return nil
	},
}

var notesDeleteCmd = &cobra.Command{
	Use:   "delete [note-id]",
	Short: "Delete one of your notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username, err := requireLogin(loginHint)
		if err != nil {
			return err
		}
		if err := env.api.DeleteNote(cmd.Context(), username, args[0]); err != nil {
			if errors.Is(err, note.ErrOwnerNotFound) {
				return fail("User not found!")
			}
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Note deleted successfully!")
		return nil
	},
}

var notesPlayCmd = &cobra.Command{
	Use:   "play [note-id]",
	Short: "Print a time limited link to a note's recording",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username, err := requireLogin(loginHint)
		if err != nil {
			return err
		}
		notes, err := env.api.ListNotes(cmd.Context(), username)
		if err != nil {
			return err
		}
		var found *note.Note
		for i := range notes {
			if notes[i].ID == args[0] {
				found = &notes[i]
				break
			}
		}
		if found == nil {
			return fail("Note not found.")
		}

		locator, label, err := trackLocator(found, playTrack)
		if err != nil {
			return err
		}
		if locator == "" {
			return fail(label + " not available.")
		}

		store, err := buildPlaybackStore(cmd.Context(), env.cfg, env.logger, env.fs)
		if err != nil {
			return err
		}
		link, err := store.PresignURL(cmd.Context(), locator, env.cfg.Storage.PresignTTL)
		if err != nil {
			env.logger.Errorf("presign %s: %v", locator, err)
			return fail("Unable to generate presigned URL for " + strings.ToLower(label))
		}
		fmt.Fprintln(cmd.OutOrStdout(), link)
		return nil
	},
}

func trackLocator(n *note.Note, track string) (string, string, error) {
	var p *string
	var label string
	switch track {
	case "", "original":
		p, label = n.OriginalAudioURL, "Original audio"
	case "translated":
		p, label = n.TranslatedAudioURL, "Translated audio"
	case "combined":
		p, label = n.CombinedURL, "Combined video"
	default:
		return "", "", fmt.Errorf("unknown track %q: want original, translated or combined", track)
	}
	if p == nil {
		return "", label, nil
	}
	return *p, label, nil
}

// pickLanguage validates --language or asks for one.
func pickLanguage(code string) (string, error) {
	if code != "" {
		code = strings.ToLower(code)
		if _, ok := languages[code]; !ok {
			return "", fmt.Errorf("unsupported language %q", code)
		}
		return code, nil
	}

	codes := make([]string, 0, len(languages))
	for c := range languages {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	items := make([]string, len(codes))
	for i, c := range codes {
		items[i] = fmt.Sprintf("%s (%s)", languages[c], c)
	}

	sel := promptui.Select{Label: "Language you will speak", Items: items}
	i, _, err := sel.Run()
	if err != nil {
		return "", err
	}
	return codes[i], nil
}

func init() {
	takeCmd.Flags().StringVarP(&noteLanguage, "language", "l", "", "spoken language: ta, es, fr, en, hi, ml or te (prompted when empty)")
	notesListCmd.Flags().BoolVar(&listJSON, "json", false, "print notes as JSON")
	notesPlayCmd.Flags().StringVar(&playTrack, "track", "original", "original, translated or combined")

	noteCmd.AddCommand(takeCmd)
	notesCmd.AddCommand(notesListCmd, notesDeleteCmd, notesPlayCmd)
	rootCmd.AddCommand(noteCmd, notesCmd)
}
