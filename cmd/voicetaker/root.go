package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/xpanvictor/voicetaker/internal/client"
	"github.com/xpanvictor/voicetaker/internal/config"
	"github.com/xpanvictor/voicetaker/pkg/Logger"
)

var (
	verbose bool
	apiURL  string
)

// cliEnv is what every command needs. Tests install their own before running a command.
type cliEnv struct {
	cfg      *config.Settings
	logger   *Logger.Logger
	fs       afero.Fs
	api      *client.Client
	sessions *client.SessionStore
}

var env *cliEnv

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "voicetaker",
	Short: "Speak a note, get it transcribed, translated and stored",
	Long: `voicetaker records a spoken note from the microphone (and camera when available),
transcribes and translates it, uploads the audio and video, and keeps the note on the
voicetaker server under your account.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if env != nil {
			return nil
		}
		e, err := loadEnv()
		if err != nil {
			return err
		}
		env = e
		return nil
	},
}

func loadEnv() (*cliEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := Logger.NewNop()
	if verbose || cfg.Debug {
		logger = Logger.New(true)
	}

	base := cfg.Client.APIBaseURL
	if apiURL != "" {
		base = apiURL
	}
	sessionFile := cfg.Client.SessionFile
	if sessionFile == "" {
		sessionFile = client.DefaultSessionPath()
	}

	fs := afero.NewOsFs()
	return &cliEnv{
		cfg:      cfg,
		logger:   logger,
		fs:       fs,
		api:      client.New(base, nil, logger.Named("client")),
		sessions: client.NewSessionStore(fs, sessionFile),
	}, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "voicetaker API base URL (overrides client.api_base_url)")
}

// requireLogin returns the session user or the login hint.
func requireLogin(hint string) (string, error) {
	username, err := env.sessions.Require()
	if errors.Is(err, client.ErrNotLoggedIn) {
		return "", fail(hint)
	}
	return username, err
}

// fail carries a message meant for the person at the terminal.
func fail(msg string) error {
	return errors.New(msg)
}

// ask fills an empty flag value from an interactive prompt.
func ask(value *string, label string, secret bool) error {
	if *value != "" {
		return nil
	}
	p := promptui.Prompt{Label: label}
	if secret {
		p.Mask = '*'
	}
	v, err := p.Run()
	if err != nil {
		return err
	}
	*value = v
	return nil
}
