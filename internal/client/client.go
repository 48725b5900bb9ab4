// Package client talks to the voicetaker API on behalf of the CLI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xpanvictor/voicetaker/internal/domains/feedback"
	"github.com/xpanvictor/voicetaker/internal/domains/note"
	"github.com/xpanvictor/voicetaker/internal/domains/user"
	"github.com/xpanvictor/voicetaker/pkg/Logger"
)

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrUnavailable      = errors.New("voicetaker api unavailable")
)

// APIError is a non-2xx answer the client has no sentinel for.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type messageBody struct {
	Message string `json:"message"`
}

type authBody struct {
	Message string            `json:"message"`
	User    user.UserResponse `json:"user"`
}

type saveNoteBody struct {
	Message string `json:"message"`
	NoteID  string `json:"note_id"`
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  *Logger.Logger
}

func New(baseURL string, httpClient *http.Client, logger *Logger.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// SignUp registers a user. A mismatched confirmation never reaches the server.
func (c *Client) SignUp(ctx context.Context, username, password, confirmation string) (user.UserResponse, error) {
	if password != confirmation {
		return user.UserResponse{}, ErrPasswordMismatch
	}
	if username == "" || password == "" {
		return user.UserResponse{}, user.ErrInvalidUserData
	}

	var out authBody
	err := c.do(ctx, http.MethodPost, "/signup", user.CredentialsRequest{Username: username, Password: password}, &out)
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusConflict:
			return user.UserResponse{}, user.ErrUsernameTaken
		case http.StatusBadRequest:
			if strings.HasPrefix(apiErr.Message, "Password must be") {
				return user.UserResponse{}, user.ErrPasswordTooLong
			}
			return user.UserResponse{}, user.ErrInvalidUserData
		}
	}
	if err != nil {
		return user.UserResponse{}, err
	}
	return out.User, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (user.UserResponse, error) {
	var out authBody
	err := c.do(ctx, http.MethodPost, "/login", user.CredentialsRequest{Username: username, Password: password}, &out)
	if err != nil {
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			return user.UserResponse{}, err
		}
		switch apiErr.Status {
		case http.StatusNotFound:
			return user.UserResponse{}, user.ErrUserNotFound
		case http.StatusUnauthorized:
			if strings.HasPrefix(apiErr.Message, "Incorrect password") {
				return user.UserResponse{}, user.ErrIncorrectPassword
			}
			return user.UserResponse{}, user.ErrInvalidCredentials
		case http.StatusBadRequest:
			return user.UserResponse{}, user.ErrInvalidUserData
		}
		return user.UserResponse{}, err
	}
	return out.User, nil
}

// SaveNote stores a note and returns its id.
func (c *Client) SaveNote(ctx context.Context, req note.SaveNoteRequest) (string, error) {
	var out saveNoteBody
	if err := c.do(ctx, http.MethodPost, "/save_note", req, &out); err != nil {
		return "", err
	}
	return out.NoteID, nil
}

func (c *Client) ListNotes(ctx context.Context, username string) ([]note.Note, error) {
	notes := []note.Note{}
	if err := c.do(ctx, http.MethodGet, "/get_notes/"+url.PathEscape(username), nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) DeleteNote(ctx context.Context, username, noteID string) error {
	var out messageBody
	err := c.do(ctx, http.MethodDelete, "/delete_note/"+url.PathEscape(username)+"/"+url.PathEscape(noteID), nil, &out)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return note.ErrOwnerNotFound
	}
	return err
}

func (c *Client) SubmitFeedback(ctx context.Context, username, text string) error {
	if strings.TrimSpace(text) == "" {
		return feedback.ErrEmptyFeedback
	}
	var out messageBody
	err := c.do(ctx, http.MethodPost, "/feedback", feedback.SubmitFeedbackRequest{Username: username, Feedback: text}, &out)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest {
		return feedback.ErrEmptyFeedback
	}
	return err
}

// do sends a JSON request. 2xx bodies decode into out; anything else becomes an *APIError.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debugf("%s %s: %v", method, path, err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	c.logger.Debugf("%s %s -> %d", method, path, resp.StatusCode)

	if resp.StatusCode >= 300 {
		var e errorBody
		_ = json.Unmarshal(raw, &e)
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
