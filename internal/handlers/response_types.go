package handlers

import (
	"github.com/xpanvictor/voicetaker/internal/domains/note"
	"github.com/xpanvictor/voicetaker/internal/domains/user"
)

// Response wrapper types for Swagger documentation

// SuccessResponse represents a generic success response
type SuccessResponse struct {
	Message string `json:"message" example:"Operation completed successfully"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"Something went wrong"`
	Details string `json:"details,omitempty" example:"Validation error details"`
}

// SignUpResponse represents the response for user registration
type SignUpResponse struct {
	Message string            `json:"message" example:"Sign-up successful!"`
	User    user.UserResponse `json:"user"`
}

// LoginResponse represents the response for user login
type LoginResponse struct {
	Message string            `json:"message" example:"Login successful!"`
	User    user.UserResponse `json:"user"`
}

// SaveNoteResponse represents the response for note creation
type SaveNoteResponse struct {
	Message string `json:"message" example:"Note saved successfully"`
	NoteID  string `json:"note_id" example:"01J9Z3K6V8Q4M2N7P5R1T0W3XY"`
}

// ListNotesResponse is the bare array returned by GET /get_notes
type ListNotesResponse []note.Note

// HealthResponse reports dependency status
type HealthResponse struct {
	Status string            `json:"status" example:"ok"`
	Checks map[string]string `json:"checks,omitempty"`
}
