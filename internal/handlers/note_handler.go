package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xpanvictor/voicetaker/internal/domains/note"
	"github.com/xpanvictor/voicetaker/pkg/Logger"
)

// NoteHandler handles note-related HTTP requests
type NoteHandler struct {
	noteService note.NoteService
	logger      *Logger.Logger
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(noteService note.NoteService, logger *Logger.Logger) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		logger:      logger,
	}
}

// SaveNote handles note creation
// @Summary Save a note
// @Description Append a transcribed note to the user's collection, creating it when absent
// @Tags Notes
// @Accept json
// @Produce json
// @Param request body note.SaveNoteRequest true "Note data"
// @Success 201 {object} SaveNoteResponse "Note saved successfully"
// @Failure 400 {object} ErrorResponse "Invalid request data"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /save_note [post]
func (h *NoteHandler) SaveNote(c *gin.Context) {
	var req note.SaveNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request data",
			Details: err.Error(),
		})
		return
	}

	noteID, err := h.noteService.CreateNote(c.Request.Context(), req)
	if err != nil {
		switch err {
		case note.ErrInvalidNoteData:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid note data"})
		default:
			h.logger.Errorf("save note error: %v", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, SaveNoteResponse{
		Message: "Note saved successfully",
		NoteID:  noteID,
	})
}

// GetNotes lists a user's notes
// @Summary List notes
// @Description All notes of a user in creation order; an unknown user has none
// @Tags Notes
// @Produce json
// @Param username path string true "Owner"
// @Success 200 {array} note.Note "Notes"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /get_notes/{username} [get]
func (h *NoteHandler) GetNotes(c *gin.Context) {
	notes, err := h.noteService.ListNotes(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.logger.Errorf("list notes error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, notes)
}

// DeleteNote handles note deletion
// @Summary Delete a note
// @Description Remove one note from the user's collection. Unknown note ids are ignored.
// @Tags Notes
// @Produce json
// @Param username path string true "Owner"
// @Param note_id path string true "Note ID"
// @Success 200 {object} SuccessResponse "Note deleted successfully"
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /delete_note/{username}/{note_id} [delete]
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	err := h.noteService.DeleteNote(c.Request.Context(), c.Param("username"), c.Param("note_id"))
	if err != nil {
		switch err {
		case note.ErrOwnerNotFound:
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		default:
			h.logger.Errorf("delete note error: %v", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Note deleted successfully"})
}

// RegisterNoteRoutes registers all note-related routes
func (h *NoteHandler) RegisterNoteRoutes(r *gin.RouterGroup) {
	r.POST("/save_note", h.SaveNote)
	r.GET("/get_notes/:username", h.GetNotes)
	r.DELETE("/delete_note/:username/:note_id", h.DeleteNote)
}
