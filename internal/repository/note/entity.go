package note

import (
	"time"

	"github.com/xpanvictor/voicetaker/internal/domains/note"
)

// NoteOwnerEntity records that a user has a collection, even an empty one
type NoteOwnerEntity struct {
	Username  string    `gorm:"primaryKey;type:varchar(191);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (NoteOwnerEntity) TableName() string {
	return "note_owners"
}

// NoteEntity represents the database entity for Note with GORM tags
type NoteEntity struct {
	ID                 string    `gorm:"primaryKey;type:char(26);not null"`
	Owner              string    `gorm:"column:owner;type:varchar(191);not null;index"`
	OriginalNote       string    `gorm:"column:original_note;type:text;not null"`
	TranslatedNote     string    `gorm:"column:translated_note;type:text"`
	OriginalAudioURL   *string   `gorm:"column:original_audio_url;type:varchar(1024)"`
	TranslatedAudioURL *string   `gorm:"column:translated_audio_url;type:varchar(1024)"`
	CombinedURL        *string   `gorm:"column:combined_url;type:varchar(1024)"`
	CreatedAt          time.Time `gorm:"column:created_at;precision:6"`
}

// TableName returns the table name for GORM
func (NoteEntity) TableName() string {
	return "notes"
}

// ToDomain converts NoteEntity to domain Note
func (n *NoteEntity) ToDomain() note.Note {
	return note.Note{
		ID:                 n.ID,
		OriginalNote:       n.OriginalNote,
		TranslatedNote:     n.TranslatedNote,
		OriginalAudioURL:   n.OriginalAudioURL,
		TranslatedAudioURL: n.TranslatedAudioURL,
		CombinedURL:        n.CombinedURL,
		CreatedAt:          n.CreatedAt,
	}
}

// FromDomain converts domain Note to NoteEntity
func (n *NoteEntity) FromDomain(owner string, domainNote *note.Note) {
	n.ID = domainNote.ID
	n.Owner = owner
	n.OriginalNote = domainNote.OriginalNote
	n.TranslatedNote = domainNote.TranslatedNote
	n.OriginalAudioURL = domainNote.OriginalAudioURL
	n.TranslatedAudioURL = domainNote.TranslatedAudioURL
	n.CombinedURL = domainNote.CombinedURL
	n.CreatedAt = domainNote.CreatedAt
}

// NewNoteEntityFromDomain creates a new NoteEntity from domain Note
func NewNoteEntityFromDomain(owner string, domainNote *note.Note) *NoteEntity {
	entity := &NoteEntity{}
	entity.FromDomain(owner, domainNote)
	return entity
}
