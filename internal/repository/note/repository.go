package note

import (
	"errors"
	"fmt"

	"github.com/xpanvictor/voicetaker/internal/domains/note"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormNoteRepo struct {
	db *gorm.DB
}

// Create implements note.NoteRepository
func (g *GormNoteRepo) Create(owner string, n *note.Note) error {
	err := g.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&NoteOwnerEntity{Username: owner}).Error; err != nil {
			return err
		}
		return tx.Create(NewNoteEntityFromDomain(owner, n)).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

// ListByOwner implements note.NoteRepository
func (g *GormNoteRepo) ListByOwner(owner string) ([]note.Note, error) {
	var entities []NoteEntity
	// ULIDs sort by creation time
	if err := g.db.Where("owner = ?", owner).Order("created_at ASC, id ASC").Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	if len(entities) == 0 {
		return nil, nil
	}
	notes := make([]note.Note, len(entities))
	for i := range entities {
		notes[i] = entities[i].ToDomain()
	}
	return notes, nil
}

// Delete implements note.NoteRepository
func (g *GormNoteRepo) Delete(owner, noteID string) error {
	var ownerEntity NoteOwnerEntity
	if err := g.db.Where("username = ?", owner).First(&ownerEntity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return note.ErrOwnerNotFound
		}
		return fmt.Errorf("failed to look up owner: %w", err)
	}

	if err := g.db.Where("owner = ? AND id = ?", owner, noteID).Delete(&NoteEntity{}).Error; err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

func NewGormNoteRepo(db *gorm.DB) note.NoteRepository {
	return &GormNoteRepo{db: db}
}
