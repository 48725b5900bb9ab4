package note

import (
	"sync"

	"github.com/xpanvictor/voicetaker/internal/domains/note"
)

type collection struct {
	mu    sync.Mutex
	notes []note.Note
}

// MemoryNoteRepo keeps collections in process. Each owner's collection has
// its own lock so writers for different owners never contend.
type MemoryNoteRepo struct {
	mu     sync.RWMutex
	owners map[string]*collection
}

func (m *MemoryNoteRepo) collection(owner string, create bool) *collection {
	m.mu.RLock()
	c, ok := m.owners[owner]
	m.mu.RUnlock()
	if ok || !create {
		return c
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok = m.owners[owner]; !ok {
		c = &collection{}
		m.owners[owner] = c
	}
	return c
}

// Create implements note.NoteRepository
func (m *MemoryNoteRepo) Create(owner string, n *note.Note) error {
	c := m.collection(owner, true)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notes = append(c.notes, *n)
	return nil
}

// ListByOwner implements note.NoteRepository
func (m *MemoryNoteRepo) ListByOwner(owner string) ([]note.Note, error) {
	c := m.collection(owner, false)
	if c == nil {
		return nil, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]note.Note, len(c.notes))
	copy(out, c.notes)
	return out, nil
}

// Delete implements note.NoteRepository
func (m *MemoryNoteRepo) Delete(owner, noteID string) error {
	c := m.collection(owner, false)
	if c == nil {
		return note.ErrOwnerNotFound
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.notes {
		if c.notes[i].ID == noteID {
			c.notes = append(c.notes[:i], c.notes[i+1:]...)
			break
		}
	}
	return nil
}

func NewMemoryNoteRepo() note.NoteRepository {
	return &MemoryNoteRepo{owners: make(map[string]*collection)}
}
