package note

import (
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis"
	"github.com/xpanvictor/voicetaker/internal/domains/note"
)

const ownersKey = "notes:owners"

func ownerKey(owner string) string { return "notes:" + owner }

// RedisNoteRepo stores each owner's collection as a list of JSON records
// and tracks owners in a set, so an emptied collection still exists.
type RedisNoteRepo struct {
	client *redis.Client
}

// Create implements note.NoteRepository
func (r *RedisNoteRepo) Create(owner string, n *note.Note) error {
	raw, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode note: %w", err)
	}
	_, err = r.client.TxPipelined(func(pipe redis.Pipeliner) error {
		pipe.SAdd(ownersKey, owner)
		pipe.RPush(ownerKey(owner), raw)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

// ListByOwner implements note.NoteRepository
func (r *RedisNoteRepo) ListByOwner(owner string) ([]note.Note, error) {
	raws, err := r.client.LRange(ownerKey(owner), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	if len(raws) == 0 {
		return nil, nil
	}
	notes := make([]note.Note, 0, len(raws))
	for _, raw := range raws {
		var n note.Note
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			return nil, fmt.Errorf("failed to decode note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// Delete implements note.NoteRepository. LREM removes the exact stored
// record, so a concurrent writer can never make it drop a different note.
func (r *RedisNoteRepo) Delete(owner, noteID string) error {
	known, err := r.client.SIsMember(ownersKey, owner).Result()
	if err != nil {
		return fmt.Errorf("failed to look up owner: %w", err)
	}
	if !known {
		return note.ErrOwnerNotFound
	}

	raws, err := r.client.LRange(ownerKey(owner), 0, -1).Result()
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}
	for _, raw := range raws {
		var n note.Note
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			continue
		}
		if n.ID != noteID {
			continue
		}
		if err := r.client.LRem(ownerKey(owner), 1, raw).Err(); err != nil {
			return fmt.Errorf("failed to delete note: %w", err)
		}
		return nil
	}
	return nil
}

func NewRedisNoteRepo(client *redis.Client) note.NoteRepository {
	return &RedisNoteRepo{client: client}
}
