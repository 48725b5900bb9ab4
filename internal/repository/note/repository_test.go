package note

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xpanvictor/voicetaker/internal/domains/note"
)

type driver struct {
	name string
	open func(t *testing.T) note.NoteRepository
}

func drivers() []driver {
	return []driver{
		{"memory", func(t *testing.T) note.NoteRepository { return NewMemoryNoteRepo() }},
		{"redis", func(t *testing.T) note.NoteRepository {
			mr := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			t.Cleanup(func() { client.Close() })
			return NewRedisNoteRepo(client)
		}},
		{"gorm", func(t *testing.T) note.NoteRepository {
			db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
			require.NoError(t, err)
			sqlDB, err := db.DB()
			require.NoError(t, err)
			sqlDB.SetMaxOpenConns(1)
			t.Cleanup(func() { sqlDB.Close() })
			require.NoError(t, db.AutoMigrate(&NoteOwnerEntity{}, &NoteEntity{}))
			return NewGormNoteRepo(db)
		}},
	}
}

var seq int

func newNote(text string) *note.Note {
	seq++
	url := "https://notesaver.s3.amazonaws.com/audio_" + text + ".wav"
	return &note.Note{
		ID:               fmt.Sprintf("01J9Z3K6V8Q4M2N7P5R1T0W%03d", seq),
		OriginalNote:     text,
		TranslatedNote:   "translated " + text,
		OriginalAudioURL: &url,
		CreatedAt:        time.Date(2024, 1, 1, 12, 0, seq, 0, time.UTC),
	}
}

func ids(notes []note.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.ID
	}
	return out
}

func TestNoteRepositories(t *testing.T) {
	for _, d := range drivers() {
		t.Run(d.name, func(t *testing.T) {
			t.Run("create then list keeps insertion order", func(t *testing.T) {
				repo := d.open(t)
				a, b := newNote("hola"), newNote("adios")
				require.NoError(t, repo.Create("alice", a))
				require.NoError(t, repo.Create("alice", b))

				notes, err := repo.ListByOwner("alice")
				require.NoError(t, err)
				assert.Equal(t, []string{a.ID, b.ID}, ids(notes))
				assert.Equal(t, "hola", notes[0].OriginalNote)
				assert.Equal(t, "translated hola", notes[0].TranslatedNote)
				require.NotNil(t, notes[0].OriginalAudioURL)
				assert.Equal(t, *a.OriginalAudioURL, *notes[0].OriginalAudioURL)
				assert.Nil(t, notes[0].CombinedURL)
			})

			t.Run("unknown owner lists nothing", func(t *testing.T) {
				repo := d.open(t)
				notes, err := repo.ListByOwner("nobody")
				require.NoError(t, err)
				assert.Empty(t, notes)
			})

			t.Run("owners are isolated", func(t *testing.T) {
				repo := d.open(t)
				require.NoError(t, repo.Create("alice", newNote("a1")))
				bob := newNote("b1")
				require.NoError(t, repo.Create("bob", bob))

				notes, err := repo.ListByOwner("bob")
				require.NoError(t, err)
				assert.Equal(t, []string{bob.ID}, ids(notes))

				// alice cannot delete bob's note through her own collection
				require.NoError(t, repo.Delete("alice", bob.ID))
				notes, err = repo.ListByOwner("bob")
				require.NoError(t, err)
				assert.Len(t, notes, 1)
			})

			t.Run("delete removes exactly one note", func(t *testing.T) {
				repo := d.open(t)
				a, b, c := newNote("a"), newNote("b"), newNote("c")
				for _, n := range []*note.Note{a, b, c} {
					require.NoError(t, repo.Create("alice", n))
				}

				require.NoError(t, repo.Delete("alice", b.ID))
				notes, err := repo.ListByOwner("alice")
				require.NoError(t, err)
				assert.Equal(t, []string{a.ID, c.ID}, ids(notes))

				// second delete is a no-op
				require.NoError(t, repo.Delete("alice", b.ID))
				notes, err = repo.ListByOwner("alice")
				require.NoError(t, err)
				assert.Len(t, notes, 2)
			})

			t.Run("delete for unknown owner", func(t *testing.T) {
				repo := d.open(t)
				assert.ErrorIs(t, repo.Delete("ghost", "01J9Z3K6V8Q4M2N7P5R1T0W000"), note.ErrOwnerNotFound)
			})

			t.Run("emptied collection still exists", func(t *testing.T) {
				repo := d.open(t)
				a := newNote("only")
				require.NoError(t, repo.Create("alice", a))
				require.NoError(t, repo.Delete("alice", a.ID))

				notes, err := repo.ListByOwner("alice")
				require.NoError(t, err)
				assert.Empty(t, notes)
				assert.NoError(t, repo.Delete("alice", a.ID))
			})
		})
	}
}

func TestMemoryNoteRepoConcurrentWriters(t *testing.T) {
	repo := NewMemoryNoteRepo()
	const writers = 50

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			owner := "alice"
			if i%2 == 1 {
				owner = "bob"
			}
			_ = repo.Create(owner, &note.Note{ID: fmt.Sprintf("id-%d", i), OriginalNote: "x"})
		}(i)
	}
	wg.Wait()

	alice, _ := repo.ListByOwner("alice")
	bob, _ := repo.ListByOwner("bob")
	assert.Len(t, alice, writers/2)
	assert.Len(t, bob, writers/2)
}
