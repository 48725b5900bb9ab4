package database

import (
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xpanvictor/voicetaker/internal/config"
	"github.com/xpanvictor/voicetaker/internal/domains/user"
	userRepo "github.com/xpanvictor/voicetaker/internal/repository/user"
)

func TestInitAndMigrateSQLite(t *testing.T) {
	cfg := &config.Settings{DB: config.DBConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "test.db")}}
	db, err := InitDB(cfg)
	require.NoError(t, err)
	require.NoError(t, MigrateDB(db))

	for _, table := range []string{"users", "feedback", "notes", "note_owners"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	repo := userRepo.NewGormUserRepo(db)
	require.NoError(t, repo.Create(user.NewUser("alice", "hash")))
	assert.ErrorIs(t, repo.Create(user.NewUser("alice", "hash")), user.ErrUsernameTaken)
}

func TestInitDBUnknownDriver(t *testing.T) {
	_, err := InitDB(&config.Settings{DB: config.DBConfig{Driver: "oracle"}})
	assert.ErrorContains(t, err, "unknown database driver")
}

func TestNewRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedis(config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()
	assert.NoError(t, client.Ping().Err())

	addr := mr.Addr()
	mr.Close()
	_, err = NewRedis(config.RedisConfig{Addr: addr})
	assert.Error(t, err)
}
