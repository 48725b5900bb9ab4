package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xpanvictor/voicetaker/pkg/Logger"
)

type oneUserRepo struct{ hash string }

func (r oneUserRepo) Create(u *User) error { return nil }

func (r oneUserRepo) GetByUsername(username string) (*User, error) {
	if username != "alice" {
		return nil, ErrUserNotFound
	}
	return NewUser("alice", r.hash), nil
}

func (r oneUserRepo) UsernameExists(username string) (bool, error) { return username == "alice", nil }

func TestLoginComparesHashForUnknownUsers(t *testing.T) {
	svc := NewUserService(oneUserRepo{hash: "$2a$10$stored"}, Logger.NewNop(), true).(*userService)
	var hashes []string
	svc.compare = func(hash, password []byte) error {
		hashes = append(hashes, string(hash))
		return ErrIncorrectPassword
	}
	ctx := context.Background()

	_, err := svc.Login(ctx, CredentialsRequest{Username: "alice", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, CredentialsRequest{Username: "mallory", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	if assert.Len(t, hashes, 2) {
		assert.Equal(t, "$2a$10$stored", hashes[0])
		assert.Equal(t, string(dummyHash()), hashes[1])
	}
}
