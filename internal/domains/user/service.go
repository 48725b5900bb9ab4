package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xpanvictor/voicetaker/pkg/Logger"
	"golang.org/x/crypto/bcrypt"
)

// Common errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidUserData    = errors.New("username and password are required")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
)

// longest input bcrypt.GenerateFromPassword accepts
const maxPasswordBytes = 72

// compared against when the username is unknown so both login failures cost one bcrypt run
var dummyHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("voicetaker-no-such-user"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
})

// UserService defines the interface for credential business logic
type UserService interface {
	SignUp(ctx context.Context, req CredentialsRequest) (*UserResponse, error)
	Login(ctx context.Context, req CredentialsRequest) (*UserResponse, error)
}

type userService struct {
	repository UserRepository
	logger     *Logger.Logger
	// collapse not-found and bad-password into ErrInvalidCredentials
	uniformErrors bool
	compare       func(hash, password []byte) error
}

// SignUp implements UserService
func (s *userService) SignUp(ctx context.Context, req CredentialsRequest) (*UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, ErrInvalidUserData
	}
	if len(req.Password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	exists, err := s.repository.UsernameExists(username)
	if err != nil {
		s.logger.Errorf("error checking username existence: %v", err)
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Errorf("error hashing password: %v", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := NewUser(username, string(hashedPassword))
	if err := s.repository.Create(u); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		s.logger.Errorf("error creating user: %v", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Infof("user signed up: %s", u.Username)
	response := u.ToResponse()
	return &response, nil
}

// Login implements UserService
func (s *userService) Login(ctx context.Context, req CredentialsRequest) (*UserResponse, error) {
	u, err := s.repository.GetByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			_ = s.compare(dummyHash(), []byte(req.Password))
			return nil, s.loginFailure(ErrUserNotFound)
		}
		s.logger.Errorf("error getting user by username: %v", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.compare([]byte(u.Password), []byte(req.Password)); err != nil {
		return nil, s.loginFailure(ErrIncorrectPassword)
	}

	s.logger.Infof("user logged in: %s", u.Username)
	response := u.ToResponse()
	return &response, nil
}

func (s *userService) loginFailure(err error) error {
	if s.uniformErrors {
		return ErrInvalidCredentials
	}
	return err
}

// NewUserService creates a new user service
func NewUserService(repository UserRepository, logger *Logger.Logger, uniformLoginErrors bool) UserService {
	return &userService{
		repository:    repository,
		logger:        logger,
		uniformErrors: uniformLoginErrors,
		compare:       bcrypt.CompareHashAndPassword,
	}
}
