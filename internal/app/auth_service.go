package app

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"course-catalog/internal/model"
	"course-catalog/internal/repository"
)

var (
	ErrNoCredentials     = errors.New("no credentials supplied")
	ErrAccountNotFound   = errors.New("account not found")
	ErrIncorrectPassword = errors.New("incorrect password")
)

// AuthService resolves basic-auth credentials to a persisted user.
// Credentials are re-verified on every request; there is no session state.
type AuthService struct {
	userRepo *repository.UserRepository
}

func NewAuthService(userRepo *repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Verify returns the user matching the email/password pair, or exactly one
// of ErrNoCredentials, ErrAccountNotFound, ErrIncorrectPassword. Callers
// must not reveal which failure occurred to the client.
func (s *AuthService) Verify(email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, ErrNoCredentials
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrAccountNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrIncorrectPassword
	}
	return user, nil
}
