package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"course-catalog/internal/model"
	"course-catalog/internal/pkg/validate"
	"course-catalog/internal/repository"
)

var ErrEmailExists = errors.New("email address is already in use")

type UserService struct {
	userRepo  *repository.UserRepository
	publisher AuditPublisher
}

type RegisterInput struct {
	FirstName    string
	LastName     string
	EmailAddress string
	Password     string
}

func NewUserService(userRepo *repository.UserRepository, publisher AuditPublisher) *UserService {
	return &UserService{
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// Register validates the candidate, hashes the password, and persists the
// user. Validation and hashing are separate steps; the plaintext secret is
// never stored.
func (s *UserService) Register(input RegisterInput) (*model.User, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	email := strings.TrimSpace(strings.ToLower(input.EmailAddress))

	messages := validate.User(validate.UserPayload{
		FirstName:    firstName,
		LastName:     lastName,
		EmailAddress: email,
		Password:     input.Password,
	})
	if len(messages) > 0 {
		return nil, &ValidationError{Messages: messages}
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		FirstName:    firstName,
		LastName:     lastName,
		EmailAddress: email,
		Password:     string(hash),
	}
	if err := s.userRepo.Create(user); err != nil {
		// The pre-check races with concurrent registration; the unique
		// index is the authority.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	s.audit(model.AuditEvent{
		Entity:     model.AuditEntityUser,
		EntityID:   user.ID,
		Action:     model.AuditActionCreated,
		ActorID:    user.ID,
		OccurredAt: time.Now(),
	})
	return user, nil
}

func (s *UserService) audit(event model.AuditEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(context.Background(), event); err != nil {
		log.Printf("publish audit event failed: %v", err)
	}
}
