package app

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"course-catalog/internal/model"
	"course-catalog/internal/pkg/validate"
	"course-catalog/internal/repository"
)

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrNotCourseOwner = errors.New("only the course owner may modify this course")
	ErrOwnerNotFound  = errors.New("User ID must reference an existing user")
)

type AuditPublisher interface {
	Publish(ctx context.Context, event model.AuditEvent) error
}

type CatalogCache interface {
	GetList(ctx context.Context) ([]model.CourseView, bool, error)
	SetList(ctx context.Context, courses []model.CourseView) error
	GetCourse(ctx context.Context, id uint) (*model.CourseView, bool, error)
	SetCourse(ctx context.Context, view model.CourseView) error
	InvalidateCourse(ctx context.Context, id uint) error
	InvalidateList(ctx context.Context) error
}

type CourseService struct {
	courseRepo *repository.CourseRepository
	auditRepo  *repository.AuditEventRepository
	cache      CatalogCache
	publisher  AuditPublisher
}

type CourseInput struct {
	Title           string
	Description     string
	EstimatedTime   string
	MaterialsNeeded string
	UserID          uint
}

func NewCourseService(courseRepo *repository.CourseRepository, auditRepo *repository.AuditEventRepository, cache CatalogCache, publisher AuditPublisher) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		auditRepo:  auditRepo,
		cache:      cache,
		publisher:  publisher,
	}
}

func (s *CourseService) List() ([]model.CourseView, error) {
	ctx := context.Background()
	if s.cache != nil {
		if cached, hit, err := s.cache.GetList(ctx); err == nil && hit {
			return cached, nil
		}
	}

	courses, err := s.courseRepo.ListWithOwner()
	if err != nil {
		return nil, err
	}

	views := make([]model.CourseView, 0, len(courses))
	for i := range courses {
		views = append(views, courses[i].View())
	}
	if s.cache != nil {
		_ = s.cache.SetList(ctx, views)
	}
	return views, nil
}

func (s *CourseService) Get(id uint) (*model.CourseView, error) {
	ctx := context.Background()
	if s.cache != nil {
		if cached, hit, err := s.cache.GetCourse(ctx, id); err == nil && hit {
			return cached, nil
		}
	}

	course, err := s.courseRepo.GetByIDWithOwner(id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	view := course.View()
	if s.cache != nil {
		_ = s.cache.SetCourse(ctx, view)
	}
	return &view, nil
}

// Create persists a course for any authenticated actor. The submitted
// owner id is taken as-is and need not match the actor; see DESIGN.md.
func (s *CourseService) Create(actorID uint, input CourseInput) (*model.Course, error) {
	input = trimCourseInput(input)
	messages := validate.Course(validate.CoursePayload{
		Title:       input.Title,
		Description: input.Description,
		UserID:      input.UserID,
	})
	if len(messages) > 0 {
		return nil, &ValidationError{Messages: messages}
	}

	course := &model.Course{
		Title:           input.Title,
		Description:     input.Description,
		EstimatedTime:   input.EstimatedTime,
		MaterialsNeeded: input.MaterialsNeeded,
		UserID:          input.UserID,
	}
	if err := s.courseRepo.Create(course); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrOwnerNotFound
		}
		return nil, err
	}

	s.invalidate(course.ID)
	s.audit(actorID, course.ID, model.AuditActionCreated)
	return course, nil
}

// Update applies the mutation only when the actor owns the course. The
// checks run in a fixed order: existence, ownership, validation.
func (s *CourseService) Update(actorID, id uint, input CourseInput) error {
	course, err := s.courseRepo.GetByID(id)
	if err != nil {
		return err
	}
	if course == nil {
		return ErrCourseNotFound
	}
	if course.UserID != actorID {
		return ErrNotCourseOwner
	}

	input = trimCourseInput(input)
	messages := validate.Course(validate.CoursePayload{
		Title:       input.Title,
		Description: input.Description,
		UserID:      input.UserID,
	})
	if len(messages) > 0 {
		return &ValidationError{Messages: messages}
	}

	course.Title = input.Title
	course.Description = input.Description
	course.EstimatedTime = input.EstimatedTime
	course.MaterialsNeeded = input.MaterialsNeeded
	course.UserID = input.UserID
	if err := s.courseRepo.Update(course); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrOwnerNotFound
		}
		return err
	}

	s.invalidate(id)
	s.audit(actorID, id, model.AuditActionUpdated)
	return nil
}

func (s *CourseService) Delete(actorID, id uint) error {
	course, err := s.courseRepo.GetByID(id)
	if err != nil {
		return err
	}
	if course == nil {
		return ErrCourseNotFound
	}
	if course.UserID != actorID {
		return ErrNotCourseOwner
	}

	if err := s.courseRepo.Delete(id); err != nil {
		return err
	}

	s.invalidate(id)
	s.audit(actorID, id, model.AuditActionDeleted)
	return nil
}

// AuditTrail returns the recorded mutations for a course. Only the owner
// may read the trail.
func (s *CourseService) AuditTrail(actorID, id uint) ([]model.AuditEvent, error) {
	course, err := s.courseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}
	if course.UserID != actorID {
		return nil, ErrNotCourseOwner
	}
	return s.auditRepo.ListByEntity(model.AuditEntityCourse, id)
}

func (s *CourseService) invalidate(id uint) {
	if s.cache == nil {
		return
	}
	ctx := context.Background()
	_ = s.cache.InvalidateCourse(ctx, id)
	_ = s.cache.InvalidateList(ctx)
}

func (s *CourseService) audit(actorID, courseID uint, action string) {
	if s.publisher == nil {
		return
	}
	event := model.AuditEvent{
		Entity:     model.AuditEntityCourse,
		EntityID:   courseID,
		Action:     action,
		ActorID:    actorID,
		OccurredAt: time.Now(),
	}
	if err := s.publisher.Publish(context.Background(), event); err != nil {
		log.Printf("publish audit event failed: %v", err)
	}
}

func trimCourseInput(input CourseInput) CourseInput {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.EstimatedTime = strings.TrimSpace(input.EstimatedTime)
	input.MaterialsNeeded = strings.TrimSpace(input.MaterialsNeeded)
	return input
}
