package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	courses "github.com/baitalhikma/go-courses/catalog"
	"github.com/baitalhikma/go-courses/internal/domain"
	"github.com/baitalhikma/go-courses/internal/logging"
	"github.com/baitalhikma/go-courses/pkg/interfaces"
	"github.com/google/uuid"
)

// CourseRepository abstracts course storage for the service.
type CourseRepository interface {
	Create(ctx context.Context, record *Course) (*Course, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Course, error)
	GetBySlug(ctx context.Context, slug string) (*Course, error)
	List(ctx context.Context, query ListQuery) ([]*Course, error)
}

// TaxonomyRepository resolves the subject and grade lookup tables.
type TaxonomyRepository interface {
	Subjects(ctx context.Context) ([]*Subject, error)
	Grades(ctx context.Context, countryCode string) ([]*Grade, error)
}

type service struct {
	courses  CourseRepository
	taxonomy TaxonomyRepository
	logger   interfaces.Logger
	now      func() time.Time
	id       func() uuid.UUID
}

// ServiceOption configures the catalog service.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides course ID generation.
func WithIDGenerator(generator func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger overrides the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService constructs the catalog service.
func NewService(coursesRepo CourseRepository, taxonomy TaxonomyRepository, opts ...ServiceOption) courses.Service {
	s := &service{
		courses:  coursesRepo,
		taxonomy: taxonomy,
		logger:   logging.CatalogLogger(nil),
		now:      time.Now,
		id:       uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, req courses.CreateCourseRequest) (*Course, error) {
	if req.TeacherID == uuid.Nil {
		return nil, courses.ErrTeacherIDRequired
	}
	if req.SubjectID == uuid.Nil {
		return nil, courses.ErrSubjectIDRequired
	}
	titleEN := strings.TrimSpace(req.TitleEN)
	titleAR := strings.TrimSpace(req.TitleAR)
	if titleEN == "" && titleAR == "" {
		return nil, courses.ErrTitleRequired
	}

	slug, err := s.resolveSlug(ctx, req.Slug, titleEN)
	if err != nil {
		return nil, err
	}

	now := s.now()
	course := &Course{
		ID:          s.id(),
		TeacherID:   req.TeacherID,
		SubjectID:   req.SubjectID,
		GradeID:     req.GradeID,
		Slug:        slug,
		TitleEN:     titleEN,
		TitleAR:     titleAR,
		Description: req.Description,
		HourlyPrice: req.HourlyPrice,
		Status:      domain.StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := course.ValidateStatus(); err != nil {
		return nil, err
	}

	created, err := s.courses.Create(ctx, course)
	if err != nil {
		return nil, err
	}
	s.logger.Info("course created", "course_id", created.ID, "teacher_id", created.TeacherID, "slug", created.Slug)
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Course, error) {
	if id == uuid.Nil {
		return nil, courses.ErrCourseIDRequired
	}
	return s.courses.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Course, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, courses.ErrSlugRequired
	}
	course, err := s.courses.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if course.Status == domain.StatusDeleted {
		return nil, courses.ErrCourseDeleted
	}
	return course, nil
}

func (s *service) List(ctx context.Context, opts ...ListOption) ([]*Course, error) {
	query := ListQuery{}
	for _, opt := range opts {
		opt(&query)
	}
	return s.courses.List(ctx, query)
}

func (s *service) Subjects(ctx context.Context) ([]*Subject, error) {
	return s.taxonomy.Subjects(ctx)
}

func (s *service) Grades(ctx context.Context, countryCode string) ([]*Grade, error) {
	return s.taxonomy.Grades(ctx, strings.ToUpper(strings.TrimSpace(countryCode)))
}

// resolveSlug normalizes a caller-provided slug or derives one from the
// English title, then enforces uniqueness.
func (s *service) resolveSlug(ctx context.Context, raw, titleEN string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		candidate = titleEN
	}
	if candidate == "" {
		return "", courses.ErrSlugRequired
	}

	normalized, err := courses.NormalizeSlug(candidate)
	if err != nil || !courses.IsValidSlug(normalized) {
		return "", courses.ErrSlugInvalid
	}

	if _, err := s.courses.GetBySlug(ctx, normalized); err == nil {
		return "", courses.ErrSlugExists
	} else if !errors.Is(err, courses.ErrCourseNotFound) {
		return "", err
	}

	return normalized, nil
}
