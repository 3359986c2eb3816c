package catalog

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunCourseRepository stores courses through go-repository-bun with optional
// read caching.
type BunCourseRepository struct {
	repo repository.Repository[*Course]
}

func NewBunCourseRepository(db *bun.DB) *BunCourseRepository {
	return NewBunCourseRepositoryWithCache(db, nil, nil)
}

func NewBunCourseRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunCourseRepository {
	base := NewCourseRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunCourseRepository{repo: wrapped}
}

func (r *BunCourseRepository) Create(ctx context.Context, record *Course) (*Course, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("course repository error: %w", err)
	}
	return created, nil
}

func (r *BunCourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*Course, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "course", id.String())
	}
	return result, nil
}

func (r *BunCourseRepository) GetBySlug(ctx context.Context, slug string) (*Course, error) {
	result, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "course", slug)
	}
	return result, nil
}

func (r *BunCourseRepository) List(ctx context.Context, query ListQuery) ([]*Course, error) {
	criteria := []repository.SelectCriteria{
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			if query.Status != "" {
				q = q.Where("?TableAlias.status = ?", string(query.Status))
			} else {
				q = q.Where("?TableAlias.status != ?", "deleted")
			}
			if query.TeacherID != uuid.Nil {
				q = q.Where("?TableAlias.teacher_id = ?", query.TeacherID)
			}
			if query.SubjectID != uuid.Nil {
				q = q.Where("?TableAlias.subject_id = ?", query.SubjectID)
			}
			return q.Order("crs.created_at DESC")
		}),
	}
	records, _, err := r.repo.List(ctx, criteria...)
	if err != nil {
		return nil, fmt.Errorf("course repository error: %w", err)
	}
	return records, nil
}

// BunTaxonomyRepository serves the subject and grade lookup tables.
type BunTaxonomyRepository struct {
	subjects repository.Repository[*Subject]
	grades   repository.Repository[*Grade]
}

func NewBunTaxonomyRepository(db *bun.DB) *BunTaxonomyRepository {
	return NewBunTaxonomyRepositoryWithCache(db, nil, nil)
}

func NewBunTaxonomyRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunTaxonomyRepository {
	return &BunTaxonomyRepository{
		subjects: wrapWithCache(NewSubjectRepository(db), cacheService, keySerializer),
		grades:   wrapWithCache(NewGradeRepository(db), cacheService, keySerializer),
	}
}

func (r *BunTaxonomyRepository) Subjects(ctx context.Context) ([]*Subject, error) {
	records, _, err := r.subjects.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("sub.code ASC")
	}))
	if err != nil {
		return nil, fmt.Errorf("subject repository error: %w", err)
	}
	return records, nil
}

func (r *BunTaxonomyRepository) Grades(ctx context.Context, countryCode string) ([]*Grade, error) {
	records, _, err := r.grades.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		if countryCode != "" {
			q = q.Where("?TableAlias.country_code = ?", countryCode)
		}
		return q.Order("grd.sort_order ASC")
	}))
	if err != nil {
		return nil, fmt.Errorf("grade repository error: %w", err)
	}
	return records, nil
}

func (r *BunTaxonomyRepository) SubjectByCode(ctx context.Context, code string) (*Subject, error) {
	result, err := r.subjects.GetByIdentifier(ctx, code)
	if err != nil {
		return nil, mapRepositoryError(err, "subject", code)
	}
	return result, nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
