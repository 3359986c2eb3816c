package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	courses "github.com/baitalhikma/go-courses/catalog"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunRegistry is the sole writer of the lifecycle triple (status,
// pending_intent, pending_reason). ApplyTransition re-reads the record inside
// a transaction so concurrent writers serialize on the row.
type BunRegistry struct {
	db     *bun.DB
	reader *BunCourseRepository
	now    func() time.Time
}

var _ courses.Registry = (*BunRegistry)(nil)

// RegistryOption configures the registry.
type RegistryOption func(*BunRegistry)

// WithRegistryClock overrides the clock stamping updated_at.
func WithRegistryClock(clock func() time.Time) RegistryOption {
	return func(r *BunRegistry) {
		if clock != nil {
			r.now = clock
		}
	}
}

// NewBunRegistry constructs a registry over the given database.
func NewBunRegistry(db *bun.DB, reader *BunCourseRepository, opts ...RegistryOption) *BunRegistry {
	if reader == nil {
		reader = NewBunCourseRepository(db)
	}
	r := &BunRegistry{
		db:     db,
		reader: reader,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *BunRegistry) Get(ctx context.Context, id uuid.UUID) (*Course, error) {
	if id == uuid.Nil {
		return nil, courses.ErrCourseIDRequired
	}
	return r.reader.GetByID(ctx, id)
}

// ApplyTransition loads the course, applies the mutation and persists the
// lifecycle columns atomically. Mutations may not touch the enrollment count.
func (r *BunRegistry) ApplyTransition(ctx context.Context, id uuid.UUID, mutation TransitionMutation) (*Course, error) {
	if id == uuid.Nil {
		return nil, courses.ErrCourseIDRequired
	}
	if mutation == nil {
		return nil, errors.New("catalog: transition mutation required")
	}

	var updated *Course
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		course := new(Course)
		if err := tx.NewSelect().Model(course).Where("?TableAlias.id = ?", id).Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return &NotFoundError{Resource: "course", Key: id.String()}
			}
			return fmt.Errorf("course registry error: %w", err)
		}

		enrollment := course.EnrollmentCount
		if err := mutation(course); err != nil {
			return err
		}
		if course.EnrollmentCount != enrollment {
			return courses.ErrEnrollmentReadOnly
		}
		if err := course.ValidateStatus(); err != nil {
			return err
		}

		course.UpdatedAt = r.now()
		if _, err := tx.NewUpdate().
			Model(course).
			Column("status", "pending_intent", "pending_reason", "deleted_at", "updated_at").
			WherePK().
			Exec(ctx); err != nil {
			return fmt.Errorf("course registry error: %w", err)
		}

		updated = course
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
