package catalog

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewCourseRepository(db *bun.DB) repository.Repository[*Course] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Course]{
		NewRecord: func() *Course { return &Course{} },
		GetID: func(c *Course) uuid.UUID {
			return c.ID
		},
		SetID: func(c *Course, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(c *Course) string {
			return c.Slug
		},
	})
}

func NewSubjectRepository(db *bun.DB) repository.Repository[*Subject] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Subject]{
		NewRecord: func() *Subject { return &Subject{} },
		GetID: func(s *Subject) uuid.UUID {
			return s.ID
		},
		SetID: func(s *Subject, id uuid.UUID) {
			s.ID = id
		},
		GetIdentifier: func() string {
			return "code"
		},
		GetIdentifierValue: func(s *Subject) string {
			return s.Code
		},
	})
}

func NewGradeRepository(db *bun.DB) repository.Repository[*Grade] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Grade]{
		NewRecord: func() *Grade { return &Grade{} },
		GetID: func(g *Grade) uuid.UUID {
			return g.ID
		},
		SetID: func(g *Grade, id uuid.UUID) {
			g.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(g *Grade) string {
			if g == nil {
				return ""
			}
			return g.ID.String()
		},
	})
}
