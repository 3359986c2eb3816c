package catalog

import (
	"time"

	"github.com/baitalhikma/go-courses/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Course is the canonical catalog record for a teacher-authored course.
//
// The lifecycle workflow is the sole writer of Status, PendingIntent and
// PendingReason; the catalog owns every other field and the record lifetime.
// EnrollmentCount is authoritative on the backend and advisory here: the
// workflow only ever reads it.
type Course struct {
	bun.BaseModel `bun:"table:courses,alias:crs"`

	ID              uuid.UUID            `bun:",pk,type:uuid"                  json:"id"`
	TeacherID       uuid.UUID            `bun:"teacher_id,notnull,type:uuid"   json:"teacher_id"`
	SubjectID       uuid.UUID            `bun:"subject_id,notnull,type:uuid"   json:"subject_id"`
	GradeID         *uuid.UUID           `bun:"grade_id,type:uuid,nullzero"    json:"grade_id,omitempty"`
	Slug            string               `bun:"slug,notnull"                   json:"slug"`
	TitleEN         string               `bun:"title_en,notnull"               json:"title_en"`
	TitleAR         string               `bun:"title_ar,notnull"               json:"title_ar"`
	Description     *string              `bun:"description"                    json:"description,omitempty"`
	HourlyPrice     float64              `bun:"hourly_price,notnull,default:0" json:"hourly_price"`
	Status          domain.Status        `bun:"status,notnull,default:'draft'" json:"status"`
	PendingIntent   domain.PendingIntent `bun:"pending_intent,nullzero"        json:"pending_intent,omitempty"`
	PendingReason   *string              `bun:"pending_reason"                 json:"pending_reason,omitempty"`
	EnrollmentCount int                  `bun:"enrollment_count,notnull,default:0" json:"enrollment_count"`
	DeletedAt       *time.Time           `bun:"deleted_at,nullzero"            json:"deleted_at,omitempty"`
	CreatedAt       time.Time            `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time            `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Subject *Subject `bun:"rel:belongs-to,join:subject_id=id" json:"subject,omitempty"`
	Grade   *Grade   `bun:"rel:belongs-to,join:grade_id=id"   json:"grade,omitempty"`
}

// ValidateStatus checks the status/pending-intent pairing invariant.
func (c *Course) ValidateStatus() error {
	switch c.Status {
	case domain.StatusPending:
		if c.PendingIntent == "" {
			return ErrPendingIntentRequired
		}
	case domain.StatusDraft, domain.StatusPublished, domain.StatusDeleted:
		if c.PendingIntent != "" {
			return ErrPendingIntentForbidden
		}
	default:
		return ErrStatusInvalid
	}
	return nil
}

// Subject is a lookup record for the subjects teachers can offer.
type Subject struct {
	bun.BaseModel `bun:"table:subjects,alias:sub"`

	ID     uuid.UUID `bun:",pk,type:uuid"      json:"id"`
	Code   string    `bun:"code,notnull"       json:"code"`
	NameEN string    `bun:"name_en,notnull"    json:"name_en"`
	NameAR string    `bun:"name_ar,notnull"    json:"name_ar"`
}

// Grade is a lookup record for school grades, ordered per country.
type Grade struct {
	bun.BaseModel `bun:"table:grades,alias:grd"`

	ID          uuid.UUID `bun:",pk,type:uuid"          json:"id"`
	CountryCode string    `bun:"country_code,notnull"   json:"country_code"`
	GradeNumber int       `bun:"grade_number,notnull"   json:"grade_number"`
	NameEN      string    `bun:"name_en,notnull"        json:"name_en"`
	NameAR      string    `bun:"name_ar,notnull"        json:"name_ar"`
	Order       int       `bun:"sort_order,notnull"     json:"order"`
}

// TransitionMutation rewrites the lifecycle fields of a course inside a
// registry transaction. Mutations must only touch Status, PendingIntent,
// PendingReason and DeletedAt.
type TransitionMutation func(*Course) error
