package catalog

import (
	"context"
	"fmt"

	"github.com/baitalhikma/go-courses/internal/identity"
	"github.com/uptrace/bun"
)

// DefaultSubjects is the subject taxonomy shipped with the module. IDs are
// derived deterministically from the code so repeated seeding is idempotent
// across environments.
func DefaultSubjects() []*Subject {
	entries := []struct {
		code   string
		nameEN string
		nameAR string
	}{
		{"math", "Mathematics", "الرياضيات"},
		{"physics", "Physics", "الفيزياء"},
		{"chemistry", "Chemistry", "الكيمياء"},
		{"biology", "Biology", "الأحياء"},
		{"arabic", "Arabic Language", "اللغة العربية"},
		{"english", "English Language", "اللغة الإنجليزية"},
		{"computer_science", "Computer Science", "علوم الحاسب"},
		{"islamic_studies", "Islamic Studies", "التربية الإسلامية"},
	}

	subjects := make([]*Subject, 0, len(entries))
	for _, e := range entries {
		subjects = append(subjects, &Subject{
			ID:     identity.SubjectUUID(e.code),
			Code:   e.code,
			NameEN: e.nameEN,
			NameAR: e.nameAR,
		})
	}
	return subjects
}

// DefaultGrades builds the grade ladder for a country, one entry per school
// year from 1 through 12.
func DefaultGrades(countryCode string) []*Grade {
	grades := make([]*Grade, 0, 12)
	for number := 1; number <= 12; number++ {
		grades = append(grades, &Grade{
			ID:          identity.GradeUUID(countryCode, number),
			CountryCode: countryCode,
			GradeNumber: number,
			NameEN:      fmt.Sprintf("Grade %d", number),
			NameAR:      fmt.Sprintf("الصف %d", number),
			Order:       number,
		})
	}
	return grades
}

// Seed inserts the default taxonomy, skipping rows that already exist.
func Seed(ctx context.Context, db *bun.DB, countryCodes ...string) error {
	if len(countryCodes) == 0 {
		countryCodes = []string{"SA"}
	}

	subjects := DefaultSubjects()
	if _, err := db.NewInsert().
		Model(&subjects).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx); err != nil {
		return fmt.Errorf("catalog: seed subjects: %w", err)
	}

	for _, country := range countryCodes {
		grades := DefaultGrades(country)
		if _, err := db.NewInsert().
			Model(&grades).
			On("CONFLICT (id) DO NOTHING").
			Exec(ctx); err != nil {
			return fmt.Errorf("catalog: seed grades for %s: %w", country, err)
		}
	}
	return nil
}
