package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

func SubjectUUID(code string) uuid.UUID {
	return UUID("go-courses:subject:" + strings.ToLower(strings.TrimSpace(code)))
}

func GradeUUID(countryCode string, gradeNumber int) uuid.UUID {
	return UUID("go-courses:grade:" + strings.ToLower(strings.TrimSpace(countryCode)) + ":" + strconv.Itoa(gradeNumber))
}
