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

// RunUUID identifies a processing run for a docmap at a point in time.
func RunUUID(docmapID, startedAt string) uuid.UUID {
	return UUID("go-docmap:run:" + strings.TrimSpace(docmapID) + ":" + strings.TrimSpace(startedAt))
}

// ItemUUID identifies one content item outcome within a run.
func ItemUUID(runID uuid.UUID, position int) uuid.UUID {
	return UUID("go-docmap:item:" + runID.String() + ":" + strconv.Itoa(position))
}
