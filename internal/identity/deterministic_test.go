package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDDeterministic(t *testing.T) {
	a := UUID("go-docmap:run:10.1101/2021.06.02.446694:2024-01-02")
	b := UUID("go-docmap:run:10.1101/2021.06.02.446694:2024-01-02")
	if a != b {
		t.Fatalf("expected stable UUID, got %s and %s", a, b)
	}
	if a == uuid.Nil {
		t.Fatal("expected non-nil UUID")
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if got := UUID("   "); got != uuid.Nil {
		t.Fatalf("expected uuid.Nil for blank key, got %s", got)
	}
}

func TestItemUUIDDistinctPositions(t *testing.T) {
	run := RunUUID("docmap-1", "2024-01-02T00:00:00Z")
	if ItemUUID(run, 0) == ItemUUID(run, 1) {
		t.Fatal("expected distinct item UUIDs per position")
	}
}
