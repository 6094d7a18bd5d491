package steps

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return data
}

func parseFixture(t *testing.T, name string) *Docmap {
	t.Helper()
	doc, err := Parse(readFixture(t, name))
	if err != nil {
		t.Fatalf("Parse(%s): %v", name, err)
	}
	return doc
}

func TestParse(t *testing.T) {
	doc := parseFixture(t, "2021.06.02.446694.docmap.json")

	if doc.FirstStepID != "_:b0" {
		t.Fatalf("expected first-step _:b0, got %q", doc.FirstStepID)
	}
	if len(doc.Steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(doc.Steps))
	}
	if doc.Type != "docmap" {
		t.Fatalf("expected type docmap, got %q", doc.Type)
	}
	if doc.Publisher["name"] != "eLife" {
		t.Fatalf("expected publisher name eLife, got %v", doc.Publisher["name"])
	}

	step := doc.Steps["_:b0"]
	if step == nil {
		t.Fatal("expected step _:b0 to be present")
	}
	if len(step.Actions) != 5 {
		t.Fatalf("expected 5 actions, got %d", len(step.Actions))
	}
	if len(step.Inputs) != 1 {
		t.Fatalf("expected 1 input, got %d", len(step.Inputs))
	}
	if step.Inputs[0].DOI != "10.1101/2021.06.02.446694" {
		t.Fatalf("unexpected input doi %q", step.Inputs[0].DOI)
	}
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{"first-step": "_:b0",`))
	if err == nil {
		t.Fatal("expected error for truncated JSON")
	}
	if !errors.Is(err, ErrMalformedDocmap) {
		t.Fatalf("expected ErrMalformedDocmap, got %v", err)
	}
	var malformed *MalformedDocmapError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedDocmapError, got %T", err)
	}
	if malformed.Cause == nil {
		t.Fatal("expected decode cause to be retained")
	}
}

func TestIsEmpty(t *testing.T) {
	var nilDoc *Docmap
	if !nilDoc.IsEmpty() {
		t.Fatal("nil docmap should be empty")
	}
	if !(&Docmap{}).IsEmpty() {
		t.Fatal("zero docmap should be empty")
	}
	if parseFixture(t, "2021.06.02.446694.docmap.json").IsEmpty() {
		t.Fatal("fixture docmap should not be empty")
	}
}
