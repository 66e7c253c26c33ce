package jsonfile_test

import (
	"strings"
	"testing"

	"github.com/cbwinslow/lazylocker/pkg/jsonfile"
)

func TestParseFlatObjectSortedByName(t *testing.T) {
	t.Parallel()

	input := `{"ZETA": "z", "ALPHA": "a", "MID": "m"}`
	entries, err := jsonfile.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	want := []string{"ALPHA", "MID", "ZETA"}
	for i, name := range want {
		if entries[i].Name != name {
			t.Errorf("entry %d: got %q, want %q", i, entries[i].Name, name)
		}
	}
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	if _, err := jsonfile.Parse(strings.NewReader("not json")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestParseEmptyObject(t *testing.T) {
	t.Parallel()

	entries, err := jsonfile.Parse(strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected 0 entries, got %d", len(entries))
	}
}
