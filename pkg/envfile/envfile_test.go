package envfile_test

import (
	"strings"
	"testing"

	"github.com/cbwinslow/lazylocker/pkg/envfile"
)

func TestParseIgnoresBlankAndCommentLines(t *testing.T) {
	t.Parallel()

	input := "A=1\n\n# a comment\nB=\"two\"\n"
	entries, err := envfile.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "A" || entries[0].Value != "1" {
		t.Errorf("got %+v, want A=1", entries[0])
	}
	if entries[1].Name != "B" || entries[1].Value != "two" {
		t.Errorf("got %+v, want B=two", entries[1])
	}
}

func TestParseStripsOneLayerOfQuotes(t *testing.T) {
	t.Parallel()

	entries, err := envfile.Parse(strings.NewReader(`NAME='value with spaces'` + "\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if entries[0].Value != "value with spaces" {
		t.Errorf("got %q", entries[0].Value)
	}
}

func TestParseSplitsAtFirstEquals(t *testing.T) {
	t.Parallel()

	entries, err := envfile.Parse(strings.NewReader("URL=https://example.com/a=b\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if entries[0].Value != "https://example.com/a=b" {
		t.Errorf("got %q", entries[0].Value)
	}
}

func TestParseAllowsEmptyValue(t *testing.T) {
	t.Parallel()

	entries, err := envfile.Parse(strings.NewReader("EMPTY=\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(entries) != 1 || entries[0].Value != "" {
		t.Errorf("got %+v, want EMPTY= with empty value", entries)
	}
}

func TestParseTrimsSurroundingWhitespace(t *testing.T) {
	t.Parallel()

	entries, err := envfile.Parse(strings.NewReader("  NAME  =  value  \n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if entries[0].Name != "NAME" || entries[0].Value != "value" {
		t.Errorf("got %+v", entries[0])
	}
}
