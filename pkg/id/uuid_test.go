package id

import (
	"strings"
	"testing"
)

func TestGetUUID(t *testing.T) {
	a := GetUUID()
	b := GetUUID()
	if a == b {
		t.Error("expected unique UUIDs")
	}
	if len(a) != 36 {
		t.Errorf("expected 36 char UUID, got %d", len(a))
	}
}

func TestGetUUIDWithoutDashes(t *testing.T) {
	id := GetUUIDWithoutDashes()
	if strings.Contains(id, "-") {
		t.Errorf("expected no dashes, got %s", id)
	}
	if len(id) != 32 {
		t.Errorf("expected 32 chars, got %d", len(id))
	}
}

func TestGetUild(t *testing.T) {
	a := GetUild()
	if len(a) != 26 {
		t.Errorf("expected 26 char ULID, got %q", a)
	}
}
