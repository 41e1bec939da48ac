package main

import (
	"testing"

	"jailprof/internal/profile"
)

func TestUniqueLines(t *testing.T) {
	left, _ := profile.Parse("# left\ncaps.drop all\nnet none\nseccomp\n")
	right, _ := profile.Parse("# right\n\ncaps.drop all\nnonewprivs\nseccomp\n")

	unique := uniqueLines(left, right)
	if len(unique) != 1 {
		t.Fatalf("expected 1 unique line, got %d", len(unique))
	}
	if got := unique[0].Content.String(); got != "net none" {
		t.Errorf("unique line = %q, want %q", got, "net none")
	}

	unique = uniqueLines(right, left)
	if len(unique) != 1 {
		t.Fatalf("expected 1 unique line, got %d", len(unique))
	}
	if got := unique[0].Content.String(); got != "nonewprivs" {
		t.Errorf("unique line = %q, want %q", got, "nonewprivs")
	}
}

func TestUniqueLines_IgnoresCommentsAndBlanks(t *testing.T) {
	left, _ := profile.Parse("# only here\n\nquiet\n")
	right, _ := profile.Parse("quiet\n")

	if unique := uniqueLines(left, right); len(unique) != 0 {
		t.Errorf("expected comments and blanks to be ignored, got %v", unique)
	}
}

func TestUniqueLines_Identical(t *testing.T) {
	left, _ := profile.Parse("caps.drop all\nseccomp\n")
	right, _ := profile.Parse("seccomp\ncaps.drop all\n")

	// Order does not matter for uniqueness, only containment.
	if unique := uniqueLines(left, right); len(unique) != 0 {
		t.Errorf("expected no unique lines, got %v", unique)
	}
}
