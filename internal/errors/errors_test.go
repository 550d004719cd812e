package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/julianstephens/mindtrack/internal/storage"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "missing record",
			err:      fmt.Errorf("goal abc: %w", storage.ErrNotFound),
			expected: "Error: goal abc: record not found: sql: no rows in result set\nHint: use the matching 'list' command to see what exists.",
		},
		{
			name:     "conflict",
			err:      fmt.Errorf("recovery entry for 2026-10-15: %w", storage.ErrConflict),
			expected: "Error: recovery entry for 2026-10-15: conflicting record exists\nHint: a live record already exists; update it instead.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Format(tt.err); result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "load entries") != nil {
		t.Error("Wrap(nil) should be nil")
	}

	err := Wrap(storage.ErrNotFound, "load entries")
	if !strings.HasPrefix(err.Error(), "failed to load entries: ") {
		t.Errorf("unexpected message %q", err)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		t.Error("wrapped error should match storage.ErrNotFound")
	}
}
