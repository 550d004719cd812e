package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/mindtrack/internal/logger"
	"github.com/julianstephens/mindtrack/internal/storage"
)

// Format formats an error message with a consistent "Error: " prefix.
// Missing-record and conflict errors get a hint on what to do next.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	switch {
	case stderrors.Is(err, storage.ErrNotFound):
		msg += "\nHint: use the matching 'list' command to see what exists."
	case stderrors.Is(err, storage.ErrConflict):
		msg += "\nHint: a live record already exists; update it instead."
	}
	return msg
}

// Wrap annotates err with the action that failed. A nil err stays nil.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
