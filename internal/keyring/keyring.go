// Package keyring keeps mindtrack's secrets in the OS keyring: the
// PostgreSQL connection string and the Gemini API key.
package keyring

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/mindtrack/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

func get(account string) (string, error) {
	secret, err := keyring.Get(constants.AppName, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

func set(account, label, secret string) error {
	if secret == "" {
		return fmt.Errorf("%s cannot be empty", label)
	}
	if err := keyring.Set(constants.AppName, account, secret); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", label, err)
	}
	return nil
}

func remove(account string) error {
	if err := keyring.Delete(constants.AppName, account); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// GetConnectionString retrieves the database connection string from the OS keyring.
// Returns ErrNotFound if no credentials are stored.
func GetConnectionString() (string, error) {
	return get(constants.DefaultKeyringUser)
}

// SetConnectionString stores the database connection string in the OS keyring.
func SetConnectionString(connStr string) error {
	return set(constants.DefaultKeyringUser, "connection string", connStr)
}

// DeleteConnectionString removes the database connection string from the OS keyring.
func DeleteConnectionString() error {
	return remove(constants.DefaultKeyringUser)
}

// GetGeminiAPIKey retrieves the assistant API key from the OS keyring.
func GetGeminiAPIKey() (string, error) {
	return get(constants.GeminiKeyringUser)
}

func SetGeminiAPIKey(key string) error {
	return set(constants.GeminiKeyringUser, "API key", key)
}

func DeleteGeminiAPIKey() error {
	return remove(constants.GeminiKeyringUser)
}

// ResolveGeminiAPIKey prefers the GEMINI_API_KEY environment variable and
// falls back to the keyring.
func ResolveGeminiAPIKey() (string, error) {
	if key := os.Getenv(constants.EnvGeminiAPIKey); key != "" {
		return key, nil
	}
	key, err := GetGeminiAPIKey()
	if errors.Is(err, ErrNotFound) {
		return "", fmt.Errorf("no Gemini API key configured: set %s or run 'mindtrack keyring set-api-key'", constants.EnvGeminiAPIKey)
	}
	return key, err
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
