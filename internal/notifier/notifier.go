// Package notifier delivers desktop reminders through the mindtrack tray app,
// which listens on a localhost port recorded in its lockfile.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/mindtrack/internal/constants"
	"github.com/julianstephens/mindtrack/internal/logger"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// ErrTrayNotRunning is returned when no live tray process owns the lockfile.
var ErrTrayNotRunning = errors.New("mindtrack-tray is not running")

type Notifier struct {
	client     *http.Client
	retries    int
	retryDelay time.Duration
}

type WebhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

func New() *Notifier {
	return &Notifier{
		client:     &http.Client{Timeout: 5 * time.Second},
		retries:    constants.NotifyMaxRetries,
		retryDelay: constants.NotifyRetryDelay,
	}
}

// Notify shows text as a desktop notification, retrying transient delivery
// failures. A missing or stale tray lockfile is not retried.
func (n *Notifier) Notify(ctx context.Context, text string) error {
	dir, err := TrayAppConfigDir()
	if err != nil {
		return err
	}
	ep, err := readLockfile(filepath.Join(dir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	payload := WebhookPayload{Text: text, DurationMs: constants.NotificationDurationMs}
	for attempt := 1; ; attempt++ {
		err = n.send(ctx, ep, payload)
		if err == nil || attempt >= n.retries {
			return err
		}
		logger.Debug("Notification failed, retrying", "attempt", attempt, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(n.retryDelay):
		}
	}
}

// TrayAppConfigDir returns the directory holding the tray app's lockfile.
// The tray's settings.json may point it elsewhere.
func TrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	trayDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(trayDir, "settings.json"))
	if err != nil {
		return trayDir, nil
	}
	var store struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err != nil {
		logger.Warn("Ignoring unreadable tray settings", "error", err)
		return trayDir, nil
	}
	if dir := store.Settings.LockfileDir; dir != nil && *dir != "" {
		return *dir, nil
	}
	return trayDir, nil
}

type endpoint struct {
	port   int
	secret string
}

// readLockfile parses "port|pid|secret" and checks the pid belongs to the tray app.
func readLockfile(path string) (endpoint, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return endpoint{}, ErrTrayNotRunning
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return endpoint{}, errors.New("lockfile is malformed")
	}

	port, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return endpoint{}, errors.New("invalid port number in lockfile")
	}
	if port < 1 || port > 65535 {
		return endpoint{}, fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return endpoint{}, errors.New("invalid process ID in lockfile")
	}
	secret := strings.TrimSpace(parts[2])
	if secret == "" {
		return endpoint{}, errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return endpoint{}, ErrTrayNotRunning
	}
	if !strings.HasPrefix(process.Executable(), constants.TrayExecutablePrefix) {
		return endpoint{}, fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.TrayExecutablePrefix, process.Executable())
	}

	return endpoint{port: port, secret: secret}, nil
}

func (n *Notifier) send(ctx context.Context, ep endpoint, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("http://127.0.0.1:%d", ep.port)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Mindtrack-Secret", ep.secret)

	res, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	msg, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
}
