// Package assistant wraps the generative model behind mindtrack's support
// chat and mood insights. Prompt construction lives here; the model call is
// behind the Generator interface so it can be replaced in tests.
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/mindtrack/internal/logger"
	"github.com/julianstephens/mindtrack/internal/models"
	"github.com/julianstephens/mindtrack/internal/recovery"
)

// ErrNoCandidates is returned when the model produces no usable text,
// including when every candidate was blocked by a safety filter.
var ErrNoCandidates = errors.New("no response generated by the assistant")

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one message of a conversation as sent to the model.
type Turn struct {
	Role Role
	Text string
}

// Generator produces the model's next reply to a conversation.
type Generator interface {
	Generate(ctx context.Context, turns []Turn) (string, error)
}

type Assistant struct {
	gen Generator
}

func New(gen Generator) *Assistant {
	return &Assistant{gen: gen}
}

// HistoryTurns converts stored chat messages into model turns, oldest first.
func HistoryTurns(messages []models.ChatMessage) []Turn {
	turns := make([]Turn, 0, len(messages))
	for _, m := range messages {
		role := RoleUser
		if m.Sender == models.SenderAI {
			role = RoleModel
		}
		turns = append(turns, Turn{Role: role, Text: m.Content})
	}
	return turns
}

func (a *Assistant) generate(ctx context.Context, turns []Turn) (string, error) {
	reply, err := a.gen.Generate(ctx, turns)
	if err != nil {
		return "", err
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", ErrNoCandidates
	}
	return reply, nil
}

// Support answers a message in the supportive, culturally aware register used
// for everyday chat. history holds earlier turns of the same conversation;
// topic is a short description of what the conversation is about.
func (a *Assistant) Support(ctx context.Context, message, topic string, history []Turn) (string, error) {
	turns := append(append([]Turn{}, history...), Turn{Role: RoleUser, Text: SupportPrompt(message, topic)})
	logger.Debug("Requesting support reply", "history", len(history))
	return a.generate(ctx, turns)
}

// Crisis answers a message that shows signs of acute distress. The reply is
// generated from the message alone, without conversation history.
func (a *Assistant) Crisis(ctx context.Context, message string) (string, error) {
	logger.Debug("Requesting crisis reply")
	return a.generate(ctx, []Turn{{Role: RoleUser, Text: CrisisPrompt(message)}})
}

// insightRecord is the per-day shape sent to the model for analysis.
type insightRecord struct {
	Date       string   `json:"date"`
	Mood       int      `json:"mood,omitempty"`
	Energy     int      `json:"energy,omitempty"`
	Sleep      int      `json:"sleep,omitempty"`
	Status     string   `json:"status,omitempty"`
	Percentage int      `json:"wellness_percentage,omitempty"`
	Emotions   []string `json:"emotions,omitempty"`
	Triggers   []string `json:"triggers,omitempty"`
	Note       string   `json:"note,omitempty"`
}

// MoodInsights asks the model to analyse recent check-ins and mood logs.
func (a *Assistant) MoodInsights(ctx context.Context, entries []models.RecoveryEntry, moods []models.MoodEntry) (string, error) {
	if len(entries) == 0 && len(moods) == 0 {
		return "", fmt.Errorf("no check-ins or mood logs to analyse yet")
	}

	records := make([]insightRecord, 0, len(entries)+len(moods))
	for _, e := range entries {
		s := recovery.ScoresWithDefaults(e)
		records = append(records, insightRecord{
			Date:       e.EntryDate.String(),
			Mood:       s.Mood,
			Energy:     s.Energy,
			Sleep:      s.Sleep,
			Status:     string(e.RecoveryStatus),
			Percentage: recovery.DailyPercentage(e),
			Note:       e.Notes,
		})
	}
	for _, m := range moods {
		records = append(records, insightRecord{
			Date:     m.EntryDate.String(),
			Mood:     m.MoodLevel,
			Emotions: m.Emotions,
			Triggers: m.Triggers,
			Note:     m.Thoughts,
		})
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode mood data: %w", err)
	}
	return a.generate(ctx, []Turn{{Role: RoleUser, Text: InsightsPrompt(string(data))}})
}
