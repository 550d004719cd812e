package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/julianstephens/mindtrack/internal/calendar"
	"github.com/julianstephens/mindtrack/internal/models"
)

type fakeGenerator struct {
	reply string
	err   error
	calls [][]Turn
}

func (f *fakeGenerator) Generate(_ context.Context, turns []Turn) (string, error) {
	f.calls = append(f.calls, turns)
	return f.reply, f.err
}

func TestSupportSendsHistoryThenPrompt(t *testing.T) {
	gen := &fakeGenerator{reply: "  You're doing well.  "}
	a := New(gen)

	history := HistoryTurns([]models.ChatMessage{
		{Sender: models.SenderUser, Content: "I had a rough week"},
		{Sender: models.SenderAI, Content: "I'm sorry to hear that."},
	})

	reply, err := a.Support(context.Background(), "Exams are stressing me", "Exam stress", history)
	require.NoError(t, err)
	assert.Equal(t, "You're doing well.", reply)

	require.Len(t, gen.calls, 1)
	turns := gen.calls[0]
	require.Len(t, turns, 3)
	assert.Equal(t, RoleUser, turns[0].Role)
	assert.Equal(t, RoleModel, turns[1].Role)
	assert.Equal(t, RoleUser, turns[2].Role)
	assert.Contains(t, turns[2].Text, "Context: Exam stress")
	assert.Contains(t, turns[2].Text, "User message: Exams are stressing me")
}

func TestSupportDefaultsTopic(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	_, err := New(gen).Support(context.Background(), "hi", "", nil)
	require.NoError(t, err)
	assert.Contains(t, gen.calls[0][0].Text, "Context: General mental health support")
}

func TestCrisisIgnoresHistory(t *testing.T) {
	gen := &fakeGenerator{reply: "Please reach out to a helpline."}
	reply, err := New(gen).Crisis(context.Background(), "I can't go on")
	require.NoError(t, err)
	assert.NotEmpty(t, reply)

	require.Len(t, gen.calls[0], 1)
	assert.Contains(t, gen.calls[0][0].Text, "crisis support AI assistant")
	assert.Contains(t, gen.calls[0][0].Text, "I can't go on")
}

func TestEmptyReplyIsNoCandidates(t *testing.T) {
	_, err := New(&fakeGenerator{reply: "   "}).Crisis(context.Background(), "help")
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestGeneratorErrorPropagates(t *testing.T) {
	boom := errors.New("quota exceeded")
	_, err := New(&fakeGenerator{err: boom}).Support(context.Background(), "hi", "", nil)
	assert.ErrorIs(t, err, boom)
}

func TestMoodInsightsEncodesData(t *testing.T) {
	gen := &fakeGenerator{reply: "Your sleep is improving."}
	entries := []models.RecoveryEntry{{
		EntryDate:         calendar.MustParse("2026-10-14"),
		RecoveryStatus:    models.StatusBetter,
		MoodScore:         models.IntPtr(7),
		ExerciseCompleted: true,
	}}
	moods := []models.MoodEntry{{
		EntryDate: calendar.MustParse("2026-10-15"),
		MoodLevel: 4,
		Emotions:  []string{"anxious"},
	}}

	_, err := New(gen).MoodInsights(context.Background(), entries, moods)
	require.NoError(t, err)

	prompt := gen.calls[0][0].Text
	assert.Contains(t, prompt, `"date": "2026-10-14"`)
	assert.Contains(t, prompt, `"wellness_percentage": 62`)
	assert.Contains(t, prompt, `"anxious"`)
}

func TestMoodInsightsRequiresData(t *testing.T) {
	gen := &fakeGenerator{reply: "unused"}
	_, err := New(gen).MoodInsights(context.Background(), nil, nil)
	assert.Error(t, err)
	assert.Empty(t, gen.calls)
}

func TestGenerationConfig(t *testing.T) {
	cfg := generationConfig(Config{Temperature: 0.4, MaxOutputTokens: 256})

	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.4, *cfg.Temperature, 1e-6)
	assert.InDelta(t, 40, *cfg.TopK, 1e-6)
	assert.InDelta(t, 0.95, *cfg.TopP, 1e-6)
	assert.Equal(t, int32(256), cfg.MaxOutputTokens)
	require.Len(t, cfg.SafetySettings, 4)
	for _, s := range cfg.SafetySettings {
		assert.Equal(t, genai.HarmBlockThresholdBlockMediumAndAbove, s.Threshold)
	}

	defaults := generationConfig(Config{})
	assert.InDelta(t, 0.7, *defaults.Temperature, 1e-6)
	assert.Equal(t, int32(1024), defaults.MaxOutputTokens)
}

func TestToContentsRoles(t *testing.T) {
	contents := toContents([]Turn{{Role: RoleUser, Text: "a"}, {Role: RoleModel, Text: "b"}})
	require.Len(t, contents, 2)
	assert.Equal(t, string(genai.RoleUser), contents[0].Role)
	assert.Equal(t, string(genai.RoleModel), contents[1].Role)
}

func TestConfigFromSettings(t *testing.T) {
	cfg := ConfigFromSettings(models.Settings{AITemperature: 0.2}, "key")
	assert.Equal(t, "key", cfg.APIKey)
	assert.Equal(t, "gemini-1.5-flash", cfg.Model)
	assert.InDelta(t, 0.2, cfg.Temperature, 1e-9)
	assert.Equal(t, 1024, cfg.MaxOutputTokens)
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), Config{})
	assert.Error(t, err)
}
