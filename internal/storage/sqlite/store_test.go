package sqlite

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/mindtrack/internal/calendar"
	"github.com/julianstephens/mindtrack/internal/constants"
	"github.com/julianstephens/mindtrack/internal/models"
	"github.com/julianstephens/mindtrack/internal/storage"
)

const testUser = "user-1"

func setupTestSQLiteStore(t *testing.T) (*Store, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	if err := store.SaveProfile(models.Profile{ID: testUser, FullName: "Test User"}); err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}

	cleanup := func() {
		store.Close()
		os.RemoveAll(tempDir)
	}

	return store, cleanup
}

func checkIn(day string, mood int) models.RecoveryEntry {
	return models.RecoveryEntry{
		UserID:         testUser,
		EntryDate:      calendar.MustParse(day),
		RecoveryStatus: models.StatusSame,
		MoodScore:      models.IntPtr(mood),
	}
}

func TestInitWritesDefaultSettings(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if settings.Timezone != constants.DefaultTimezone {
		t.Errorf("expected timezone %q, got %q", constants.DefaultTimezone, settings.Timezone)
	}
	if settings.ReminderTime != constants.DefaultReminderTime {
		t.Errorf("expected reminder time %q, got %q", constants.DefaultReminderTime, settings.ReminderTime)
	}
	if settings.AIModel != constants.DefaultAIModel {
		t.Errorf("expected model %q, got %q", constants.DefaultAIModel, settings.AIModel)
	}

	settings.CurrentUserID = testUser
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	// Re-running init must keep the current user.
	if err := store.Init(); err != nil {
		t.Fatalf("failed to re-init: %v", err)
	}
	settings, err = store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if settings.CurrentUserID != testUser {
		t.Errorf("expected current user %q, got %q", testUser, settings.CurrentUserID)
	}
}

func TestLoadRequiresInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("expected error loading an uninitialized store")
	}
}

func TestUpsertRecoveryEntryKeepsOneEntryPerDay(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	first, err := store.UpsertRecoveryEntry(checkIn("2026-10-15", 4))
	if err != nil {
		t.Fatalf("failed to save entry: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected generated ID")
	}

	update := checkIn("2026-10-15", 8)
	update.ExerciseCompleted = true
	update.Notes = "went for a run"
	second, err := store.UpsertRecoveryEntry(update)
	if err != nil {
		t.Fatalf("failed to update entry: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected same ID %s, got %s", first.ID, second.ID)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("created_at changed from %v to %v", first.CreatedAt, second.CreatedAt)
	}

	entries, err := store.ListRecoveryEntries(testUser, false)
	if err != nil {
		t.Fatalf("failed to list entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	got := entries[0]
	if got.MoodScore == nil || *got.MoodScore != 8 {
		t.Errorf("expected mood 8, got %v", got.MoodScore)
	}
	if got.EnergyLevel != nil {
		t.Errorf("expected missing energy to stay nil, got %v", *got.EnergyLevel)
	}
	if !got.ExerciseCompleted || got.Notes != "went for a run" {
		t.Errorf("fields not updated: %+v", got)
	}
}

func TestListRecoveryEntriesOrdering(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	for _, day := range []string{"2026-10-13", "2026-10-15", "2026-10-10", "2026-10-14"} {
		if _, err := store.UpsertRecoveryEntry(checkIn(day, 5)); err != nil {
			t.Fatalf("failed to save %s: %v", day, err)
		}
	}

	all, err := store.ListRecoveryEntries(testUser, false)
	if err != nil {
		t.Fatalf("failed to list entries: %v", err)
	}
	if len(all) != 4 || all[0].EntryDate.String() != "2026-10-15" || all[3].EntryDate.String() != "2026-10-10" {
		t.Errorf("expected newest first, got %v", dates(all))
	}

	week, err := store.ListRecoveryEntriesBetween(testUser, calendar.MustParse("2026-10-12"), calendar.MustParse("2026-10-18"))
	if err != nil {
		t.Fatalf("failed to list week: %v", err)
	}
	want := []string{"2026-10-13", "2026-10-14", "2026-10-15"}
	if got := dates(week); len(got) != len(want) || got[0] != want[0] || got[2] != want[2] {
		t.Errorf("expected %v, got %v", want, got)
	}

	others, err := store.ListRecoveryEntries("someone-else", false)
	if err != nil {
		t.Fatalf("failed to list entries: %v", err)
	}
	if len(others) != 0 {
		t.Errorf("entries leaked across users: %v", dates(others))
	}
}

func dates(entries []models.RecoveryEntry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.EntryDate.String())
	}
	return out
}

func TestRecoveryEntrySoftDelete(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	day := calendar.MustParse("2026-10-15")
	original, err := store.UpsertRecoveryEntry(checkIn("2026-10-15", 6))
	if err != nil {
		t.Fatalf("failed to save entry: %v", err)
	}

	if err := store.DeleteRecoveryEntry(testUser, day); err != nil {
		t.Fatalf("failed to delete entry: %v", err)
	}
	if _, err := store.GetRecoveryEntry(testUser, day); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound for deleted entry, got %v", err)
	}
	if err := store.DeleteRecoveryEntry(testUser, day); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}

	withDeleted, err := store.ListRecoveryEntries(testUser, true)
	if err != nil {
		t.Fatalf("failed to list entries: %v", err)
	}
	if len(withDeleted) != 1 || withDeleted[0].DeletedAt == nil {
		t.Fatalf("expected one deleted entry, got %+v", withDeleted)
	}

	if err := store.RestoreRecoveryEntry(testUser, day); err != nil {
		t.Fatalf("failed to restore entry: %v", err)
	}
	restored, err := store.GetRecoveryEntry(testUser, day)
	if err != nil {
		t.Fatalf("failed to get restored entry: %v", err)
	}
	if restored.ID != original.ID || restored.DeletedAt != nil {
		t.Errorf("unexpected restored entry %+v", restored)
	}
}

func TestRestoreRecoveryEntryConflict(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	day := calendar.MustParse("2026-10-15")
	if _, err := store.UpsertRecoveryEntry(checkIn("2026-10-15", 3)); err != nil {
		t.Fatalf("failed to save entry: %v", err)
	}
	if err := store.DeleteRecoveryEntry(testUser, day); err != nil {
		t.Fatalf("failed to delete entry: %v", err)
	}

	// A new check-in for the same day is a fresh entry, not a resurrection.
	replacement, err := store.UpsertRecoveryEntry(checkIn("2026-10-15", 9))
	if err != nil {
		t.Fatalf("failed to save replacement: %v", err)
	}

	if err := store.RestoreRecoveryEntry(testUser, day); !errors.Is(err, storage.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}

	live, err := store.GetRecoveryEntry(testUser, day)
	if err != nil {
		t.Fatalf("failed to get live entry: %v", err)
	}
	if live.ID != replacement.ID {
		t.Errorf("expected replacement %s to stay live, got %s", replacement.ID, live.ID)
	}

	if err := store.RestoreRecoveryEntry(testUser, calendar.MustParse("2026-10-01")); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound restoring a day with no entries, got %v", err)
	}
}

func TestGoalLifecycle(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	goal := models.RecoveryGoal{
		ID:          "goal-1",
		UserID:      testUser,
		GoalType:    models.GoalWeekly,
		Title:       "Exercise",
		TargetValue: 3,
		Unit:        "sessions",
		StartDate:   calendar.MustParse("2026-10-12"),
		EndDate:     calendar.MustParse("2026-10-18"),
	}
	if err := store.AddGoal(goal); err != nil {
		t.Fatalf("failed to add goal: %v", err)
	}

	got, err := store.GetGoal(testUser, "goal-1")
	if err != nil {
		t.Fatalf("failed to get goal: %v", err)
	}
	got.AddProgress(3, got.CreatedAt)
	if err := store.UpdateGoal(got); err != nil {
		t.Fatalf("failed to update goal: %v", err)
	}

	goals, err := store.ListGoals(testUser)
	if err != nil {
		t.Fatalf("failed to list goals: %v", err)
	}
	if len(goals) != 1 || !goals[0].IsCompleted || goals[0].CurrentValue != 3 {
		t.Errorf("unexpected goals %+v", goals)
	}
	if goals[0].EndDate != goal.EndDate {
		t.Errorf("expected end date %s, got %s", goal.EndDate, goals[0].EndDate)
	}

	if _, err := store.GetGoal("someone-else", "goal-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected goal to be scoped to its user, got %v", err)
	}
	if err := store.DeleteGoal(testUser, "goal-1"); err != nil {
		t.Fatalf("failed to delete goal: %v", err)
	}
	if err := store.DeleteGoal(testUser, "goal-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMilestoneMetadata(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	withMeta := models.RecoveryMilestone{
		ID:            "m-1",
		UserID:        testUser,
		MilestoneType: models.MilestoneStreak,
		Title:         "7 day streak",
		AchievedDate:  calendar.MustParse("2026-10-15"),
		Metadata:      json.RawMessage(`{"days":7}`),
	}
	plain := models.RecoveryMilestone{
		ID:            "m-2",
		UserID:        testUser,
		MilestoneType: models.MilestoneCustom,
		Title:         "First therapy session",
		AchievedDate:  calendar.MustParse("2026-10-01"),
	}
	for _, m := range []models.RecoveryMilestone{plain, withMeta} {
		if err := store.AddMilestone(m); err != nil {
			t.Fatalf("failed to add milestone: %v", err)
		}
	}

	milestones, err := store.ListMilestones(testUser)
	if err != nil {
		t.Fatalf("failed to list milestones: %v", err)
	}
	if len(milestones) != 2 || milestones[0].ID != "m-1" {
		t.Fatalf("expected most recent first, got %+v", milestones)
	}
	if string(milestones[0].Metadata) != `{"days":7}` {
		t.Errorf("metadata = %s", milestones[0].Metadata)
	}
	if milestones[1].Metadata != nil {
		t.Errorf("expected nil metadata, got %s", milestones[1].Metadata)
	}
}

func TestMoodEntries(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	day := calendar.MustParse("2026-10-15")
	entries := []models.MoodEntry{
		{ID: "mood-1", UserID: testUser, MoodLevel: 4, Emotions: []string{"anxious", "tired"}, Triggers: []string{"work"}, EntryDate: day},
		{ID: "mood-2", UserID: testUser, MoodLevel: 7, EntryDate: day},
	}
	for i, m := range entries {
		m.CreatedAt = day.Time().Add(time.Duration(i) * time.Hour)
		if err := store.AddMoodEntry(m); err != nil {
			t.Fatalf("failed to add mood entry: %v", err)
		}
	}

	latest, err := store.ListMoodEntries(testUser, 1)
	if err != nil {
		t.Fatalf("failed to list mood entries: %v", err)
	}
	if len(latest) != 1 || latest[0].ID != "mood-2" {
		t.Fatalf("expected only the latest entry, got %+v", latest)
	}
	if len(latest[0].Emotions) != 0 {
		t.Errorf("expected no emotions, got %v", latest[0].Emotions)
	}

	all, err := store.ListMoodEntries(testUser, 0)
	if err != nil {
		t.Fatalf("failed to list mood entries: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(all))
	}
	first := all[1]
	if len(first.Emotions) != 2 || first.Emotions[1] != "tired" || first.Triggers[0] != "work" {
		t.Errorf("tags not round-tripped: %+v", first)
	}
}

func TestJournalEntries(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	entry := models.JournalEntry{
		ID:        "j-1",
		UserID:    testUser,
		Title:     "Rough day",
		Content:   "Work was a lot.",
		Mood:      models.JournalLow,
		EntryDate: calendar.MustParse("2026-10-15"),
	}
	if err := store.AddJournalEntry(entry); err != nil {
		t.Fatalf("failed to add journal entry: %v", err)
	}

	entry.Mood = models.JournalOkay
	entry.Content = "Work was a lot, but the evening was calm."
	if err := store.UpdateJournalEntry(entry); err != nil {
		t.Fatalf("failed to update journal entry: %v", err)
	}

	got, err := store.GetJournalEntry(testUser, "j-1")
	if err != nil {
		t.Fatalf("failed to get journal entry: %v", err)
	}
	if got.Mood != models.JournalOkay || got.Content != entry.Content {
		t.Errorf("journal entry not updated: %+v", got)
	}

	if err := store.DeleteJournalEntry(testUser, "j-1"); err != nil {
		t.Fatalf("failed to delete journal entry: %v", err)
	}
	list, err := store.ListJournalEntries(testUser)
	if err != nil {
		t.Fatalf("failed to list journal entries: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected no journal entries, got %d", len(list))
	}
}

func TestChatMessagesUpdateConversation(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	conv := models.Conversation{ID: "c-1", UserID: testUser, Title: "Sleep"}
	if err := store.CreateConversation(conv); err != nil {
		t.Fatalf("failed to create conversation: %v", err)
	}

	sent := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	msgs := []models.ChatMessage{
		{ID: "b", ConversationID: "c-1", Sender: models.SenderUser, Content: "hi", CreatedAt: sent},
		{ID: "a", ConversationID: "c-1", Sender: models.SenderAI, Content: "hello", CreatedAt: sent.Add(time.Second)},
	}
	for _, m := range msgs {
		if err := store.AddChatMessage(m); err != nil {
			t.Fatalf("failed to add message: %v", err)
		}
	}

	got, err := store.GetConversation(testUser, "c-1")
	if err != nil {
		t.Fatalf("failed to get conversation: %v", err)
	}
	if got.MessageCount != 2 {
		t.Errorf("expected message count 2, got %d", got.MessageCount)
	}

	listed, err := store.ListChatMessages("c-1")
	if err != nil {
		t.Fatalf("failed to list messages: %v", err)
	}
	if len(listed) != 2 || listed[0].Content != "hi" || listed[1].Sender != models.SenderAI {
		t.Errorf("messages out of order: %+v", listed)
	}

	err = store.AddChatMessage(models.ChatMessage{ID: "x", ConversationID: "missing", Sender: models.SenderUser, Content: "?"})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown conversation, got %v", err)
	}
}

func TestProfiles(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	original, err := store.GetProfile(testUser)
	if err != nil {
		t.Fatalf("failed to get profile: %v", err)
	}

	original.Location = "Pune"
	original.DateOfBirth = calendar.MustParse("1995-04-02")
	original.UpdatedAt = original.UpdatedAt.Add(time.Hour)
	if err := store.SaveProfile(original); err != nil {
		t.Fatalf("failed to save profile: %v", err)
	}

	got, err := store.GetProfile(testUser)
	if err != nil {
		t.Fatalf("failed to get profile: %v", err)
	}
	if got.Location != "Pune" || got.DateOfBirth.String() != "1995-04-02" {
		t.Errorf("profile not updated: %+v", got)
	}
	if !got.CreatedAt.Equal(original.CreatedAt) {
		t.Errorf("created_at changed from %v to %v", original.CreatedAt, got.CreatedAt)
	}

	profiles, err := store.ListProfiles()
	if err != nil {
		t.Fatalf("failed to list profiles: %v", err)
	}
	if len(profiles) != 1 {
		t.Errorf("expected 1 profile, got %d", len(profiles))
	}
}
