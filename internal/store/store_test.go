package store

import (
	"context"
	"path/filepath"
	"testing"

	"studytrack/internal/metrics"
	"studytrack/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	st, err := Open(filepath.Join(dir, "studytrack.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestInsertAndListSessions(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	first := metrics.NewSession("2025-01-10", "Matematik", "Cebir", 15, 3, 2, 20, 1736500000000)
	second := metrics.NewSession("2025-01-11", "Türkçe", "Noktalama", 10, 5, 5, 20, 1736590000000)
	key, err := st.InsertSession(ctx, first)
	if err != nil {
		t.Fatalf("insert session: %v", err)
	}
	if key != "study-log-1736500000000" {
		t.Fatalf("unexpected session key: %s", key)
	}
	if _, err := st.InsertSession(ctx, second); err != nil {
		t.Fatalf("insert session: %v", err)
	}

	sessions, err := st.ListSessions(ctx)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].Subject != "Matematik" || sessions[0].NetScore != 14 {
		t.Fatalf("unexpected first session: %+v", sessions[0])
	}
	if sessions[1].Topic != "Noktalama" {
		t.Fatalf("unexpected second session: %+v", sessions[1])
	}
}

func TestListSessionsRepairsLegacyRecords(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	// Raw record predating the derived-fields schema.
	legacy := `{"date":"2025-01-10","subject":"Matematik","topic":"Cebir","correct":15,"wrong":3,"blank":2,"total":20,"timestamp":1736500000000}`
	if err := st.Set(ctx, SessionPrefix+"1736500000000", legacy); err != nil {
		t.Fatalf("set legacy record: %v", err)
	}
	if err := st.Set(ctx, SessionPrefix+"1736500000001", "not json"); err != nil {
		t.Fatalf("set invalid record: %v", err)
	}

	sessions, err := st.ListSessions(ctx)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected invalid record skipped, got %d sessions", len(sessions))
	}
	if sessions[0].NetScore != 14 {
		t.Fatalf("expected repaired net 14, got %f", sessions[0].NetScore)
	}
	if !sessions[0].MetTarget {
		t.Fatalf("expected repaired metTarget true")
	}
}

func TestListSessionsIgnoresOtherNamespaces(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.SaveGoals(ctx, model.DefaultGoals()); err != nil {
		t.Fatalf("save goals: %v", err)
	}
	if err := st.SaveSettings(ctx, model.DefaultSettings()); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	sessions, err := st.ListSessions(ctx)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("expected no sessions, got %d", len(sessions))
	}
}

func TestLoadGoalsDefaults(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	goals, err := st.LoadGoals(ctx)
	if err != nil {
		t.Fatalf("load goals: %v", err)
	}
	if goals.TotalNetGoal != 200 || goals.TargetDate != "2025-06-15" || goals.DailyStudyGoal != 100 {
		t.Fatalf("unexpected default goals: %+v", goals)
	}
	if goals.SubjectGoals["Matematik"] != 15 {
		t.Fatalf("unexpected default subject goals: %+v", goals.SubjectGoals)
	}
}

func TestLoadGoalsFallsBackOnMalformedRecord(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.Set(ctx, GoalsKey, "{broken"); err != nil {
		t.Fatalf("set malformed goals: %v", err)
	}
	goals, err := st.LoadGoals(ctx)
	if err != nil {
		t.Fatalf("load goals: %v", err)
	}
	if goals.TotalNetGoal != 200 {
		t.Fatalf("expected defaults for malformed record, got %+v", goals)
	}
}

func TestSaveGoalsRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	goals := model.DefaultGoals()
	goals.TotalNetGoal = 180
	goals.SubjectGoals["İnkılap"] = 17
	if err := st.SaveGoals(ctx, goals); err != nil {
		t.Fatalf("save goals: %v", err)
	}
	loaded, err := st.LoadGoals(ctx)
	if err != nil {
		t.Fatalf("load goals: %v", err)
	}
	if loaded.TotalNetGoal != 180 || loaded.SubjectGoals["İnkılap"] != 17 {
		t.Fatalf("unexpected goals after round trip: %+v", loaded)
	}
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	settings := model.DefaultSettings()
	settings.DailyReminder = false
	settings.ReminderTime = "21:30"
	if err := st.SaveSettings(ctx, settings); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	loaded, err := st.LoadSettings(ctx)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if loaded.DailyReminder || loaded.ReminderTime != "21:30" {
		t.Fatalf("unexpected settings after round trip: %+v", loaded)
	}
}

func TestClearAllRemovesEveryNamespace(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	sess := metrics.NewSession("2025-01-10", "Matematik", "Cebir", 10, 0, 0, 20, 1736500000000)
	if _, err := st.InsertSession(ctx, sess); err != nil {
		t.Fatalf("insert session: %v", err)
	}
	if err := st.SaveGoals(ctx, model.DefaultGoals()); err != nil {
		t.Fatalf("save goals: %v", err)
	}
	if err := st.SaveSettings(ctx, model.DefaultSettings()); err != nil {
		t.Fatalf("save settings: %v", err)
	}

	if err := st.ClearAll(ctx); err != nil {
		t.Fatalf("clear all: %v", err)
	}
	sessions, err := st.ListSessions(ctx)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("expected no sessions after clear, got %d", len(sessions))
	}
	goals, err := st.LoadGoals(ctx)
	if err != nil {
		t.Fatalf("load goals: %v", err)
	}
	if goals.TotalNetGoal != 200 {
		t.Fatalf("expected defaults after clear, got %+v", goals)
	}
	keys, err := st.ListKeys(ctx, "")
	if err != nil {
		t.Fatalf("list keys: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("expected empty store, got keys %v", keys)
	}
}
