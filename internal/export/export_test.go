package export

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"studytrack/internal/metrics"
	"studytrack/internal/model"
	"studytrack/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "studytrack.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestBuildEmptyStore(t *testing.T) {
	st := openTestStore(t)
	now := time.Date(2025, 1, 20, 15, 4, 5, 0, time.UTC)

	bundle, err := Build(context.Background(), st, now)
	if err != nil {
		t.Fatalf("build export: %v", err)
	}
	if bundle.StudyLogs == nil || len(bundle.StudyLogs) != 0 {
		t.Fatalf("expected empty studyLogs array, got %+v", bundle.StudyLogs)
	}
	if bundle.ExamGoals == nil || len(bundle.ExamGoals) != 0 {
		t.Fatalf("expected empty examGoals array, got %+v", bundle.ExamGoals)
	}
	if bundle.ExportDate != "2025-01-20T15:04:05Z" {
		t.Fatalf("unexpected export date: %s", bundle.ExportDate)
	}
	if bundle.AppVersion != AppVersion {
		t.Fatalf("unexpected app version: %s", bundle.AppVersion)
	}
	// Settings fall back to defaults when nothing is stored.
	if !bundle.Settings.Notifications {
		t.Fatalf("expected default settings, got %+v", bundle.Settings)
	}
}

func TestBuildIncludesStoredRecords(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	sess := metrics.NewSession("2025-01-10", "Matematik", "Cebir", 15, 3, 2, 20, 1736500000000)
	key, err := st.InsertSession(ctx, sess)
	if err != nil {
		t.Fatalf("insert session: %v", err)
	}
	if err := st.SaveGoals(ctx, model.DefaultGoals()); err != nil {
		t.Fatalf("save goals: %v", err)
	}

	bundle, err := Build(ctx, st, time.Now())
	if err != nil {
		t.Fatalf("build export: %v", err)
	}
	if len(bundle.StudyLogs) != 1 {
		t.Fatalf("expected 1 study log, got %d", len(bundle.StudyLogs))
	}
	if bundle.StudyLogs[0].Key != key {
		t.Fatalf("unexpected entry key: %s", bundle.StudyLogs[0].Key)
	}
	var stored model.Session
	if err := json.Unmarshal(bundle.StudyLogs[0].Data, &stored); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if stored.NetScore != 14 {
		t.Fatalf("unexpected stored net: %f", stored.NetScore)
	}
	if len(bundle.ExamGoals) != 1 || bundle.ExamGoals[0].Key != store.GoalsKey {
		t.Fatalf("unexpected examGoals entries: %+v", bundle.ExamGoals)
	}
}

func TestBuildSkipsInvalidRecords(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.Set(ctx, store.SessionPrefix+"1", "not json"); err != nil {
		t.Fatalf("set invalid record: %v", err)
	}
	bundle, err := Build(ctx, st, time.Now())
	if err != nil {
		t.Fatalf("build export: %v", err)
	}
	if len(bundle.StudyLogs) != 0 {
		t.Fatalf("expected invalid record skipped, got %+v", bundle.StudyLogs)
	}
}

func TestEncodeWritesIndentedJSON(t *testing.T) {
	st := openTestStore(t)
	bundle, err := Build(context.Background(), st, time.Now())
	if err != nil {
		t.Fatalf("build export: %v", err)
	}
	var buf bytes.Buffer
	if err := bundle.Encode(&buf); err != nil {
		t.Fatalf("encode export: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "\"studyLogs\": []") {
		t.Fatalf("expected empty studyLogs array in output: %s", out)
	}
	if !json.Valid(buf.Bytes()) {
		t.Fatalf("expected valid JSON output")
	}
}
