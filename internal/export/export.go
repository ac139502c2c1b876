// Package export serializes the stored data into a single shareable
// JSON structure.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"studytrack/internal/model"
	"studytrack/internal/store"
)

// AppVersion is stamped into every export bundle.
const AppVersion = "1.0.0"

// Entry pairs a storage key with its raw stored record.
type Entry struct {
	Key  string          `json:"key"`
	Data json.RawMessage `json:"data"`
}

// Bundle is the full export envelope. Arrays are present (possibly
// empty) even when nothing is stored.
type Bundle struct {
	StudyLogs  []Entry        `json:"studyLogs"`
	ExamGoals  []Entry        `json:"examGoals"`
	Settings   model.Settings `json:"settings"`
	ExportDate string         `json:"exportDate"`
	AppVersion string         `json:"appVersion"`
}

// Build reads the session and goal namespaces plus settings and wraps
// them into a bundle stamped with the export instant.
func Build(ctx context.Context, st *store.Store, now time.Time) (Bundle, error) {
	bundle := Bundle{
		StudyLogs:  []Entry{},
		ExamGoals:  []Entry{},
		ExportDate: now.Format(time.RFC3339),
		AppVersion: AppVersion,
	}

	logs, err := readNamespace(ctx, st, store.SessionPrefix)
	if err != nil {
		return Bundle{}, err
	}
	bundle.StudyLogs = logs

	goals, err := readNamespace(ctx, st, store.GoalsKey)
	if err != nil {
		return Bundle{}, err
	}
	bundle.ExamGoals = goals

	settings, err := st.LoadSettings(ctx)
	if err != nil {
		return Bundle{}, err
	}
	bundle.Settings = settings
	return bundle, nil
}

// Encode writes the bundle as indented JSON.
func (b Bundle) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}

func readNamespace(ctx context.Context, st *store.Store, prefix string) ([]Entry, error) {
	keys, err := st.ListKeys(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s keys: %w", prefix, err)
	}
	pairs, err := st.GetMany(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s records: %w", prefix, err)
	}
	entries := make([]Entry, 0, len(pairs))
	for _, kv := range pairs {
		if !json.Valid([]byte(kv.Value)) {
			continue
		}
		entries = append(entries, Entry{Key: kv.Key, Data: json.RawMessage(kv.Value)})
	}
	return entries, nil
}
