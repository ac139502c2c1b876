package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"studytrack/internal/metrics"
	"studytrack/internal/model"
)

// InsertSession stores a session under a timestamp-derived key and
// returns the key.
func (s *Store) InsertSession(ctx context.Context, sess model.Session) (string, error) {
	data, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("failed to encode session: %w", err)
	}
	key := SessionPrefix + strconv.FormatInt(sess.Timestamp, 10)
	if err := s.Set(ctx, key, string(data)); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return key, nil
}

// ListSessions loads and normalizes every stored session. Records that
// are not valid JSON are skipped; records missing derived fields are
// repaired on the way out.
func (s *Store) ListSessions(ctx context.Context) ([]model.Session, error) {
	keys, err := s.ListKeys(ctx, SessionPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	pairs, err := s.GetMany(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}
	sessions := make([]model.Session, 0, len(pairs))
	for _, kv := range pairs {
		sess, err := metrics.DecodeSession([]byte(kv.Value))
		if err != nil {
			continue
		}
		sessions = append(sessions, sess)
	}
	return sessions, nil
}

// LoadGoals returns the stored goals, or the defaults when none are
// stored yet. A malformed stored record also falls back to defaults.
func (s *Store) LoadGoals(ctx context.Context) (model.Goals, error) {
	pairs, err := s.GetMany(ctx, []string{GoalsKey})
	if err != nil {
		return model.Goals{}, fmt.Errorf("failed to read goals: %w", err)
	}
	if len(pairs) == 0 {
		return model.DefaultGoals(), nil
	}
	var goals model.Goals
	if err := json.Unmarshal([]byte(pairs[0].Value), &goals); err != nil {
		return model.DefaultGoals(), nil
	}
	if goals.SubjectGoals == nil {
		goals.SubjectGoals = model.DefaultGoals().SubjectGoals
	}
	return goals, nil
}

// SaveGoals overwrites the goal record wholesale.
func (s *Store) SaveGoals(ctx context.Context, goals model.Goals) error {
	data, err := json.Marshal(goals)
	if err != nil {
		return fmt.Errorf("failed to encode goals: %w", err)
	}
	if err := s.Set(ctx, GoalsKey, string(data)); err != nil {
		return fmt.Errorf("failed to store goals: %w", err)
	}
	return nil
}

// LoadSettings returns the stored settings, or defaults.
func (s *Store) LoadSettings(ctx context.Context) (model.Settings, error) {
	pairs, err := s.GetMany(ctx, []string{SettingsKey})
	if err != nil {
		return model.Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	if len(pairs) == 0 {
		return model.DefaultSettings(), nil
	}
	var settings model.Settings
	if err := json.Unmarshal([]byte(pairs[0].Value), &settings); err != nil {
		return model.DefaultSettings(), nil
	}
	return settings, nil
}

// SaveSettings overwrites the settings record wholesale.
func (s *Store) SaveSettings(ctx context.Context, settings model.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := s.Set(ctx, SettingsKey, string(data)); err != nil {
		return fmt.Errorf("failed to store settings: %w", err)
	}
	return nil
}

// ClearAll bulk-deletes the session, goals, and settings namespaces.
func (s *Store) ClearAll(ctx context.Context) error {
	var all []string
	for _, prefix := range []string{SessionPrefix, GoalsKey, SettingsKey} {
		keys, err := s.ListKeys(ctx, prefix)
		if err != nil {
			return fmt.Errorf("failed to list keys: %w", err)
		}
		all = append(all, keys...)
	}
	if err := s.RemoveMany(ctx, all); err != nil {
		return fmt.Errorf("failed to remove keys: %w", err)
	}
	return nil
}
