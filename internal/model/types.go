// Package model defines shared data structures.
package model

// Session captures one logged practice-question session. Sessions are
// immutable once stored; derived fields are rounded to 2 decimals at
// persistence time.
type Session struct {
	Date        string  `json:"date"`
	Subject     string  `json:"subject"`
	Topic       string  `json:"topic"`
	Correct     int     `json:"correct"`
	Wrong       int     `json:"wrong"`
	Blank       int     `json:"blank"`
	Total       int     `json:"total"`
	NetScore    float64 `json:"netScore"`
	SuccessRate float64 `json:"successRate"`
	Target      int     `json:"target"`
	MetTarget   bool    `json:"metTarget"`
	Timestamp   int64   `json:"timestamp"`
}

// Goals holds the exam targets. Saved wholesale; created with defaults on
// first read.
type Goals struct {
	TotalNetGoal   int            `json:"totalNetGoal"`
	SubjectGoals   map[string]int `json:"subjectGoals"`
	TargetDate     string         `json:"targetDate"`
	DailyStudyGoal int            `json:"dailyStudyGoal"`
}

// Settings holds app preferences. Saved wholesale.
type Settings struct {
	Notifications      bool   `json:"notifications"`
	DailyReminder      bool   `json:"dailyReminder"`
	ReminderTime       string `json:"reminderTime"`
	WeeklyReport       bool   `json:"weeklyReport"`
	SoundEnabled       bool   `json:"soundEnabled"`
	VibrationEnabled   bool   `json:"vibrationEnabled"`
	MotivationMessages bool   `json:"motivationMessages"`
	DataBackup         bool   `json:"dataBackup"`
}

// FilterConfig defines filters for report output.
type FilterConfig struct {
	Subject string
	Since   string
	Last    int
}

// DefaultGoals returns the goal record written on first read.
func DefaultGoals() Goals {
	return Goals{
		TotalNetGoal: 200,
		SubjectGoals: map[string]int{
			"Matematik":     15,
			"Fen Bilimleri": 15,
			"Türkçe":        15,
			"İngilizce":     8,
			"Din Kültürü":   6,
			"İnkılap":       15,
		},
		TargetDate:     "2025-06-15",
		DailyStudyGoal: 100,
	}
}

// DefaultSettings returns the settings written on first read.
func DefaultSettings() Settings {
	return Settings{
		Notifications:      true,
		DailyReminder:      true,
		ReminderTime:       "20:00",
		WeeklyReport:       true,
		SoundEnabled:       true,
		VibrationEnabled:   true,
		MotivationMessages: true,
		DataBackup:         true,
	}
}
