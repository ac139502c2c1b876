// Package main provides the CLI entrypoint for studytrack.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"studytrack/internal/aggregate"
	"studytrack/internal/config"
	"studytrack/internal/dashboard"
	"studytrack/internal/export"
	"studytrack/internal/goal"
	"studytrack/internal/logform"
	"studytrack/internal/metrics"
	"studytrack/internal/model"
	"studytrack/internal/report"
	"studytrack/internal/store"
	"studytrack/internal/subject"
	"studytrack/internal/weak"
)

const defaultRecent = 5

var (
	logSubject string
	logTopic   string
	logCorrect int
	logWrong   int
	logBlank   int
	logDate    string

	statsSubject string
	statsSince   string
	statsLast    int
	statsWidth   int

	goalsTotal   int
	goalsSubject string
	goalsNet     int
	goalsDate    string
	goalsDaily   int

	exportOut string

	clearYes bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "studytrack",
		Short:         "LGS study tracker",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDashboardCmd,
	}

	rootCmd.AddCommand(newLogCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newWeakCmd())
	rootCmd.AddCommand(newGoalsCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newClearCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runDashboardCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	st, err := openStore(fileCfg)
	if err != nil {
		return err
	}
	defer closeStore(st)

	cfg := model.FilterConfig{}
	if fileCfg.Report.Last != nil {
		cfg.Last = *fileCfg.Report.Last
	}

	m := dashboard.NewModel(st, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

func newLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a study session",
		Args:  cobra.NoArgs,
		RunE:  runLogCmd,
	}
	cmd.Flags().StringVar(&logSubject, "subject", "", "subject name")
	cmd.Flags().StringVar(&logTopic, "topic", "", "topic name")
	cmd.Flags().IntVar(&logCorrect, "correct", 0, "correct answers")
	cmd.Flags().IntVar(&logWrong, "wrong", 0, "wrong answers")
	cmd.Flags().IntVar(&logBlank, "blank", 0, "blank answers")
	cmd.Flags().StringVar(&logDate, "date", "", "session date (YYYY-MM-DD, default today)")
	return cmd
}

func runLogCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	st, err := openStore(fileCfg)
	if err != nil {
		return err
	}
	defer closeStore(st)

	if logSubject == "" {
		m := logform.NewModel(st)
		program := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run log form: %w", err)
		}
		return nil
	}

	sub, ok := subject.Parse(logSubject)
	if !ok {
		return fmt.Errorf("unknown subject %q (available: %s)", logSubject, strings.Join(subjectNames(), ", "))
	}
	info := sub.Info()
	if logTopic == "" {
		return fmt.Errorf("--topic is required with --subject")
	}
	if !sub.HasTopic(logTopic) {
		return fmt.Errorf("unknown topic %q for %s", logTopic, info.Name)
	}
	if logCorrect < 0 || logWrong < 0 || logBlank < 0 {
		return fmt.Errorf("counts must not be negative")
	}
	total := logCorrect + logWrong + logBlank
	if total == 0 {
		return fmt.Errorf("at least one question is required")
	}
	if total > info.MaxQuestions {
		return fmt.Errorf("%s allows at most %d questions", info.Name, info.MaxQuestions)
	}
	now := time.Now()
	date := now.Format(aggregate.DateLayout)
	if logDate != "" {
		parsed, err := time.ParseInLocation(aggregate.DateLayout, logDate, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --date value: %w", err)
		}
		date = parsed.Format(aggregate.DateLayout)
	}

	sess := metrics.NewSession(date, info.Name, logTopic, logCorrect, logWrong, logBlank, info.Target, now.UnixMilli())
	if _, err := st.InsertSession(context.Background(), sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "Kayıt eklendi: %s / %s  Net: %.2f  Başarı: %%%.1f\n",
		sess.Subject, sess.Topic, sess.NetScore, sess.SuccessRate); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show study stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSubject, "subject", "", "subject filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsWidth, "width", 0, "output width (default: terminal width)")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "last", &statsLast, fileCfg.Report.Last)
	applyIntConfig(cmd, "width", &statsWidth, fileCfg.Report.Width)

	if statsSince != "" {
		if _, err := time.ParseInLocation(aggregate.DateLayout, statsSince, time.Local); err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be 0 or a positive integer")
	}
	if statsSubject != "" {
		if _, ok := subject.Parse(statsSubject); !ok {
			return fmt.Errorf("unknown subject %q (available: %s)", statsSubject, strings.Join(subjectNames(), ", "))
		}
	}

	st, err := openStore(fileCfg)
	if err != nil {
		return err
	}
	defer closeStore(st)

	sessions, err := st.ListSessions(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}
	if statsSubject != "" {
		sessions = aggregate.FilterSubject(sessions, statsSubject)
	}
	if statsSince != "" {
		sessions = aggregate.FilterSince(sessions, statsSince)
	}
	if statsLast > 0 {
		sessions = aggregate.Recent(sessions, statsLast)
	}

	width := statsWidth
	if width <= 0 {
		width = report.TerminalWidth()
	}
	today := time.Now()
	out := cmd.OutOrStdout()
	if err := report.RenderOverview(out, aggregate.BuildOverview(sessions, today)); err != nil {
		return fmt.Errorf("failed to render overview: %w", err)
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := report.RenderSubjects(out, aggregate.BySubject(sessions)); err != nil {
		return fmt.Errorf("failed to render subjects: %w", err)
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := report.RenderDailyTrend(out, aggregate.ByDate(sessions), width); err != nil {
		return fmt.Errorf("failed to render trend: %w", err)
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := report.RenderRecent(out, aggregate.Recent(sessions, defaultRecent)); err != nil {
		return fmt.Errorf("failed to render recent sessions: %w", err)
	}
	return nil
}

func newWeakCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weak",
		Short: "Show weak topics",
		Args:  cobra.NoArgs,
		RunE:  runWeakCmd,
	}
}

func runWeakCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	st, err := openStore(fileCfg)
	if err != nil {
		return err
	}
	defer closeStore(st)

	sessions, err := st.ListSessions(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}
	topics, sum := weak.Classify(aggregate.ByTopic(sessions))
	if err := report.RenderWeakTopics(cmd.OutOrStdout(), topics, sum); err != nil {
		return fmt.Errorf("failed to render weak topics: %w", err)
	}
	return nil
}

func newGoalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Show goal progress",
		Args:  cobra.NoArgs,
		RunE:  runGoalsCmd,
	}
	cmd.AddCommand(newGoalsSetCmd())
	return cmd
}

func runGoalsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	st, err := openStore(fileCfg)
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	sessions, err := st.ListSessions(ctx)
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}
	goals, err := st.LoadGoals(ctx)
	if err != nil {
		return fmt.Errorf("failed to load goals: %w", err)
	}
	today := time.Now()
	recent := aggregate.FilterWindow(sessions, today, goal.WindowDays)
	r := goal.BuildReport(aggregate.BySubject(recent), goals, today)
	if err := report.RenderGoals(cmd.OutOrStdout(), r); err != nil {
		return fmt.Errorf("failed to render goals: %w", err)
	}
	return nil
}

func newGoalsSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update goals",
		Args:  cobra.NoArgs,
		RunE:  runGoalsSetCmd,
	}
	cmd.Flags().IntVar(&goalsTotal, "total", 0, "total net goal")
	cmd.Flags().StringVar(&goalsSubject, "subject", "", "subject name (with --net)")
	cmd.Flags().IntVar(&goalsNet, "net", 0, "subject net goal (with --subject)")
	cmd.Flags().StringVar(&goalsDate, "date", "", "exam date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&goalsDaily, "daily", 0, "daily question goal")
	return cmd
}

func runGoalsSetCmd(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	if !flags.Changed("total") && !flags.Changed("subject") && !flags.Changed("date") && !flags.Changed("daily") {
		return fmt.Errorf("nothing to set (use --total, --subject with --net, --date, or --daily)")
	}
	if flags.Changed("subject") != flags.Changed("net") {
		return fmt.Errorf("--subject and --net must be used together")
	}

	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	st, err := openStore(fileCfg)
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	goals, err := st.LoadGoals(ctx)
	if err != nil {
		return fmt.Errorf("failed to load goals: %w", err)
	}
	if flags.Changed("total") {
		if err := goal.SetTotalGoal(&goals, goalsTotal); err != nil {
			return err
		}
	}
	if flags.Changed("subject") {
		if err := goal.SetSubjectGoal(&goals, goalsSubject, goalsNet); err != nil {
			return err
		}
	}
	if flags.Changed("date") {
		if err := goal.SetTargetDate(&goals, goalsDate); err != nil {
			return err
		}
	}
	if flags.Changed("daily") {
		if goalsDaily <= 0 {
			return fmt.Errorf("--daily must be greater than 0")
		}
		goals.DailyStudyGoal = goalsDaily
	}
	if err := st.SaveGoals(ctx, goals); err != nil {
		return fmt.Errorf("failed to save goals: %w", err)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), "Hedefler güncellendi."); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all data as JSON",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportOut, "out", "", "output file (default: stdout)")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	st, err := openStore(fileCfg)
	if err != nil {
		return err
	}
	defer closeStore(st)

	bundle, err := export.Build(context.Background(), st, time.Now())
	if err != nil {
		return fmt.Errorf("failed to build export: %w", err)
	}
	if exportOut == "" {
		if err := bundle.Encode(cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(exportOut), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(exportOut)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close output file: %v\n", cerr)
		}
	}()
	if err := bundle.Encode(f); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	logErrf("Wrote %s\n", exportOut)
	return nil
}

func newClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored data",
		Args:  cobra.NoArgs,
		RunE:  runClearCmd,
	}
	cmd.Flags().BoolVar(&clearYes, "yes", false, "confirm deletion")
	return cmd
}

func runClearCmd(cmd *cobra.Command, _ []string) error {
	if !clearYes {
		return fmt.Errorf("refusing to delete without --yes")
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	st, err := openStore(fileCfg)
	if err != nil {
		return err
	}
	defer closeStore(st)

	if err := st.ClearAll(context.Background()); err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), "Tüm veriler silindi."); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func openStore(fileCfg config.FileConfig) (*store.Store, error) {
	path := config.DefaultDBPath()
	if fileCfg.Storage.Path != nil && *fileCfg.Storage.Path != "" {
		path = *fileCfg.Storage.Path
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func subjectNames() []string {
	names := make([]string, 0)
	for _, s := range subject.All() {
		names = append(names, s.Name())
	}
	return names
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return `# studytrack configuration
# Uncomment a value to enable it. CLI flags override config values.

[report]
# last = 0          # Limit reports to the last N sessions (0 = all)
# width = 0         # Output width (0 = terminal width)

[storage]
# path = ""         # Database file path (default: XDG data dir)
`
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
