// Package dashboard provides the Bubble Tea report interface.
package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studytrack/internal/aggregate"
	"studytrack/internal/goal"
	"studytrack/internal/model"
	"studytrack/internal/report"
	"studytrack/internal/store"
	"studytrack/internal/weak"
)

const (
	tabOverview = iota
	tabSubjects
	tabWeak
	tabGoals
	tabCalendar
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea report UI.
type Model struct {
	store *store.Store
	cfg   model.FilterConfig

	sessions []model.Session
	goals    model.Goals
	errMsg   string

	tabs         []string
	activeTab    int
	viewports    []viewport.Model
	subjectTable table.Model

	calYear  int
	calMonth time.Month

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

// NewModel constructs a report UI model.
func NewModel(st *store.Store, cfg model.FilterConfig) *Model {
	now := time.Now()
	m := &Model{
		store:    st,
		cfg:      cfg,
		tabs:     []string{"Genel", "Dersler", "Zayıf Konular", "Hedefler", "Takvim"},
		calYear:  now.Year(),
		calMonth: now.Month(),
	}
	m.initInputs()
	m.initViewports()
	m.initSubjectTable()
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		if m.activeTab == tabSubjects {
			m.subjectTable.Focus()
		} else {
			m.subjectTable.Blur()
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			if m.activeTab == tabCalendar {
				m.moveMonth(1)
			}
			return m, nil
		case "-":
			if m.activeTab == tabCalendar {
				m.moveMonth(-1)
			}
			return m, nil
		case "r":
			m.refreshReport()
			return m, nil
		case "/":
			return m.startFilter()
		case "g", "home":
			if m.activeTab == tabSubjects {
				m.subjectTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabSubjects {
				m.subjectTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabSubjects {
				var cmd tea.Cmd
				m.subjectTable, cmd = m.subjectTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initSubjectTable() {
	m.subjectTable = table.New(
		table.WithColumns(subjectColumns()),
		table.WithHeight(1),
	)
	m.subjectTable.SetStyles(subjectTableStyles())
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Ders: "),
		newFilterInput("Başlangıç (YYYY-MM-DD): "),
		newFilterInput("Son N kayıt: "),
	}
	m.setInputsFromConfig()
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromConfig() {
	if len(m.filterInputs) == 0 {
		return
	}
	m.filterInputs[0].SetValue(strings.TrimSpace(m.cfg.Subject))
	m.filterInputs[1].SetValue(strings.TrimSpace(m.cfg.Since))
	if m.cfg.Last > 0 {
		m.filterInputs[2].SetValue(strconv.Itoa(m.cfg.Last))
	} else {
		m.filterInputs[2].SetValue("")
	}
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.subjectTable.SetWidth(m.width)
	m.subjectTable.SetHeight(maxInt(1, vpHeight-1))
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
}

func (m *Model) moveMonth(delta int) {
	t := time.Date(m.calYear, m.calMonth, 1, 0, 0, 0, 0, time.Local).AddDate(0, delta, 0)
	m.calYear = t.Year()
	m.calMonth = t.Month()
	m.renderTabContents()
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	filters := padLines(m.renderFilterSummary(), m.width)
	return tabs + "\n" + filters
}

func (m *Model) renderFilterSummary() string {
	subject := m.cfg.Subject
	if subject == "" {
		subject = "hepsi"
	}
	since := m.cfg.Since
	if since == "" {
		since = "hepsi"
	}
	last := "hepsi"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("Filtre: ders=%s  başlangıç=%s  son=%s", subject, since, last)
	summary = truncateLine(summary, m.width)
	return headerStyle.Render(summary)
}

func (m *Model) renderHelp() string {
	help := "Gezinme: sol/sağ  Kaydırma: yukarı/aşağı  Filtre: /  Yenile: r  Çıkış: q"
	if m.activeTab == tabCalendar {
		help = "Gezinme: sol/sağ  Ay: -/=  Filtre: /  Yenile: r  Çıkış: q"
	}
	return headerStyle.Render(help)
}

func (m *Model) renderFilterHelp() string {
	return headerStyle.Render("tab/shift+tab: sonraki alan  enter: uygula  esc: iptal  çıkış: q")
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return m.renderFilterHelp()
	}
	if m.errMsg != "" {
		return m.renderHelp() + "\n" + errorStyle.Render(m.errMsg)
	}
	return m.renderHelp()
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Filtre (enter: uygula, esc: iptal)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return fitLines(m.renderFilterForm(), m.width, height)
	}
	if m.activeTab == tabSubjects {
		if len(m.sessions) == 0 {
			return fitLines("Henüz çalışma kaydı yok.", m.width, height)
		}
		view := tableMutedStyle.Render(m.subjectTable.View())
		return fitLines(view, m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) refreshReport() {
	sessions, err := m.store.ListSessions(context.Background())
	if err != nil {
		m.errMsg = err.Error()
		for i := range m.viewports {
			m.viewports[i].SetContent("Rapor yüklenemedi.")
		}
		return
	}
	goals, err := m.store.LoadGoals(context.Background())
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.goals = goals
	m.sessions = applyFilters(sessions, m.cfg)
	m.renderTabContents()
}

func applyFilters(sessions []model.Session, cfg model.FilterConfig) []model.Session {
	out := sessions
	if cfg.Subject != "" {
		out = aggregate.FilterSubject(out, cfg.Subject)
	}
	if cfg.Since != "" {
		out = aggregate.FilterSince(out, cfg.Since)
	}
	if cfg.Last > 0 {
		out = aggregate.Recent(out, cfg.Last)
	}
	return out
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	if m.errMsg != "" {
		for i := range m.viewports {
			m.viewports[i].SetContent("Rapor yüklenemedi.")
		}
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	today := time.Now()
	m.viewports[tabOverview].SetContent(renderOverviewTab(m.sessions, today, width))
	m.subjectTable.SetRows(subjectRows(aggregate.BySubject(m.sessions)))
	m.viewports[tabWeak].SetContent(renderToString(func(w io.Writer) error {
		topics, sum := weak.Classify(aggregate.ByTopic(m.sessions))
		return report.RenderWeakTopics(w, topics, sum)
	}))
	m.viewports[tabGoals].SetContent(renderToString(func(w io.Writer) error {
		recent := aggregate.FilterWindow(m.sessions, today, goal.WindowDays)
		return report.RenderGoals(w, goal.BuildReport(aggregate.BySubject(recent), m.goals, today))
	}))
	m.viewports[tabCalendar].SetContent(renderToString(func(w io.Writer) error {
		return report.RenderCalendar(w, aggregate.ByDate(m.sessions), m.calYear, m.calMonth)
	}))
}

func renderOverviewTab(sessions []model.Session, today time.Time, width int) string {
	var buf bytes.Buffer
	if err := report.RenderOverview(&buf, aggregate.BuildOverview(sessions, today)); err != nil {
		return fmt.Sprintf("Rapor oluşturulamadı: %v", err)
	}
	buf.WriteString("\n")
	if err := report.RenderDailyTrend(&buf, aggregate.ByDate(sessions), width); err != nil {
		return fmt.Sprintf("Rapor oluşturulamadı: %v", err)
	}
	buf.WriteString("\n")
	if err := report.RenderRecent(&buf, aggregate.Recent(sessions, 5)); err != nil {
		return fmt.Sprintf("Rapor oluşturulamadı: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func subjectColumns() []table.Column {
	return []table.Column{
		{Title: "Ders", Width: 14},
		{Title: "Oturum", Width: 7},
		{Title: "Soru", Width: 6},
		{Title: "Net", Width: 7},
		{Title: "Ort. Net", Width: 9},
		{Title: "Başarı", Width: 8},
	}
}

func subjectRows(stats []aggregate.SubjectStats) []table.Row {
	rows := make([]table.Row, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, table.Row{
			s.Subject,
			fmt.Sprintf("%d", s.Sessions),
			fmt.Sprintf("%d", s.TotalQuestions),
			fmt.Sprintf("%.1f", s.TotalNet),
			fmt.Sprintf("%.1f", s.AverageNet),
			fmt.Sprintf("%%%.1f", s.SuccessRate),
		})
	}
	return rows
}

func subjectTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func renderToString(render func(io.Writer) error) string {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return fmt.Sprintf("Rapor oluşturulamadı: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromConfig()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.filterError = ""
		m.refreshReport()
		m.updateLayout()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	if count == 0 {
		return nil
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.filterIndex = idx
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applyFilter() error {
	subject := strings.TrimSpace(m.filterInputs[0].Value())
	since := strings.TrimSpace(m.filterInputs[1].Value())
	if since != "" {
		if _, err := time.ParseInLocation(aggregate.DateLayout, since, time.Local); err != nil {
			return fmt.Errorf("geçersiz tarih (YYYY-MM-DD bekleniyor)")
		}
	}
	lastInput := strings.TrimSpace(m.filterInputs[2].Value())
	last := 0
	if lastInput != "" {
		parsed, err := strconv.Atoi(lastInput)
		if err != nil || parsed < 0 {
			return fmt.Errorf("geçersiz kayıt sayısı (0 veya pozitif tam sayı)")
		}
		last = parsed
	}
	m.cfg = model.FilterConfig{
		Subject: subject,
		Since:   since,
		Last:    last,
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func truncateLine(line string, width int) string {
	if width <= 0 {
		return line
	}
	if lipgloss.Width(line) <= width {
		return line
	}
	runes := []rune(line)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}
