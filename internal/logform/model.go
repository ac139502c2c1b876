// Package logform provides the Bubble Tea session entry form.
package logform

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studytrack/internal/metrics"
	"studytrack/internal/model"
	"studytrack/internal/store"
	"studytrack/internal/subject"
)

const (
	stageSubject = iota
	stageTopic
	stageCounts
	stageDone
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	itemStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	cursorLine = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	boxStyle   = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

// Model implements the Bubble Tea session entry UI.
type Model struct {
	store *store.Store

	stage    int
	subjects []subject.Subject
	subIdx   int
	topics   []string
	topicIdx int

	inputs   []textinput.Model
	inputIdx int

	errMsg string
	saved  model.Session

	width  int
	height int
}

// NewModel constructs a session entry model.
func NewModel(st *store.Store) *Model {
	m := &Model{
		store:    st,
		subjects: subject.All(),
	}
	m.initInputs()
	return m
}

func (m *Model) initInputs() {
	m.inputs = []textinput.Model{
		newCountInput("Doğru: "),
		newCountInput("Yanlış: "),
		newCountInput("Boş: "),
	}
}

func newCountInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 3
	input.Width = 6
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
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
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || (m.stage != stageCounts && msg.String() == "q") {
			return m, tea.Quit
		}
		switch m.stage {
		case stageSubject:
			return m.updateSubject(msg)
		case stageTopic:
			return m.updateTopic(msg)
		case stageCounts:
			return m.updateCounts(msg)
		case stageDone:
			return m.updateDone(msg)
		}
	}
	return m, nil
}

func (m *Model) updateSubject(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.subIdx = wrapIndex(m.subIdx-1, len(m.subjects))
	case "down", "j":
		m.subIdx = wrapIndex(m.subIdx+1, len(m.subjects))
	case "enter":
		m.topics = m.subjects[m.subIdx].Info().Topics
		m.topicIdx = 0
		m.stage = stageTopic
	}
	return m, nil
}

func (m *Model) updateTopic(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.topicIdx = wrapIndex(m.topicIdx-1, len(m.topics))
	case "down", "j":
		m.topicIdx = wrapIndex(m.topicIdx+1, len(m.topics))
	case "esc", "left":
		m.stage = stageSubject
	case "enter":
		m.stage = stageCounts
		m.errMsg = ""
		for i := range m.inputs {
			m.inputs[i].SetValue("")
		}
		return m, m.setInputIndex(0)
	}
	return m, nil
}

func (m *Model) updateCounts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.stage = stageTopic
		m.errMsg = ""
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		return m, m.setInputIndex(m.inputIdx + 1)
	case tea.KeyShiftTab, tea.KeyUp:
		return m, m.setInputIndex(m.inputIdx - 1)
	case tea.KeyEnter:
		if err := m.save(); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.stage = stageDone
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.inputIdx], cmd = m.inputs[m.inputIdx].Update(msg)
	return m, cmd
}

func (m *Model) updateDone(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		m.stage = stageSubject
		m.errMsg = ""
		return m, nil
	}
	return m, nil
}

func (m *Model) setInputIndex(idx int) tea.Cmd {
	count := len(m.inputs)
	m.inputIdx = wrapIndex(idx, count)
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == m.inputIdx {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) save() error {
	correct, err := parseCount(m.inputs[0].Value())
	if err != nil {
		return fmt.Errorf("doğru sayısı geçersiz")
	}
	wrong, err := parseCount(m.inputs[1].Value())
	if err != nil {
		return fmt.Errorf("yanlış sayısı geçersiz")
	}
	blank, err := parseCount(m.inputs[2].Value())
	if err != nil {
		return fmt.Errorf("boş sayısı geçersiz")
	}
	info := m.subjects[m.subIdx].Info()
	total := correct + wrong + blank
	if total == 0 {
		return fmt.Errorf("en az bir soru girilmeli")
	}
	if total > info.MaxQuestions {
		return fmt.Errorf("%s için en fazla %d soru girilebilir", info.Name, info.MaxQuestions)
	}
	now := time.Now()
	sess := metrics.NewSession(
		now.Format("2006-01-02"),
		info.Name,
		m.topics[m.topicIdx],
		correct, wrong, blank,
		info.Target,
		now.UnixMilli(),
	)
	if _, err := m.store.InsertSession(context.Background(), sess); err != nil {
		return fmt.Errorf("kayıt başarısız: %v", err)
	}
	m.saved = sess
	return nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch m.stage {
	case stageSubject:
		body = m.renderPicker("Ders seç", subjectNames(m.subjects), m.subIdx)
	case stageTopic:
		title := fmt.Sprintf("Konu seç (%s)", m.subjects[m.subIdx].Name())
		body = m.renderPicker(title, m.topics, m.topicIdx)
	case stageCounts:
		body = m.renderCounts()
	case stageDone:
		body = m.renderDone()
	}
	box := boxStyle.Render(body)
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) renderPicker(title string, items []string, selected int) string {
	lines := []string{titleStyle.Render(title), ""}
	start, end := pickerWindow(selected, len(items), m.pickerHeight())
	if start > 0 {
		lines = append(lines, hintStyle.Render("  ..."))
	}
	for i := start; i < end; i++ {
		if i == selected {
			lines = append(lines, cursorLine.Render("> "+items[i]))
		} else {
			lines = append(lines, itemStyle.Render("  "+items[i]))
		}
	}
	if end < len(items) {
		lines = append(lines, hintStyle.Render("  ..."))
	}
	lines = append(lines, "", hintStyle.Render("yukarı/aşağı: seç  enter: onayla  q: çıkış"))
	return strings.Join(lines, "\n")
}

func (m *Model) renderCounts() string {
	info := m.subjects[m.subIdx].Info()
	lines := []string{
		titleStyle.Render(fmt.Sprintf("%s / %s", info.Name, m.topics[m.topicIdx])),
		hintStyle.Render(fmt.Sprintf("en fazla %d soru", info.MaxQuestions)),
		"",
	}
	for _, input := range m.inputs {
		lines = append(lines, input.View())
	}
	lines = append(lines, "", hintStyle.Render("tab: sonraki alan  enter: kaydet  esc: geri"))
	if m.errMsg != "" {
		lines = append(lines, errorStyle.Render(m.errMsg))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderDone() string {
	s := m.saved
	met := "hedefin altında"
	if s.MetTarget {
		met = "hedef tamam"
	}
	lines := []string{
		okStyle.Render("Kayıt eklendi"),
		"",
		fmt.Sprintf("%s / %s", s.Subject, s.Topic),
		fmt.Sprintf("Net: %.2f   Başarı: %%%.1f   (%s)", s.NetScore, s.SuccessRate, met),
		"",
		hintStyle.Render("enter: yeni kayıt  q: çıkış"),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) pickerHeight() int {
	if m.height == 0 {
		return 12
	}
	h := m.height - 8
	if h < 3 {
		h = 3
	}
	if h > 16 {
		h = 16
	}
	return h
}

func pickerWindow(selected, count, height int) (int, int) {
	if count <= height {
		return 0, count
	}
	start := selected - height/2
	if start < 0 {
		start = 0
	}
	if start+height > count {
		start = count - height
	}
	return start, start + height
}

func parseCount(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid count")
	}
	return n, nil
}

func subjectNames(subjects []subject.Subject) []string {
	names := make([]string, len(subjects))
	for i, s := range subjects {
		names[i] = s.Name()
	}
	return names
}

func wrapIndex(idx, count int) int {
	if count == 0 {
		return 0
	}
	if idx < 0 {
		return count - 1
	}
	if idx >= count {
		return 0
	}
	return idx
}
