package tui

import (
	"fmt"
	"strings"
	"time"

	"veloform/internal/service"
	"veloform/internal/store"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PlanModel is the weekly plan screen model
type PlanModel struct {
	queryService *service.QueryService
	workouts     []store.Workout
	cursor       int
	viewport     viewport.Model
	loading      bool
	err          error
	status       string
	width        int
	height       int
	ready        bool
}

// NewPlanModel creates a new weekly plan model
func NewPlanModel(qs *service.QueryService, width, height int) PlanModel {
	m := PlanModel{
		queryService: qs,
		loading:      true,
		width:        width,
		height:       height,
	}

	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-8) // Reserve space for header/footer
		m.ready = true
	}

	return m
}

// Init initializes the plan screen
func (m PlanModel) Init() tea.Cmd {
	return m.loadWeek
}

type planLoadedMsg struct {
	workouts []store.Workout
	status   string
	err      error
}

func (m PlanModel) loadWeek() tea.Msg {
	workouts, err := m.queryService.WeekWorkouts(time.Now())
	if err != nil {
		return planLoadedMsg{err: err}
	}
	return planLoadedMsg{workouts: workouts}
}

func (m PlanModel) generatePlan() tea.Msg {
	workouts, err := m.queryService.GenerateWeekPlan(time.Now())
	if err != nil {
		return planLoadedMsg{err: err}
	}
	return planLoadedMsg{workouts: workouts, status: "Plan generated from your current form"}
}

func (m PlanModel) completeSelected() tea.Msg {
	if m.cursor >= len(m.workouts) {
		return nil
	}
	if err := m.queryService.CompleteWorkout(m.workouts[m.cursor].ID); err != nil {
		return planLoadedMsg{err: err}
	}

	workouts, err := m.queryService.WeekWorkouts(time.Now())
	if err != nil {
		return planLoadedMsg{err: err}
	}
	return planLoadedMsg{workouts: workouts, status: "Workout marked complete"}
}

// Update handles messages
func (m PlanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case planLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.status = msg.status
		if msg.err == nil {
			m.workouts = msg.workouts
			if m.cursor >= len(m.workouts) {
				m.cursor = 0
			}
		}
		if m.ready {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-8)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 8
		}
		m.viewport.SetContent(m.renderContent())

	case tea.KeyMsg:
		switch msg.String() {
		case "g":
			m.loading = true
			m.status = ""
			return m, m.generatePlan
		case "c", "enter":
			if len(m.workouts) > 0 {
				return m, m.completeSelected
			}
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.viewport.SetContent(m.renderContent())
			}
		case "down", "j":
			if m.cursor < len(m.workouts)-1 {
				m.cursor++
				m.viewport.SetContent(m.renderContent())
			}
		case "r":
			m.loading = true
			m.status = ""
			return m, m.loadWeek
		}
	}

	// Handle viewport scrolling
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the plan screen
func (m PlanModel) View() string {
	if m.loading {
		return "\n  Loading weekly plan..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	var sections []string

	weekStart := m.weekStart()
	title := cardTitleStyle.Render(fmt.Sprintf("Week of %s", weekStart.Format("Jan 2, 2006")))
	sections = append(sections, title)

	if len(m.workouts) == 0 {
		sections = append(sections, "\n  No plan for this week yet.")
		sections = append(sections, statusStyle.Render("\n  Press 'g' to generate one from your current fitness"))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if m.ready {
		sections = append(sections, m.viewport.View())
	} else {
		sections = append(sections, m.renderContent())
	}

	if m.status != "" {
		sections = append(sections, successStyle.Render("  "+m.status))
	}

	help := statusStyle.Render("  j/k: select day  c/enter: mark done  g: regenerate  r: refresh")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m PlanModel) renderContent() string {
	var days []string

	totalTSS := 0
	for i, w := range m.workouts {
		days = append(days, m.renderDay(w, i == m.cursor))
		totalTSS += w.TargetTSS
	}

	summary := statusStyle.Render(fmt.Sprintf("  Planned weekly stress: %d TSS", totalTSS))
	days = append(days, summary)

	return strings.Join(days, "\n")
}

func (m PlanModel) renderDay(w store.Workout, selected bool) string {
	check := "[ ]"
	if w.Completed {
		check = successStyle.Render("[x]")
	}

	header := fmt.Sprintf("%s %-10s %s", check, w.Day, workoutTypeLabel(w.Type))
	if selected {
		header = tableSelectedStyle.Render(header)
	} else {
		header = tableRowStyle.Render(header)
	}

	var lines []string
	lines = append(lines, header)

	if w.Type == "rest" {
		lines = append(lines, formNeutralStyle.Render("      "+w.Description))
		return strings.Join(lines, "\n")
	}

	lines = append(lines, fmt.Sprintf("      %s TSS, ~%s",
		metricValueStyle.Render(fmt.Sprintf("%d", w.TargetTSS)),
		formatDuration(w.DurationMin*60)))
	lines = append(lines, formNeutralStyle.Render("      "+w.Description))

	if len(w.Zones) > 0 {
		lines = append(lines, formNeutralStyle.Render("      Zones: "+strings.Join(w.Zones, ", ")))
	}
	if w.RouteSuggestion != "" {
		lines = append(lines, formNeutralStyle.Render("      Route: "+w.RouteSuggestion))
	}

	return strings.Join(lines, "\n")
}

func (m PlanModel) weekStart() time.Time {
	now := time.Now()
	offset := (int(now.Weekday()) + 6) % 7 // Monday = 0
	year, month, day := now.AddDate(0, 0, -offset).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location())
}

func workoutTypeLabel(t string) string {
	switch t {
	case "recovery":
		return "Recovery Spin"
	case "endurance":
		return "Endurance Ride"
	case "tempo":
		return "Tempo Ride"
	case "intervals":
		return "Interval Session"
	case "long":
		return "Long Ride"
	case "rest":
		return "Rest Day"
	default:
		return t
	}
}
