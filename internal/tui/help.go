package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModel is the help screen model
type HelpModel struct{}

// NewHelpModel creates a new help model
func NewHelpModel() HelpModel {
	return HelpModel{}
}

// Init initializes the help screen
func (m HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the help screen
func (m HelpModel) View() string {
	var sections []string

	title := cardTitleStyle.Render("Keyboard Shortcuts")
	sections = append(sections, title)

	navSection := m.renderSection("Navigation", []keyHelp{
		{"1", "Dashboard"},
		{"2", "Ride list"},
		{"3", "Weekly plan"},
		{"4 or s", "Sync screen"},
		{"?", "Help (this screen)"},
		{"q", "Quit"},
		{"esc", "Back / close help"},
	})
	sections = append(sections, navSection)

	dashSection := m.renderSection("Dashboard", []keyHelp{
		{"r", "Refresh data"},
	})
	sections = append(sections, dashSection)

	ridesSection := m.renderSection("Ride List", []keyHelp{
		{"j / down", "Move cursor down"},
		{"k / up", "Move cursor up"},
		{"pgdn", "Next page"},
		{"pgup", "Previous page"},
		{"r", "Refresh list"},
	})
	sections = append(sections, ridesSection)

	planSection := m.renderSection("Weekly Plan", []keyHelp{
		{"g", "Generate / regenerate plan"},
		{"c / enter", "Mark selected workout done"},
		{"j / k", "Select day"},
	})
	sections = append(sections, planSection)

	syncSection := m.renderSection("Sync Screen", []keyHelp{
		{"s / enter", "Start sync"},
	})
	sections = append(sections, syncSection)

	sections = append(sections, m.renderMetricsHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

type keyHelp struct {
	key  string
	desc string
}

func (m HelpModel) renderSection(title string, keys []keyHelp) string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(secondaryColor).Render(title))

	for _, k := range keys {
		lines = append(lines, "  "+RenderKeyHelp(k.key, k.desc))
	}

	return strings.Join(lines, "\n")
}

func (m HelpModel) renderMetricsHelp() string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(secondaryColor).Render("Metrics Explained"))
	lines = append(lines, "")

	metrics := []struct {
		name string
		desc string
	}{
		{"TSS", "Training Stress Score - how hard a ride was, scaled by your FTP."},
		{"FTP", "Functional Threshold Power - best sustainable hour power."},
		{"CTL (Fitness)", "Chronic training load - 42 day weighted average of TSS."},
		{"ATL (Fatigue)", "Acute training load - 7 day weighted average of TSS."},
		{"TSB (Form)", "Training stress balance = CTL - ATL. Positive = fresh."},
	}

	for _, metric := range metrics {
		lines = append(lines, "  "+helpKeyStyle.Render(metric.name))
		lines = append(lines, "  "+helpDescStyle.Render(metric.desc))
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
