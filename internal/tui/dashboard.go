package tui

import (
	"fmt"
	"time"

	"veloform/internal/analysis"
	"veloform/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// chartDays is how much history the fitness chart shows
const chartDays = 60

// DashboardModel is the dashboard screen model
type DashboardModel struct {
	queryService *service.QueryService
	units        Units

	metrics *service.Metrics
	history []analysis.DailyLoadSample
	recent  []service.ActivitySummary

	loading bool
	err     error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(qs *service.QueryService, units Units) DashboardModel {
	return DashboardModel{
		queryService: qs,
		units:        units,
		loading:      true,
	}
}

// Init initializes the dashboard
func (m DashboardModel) Init() tea.Cmd {
	return m.loadData
}

type dashboardDataMsg struct {
	metrics *service.Metrics
	history []analysis.DailyLoadSample
	recent  []service.ActivitySummary
	err     error
}

func (m DashboardModel) loadData() tea.Msg {
	now := time.Now()

	metrics, err := m.queryService.CurrentMetrics(now)
	if err != nil {
		return dashboardDataMsg{err: err}
	}

	history, err := m.queryService.FitnessHistory(now, chartDays)
	if err != nil {
		return dashboardDataMsg{err: err}
	}

	recent, err := m.queryService.RecentActivities(now, service.RecentActivitiesLimit)
	if err != nil {
		return dashboardDataMsg{err: err}
	}

	return dashboardDataMsg{metrics: metrics, history: history, recent: recent}
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		m.metrics = msg.metrics
		m.history = msg.history
		m.recent = msg.recent
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadData
		}
	}
	return m, nil
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if m.loading {
		return "\n  Loading dashboard..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if m.metrics == nil {
		return "\n  No data available. Press 's' to sync with Strava."
	}

	var sections []string

	// Top row: Current Form and This Week side by side
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, m.renderFormCard(), "  ", m.renderWeekCard())
	sections = append(sections, topRow)

	if len(m.history) > 2 {
		sections = append(sections, m.renderChart())
	}

	sections = append(sections, m.renderRecentRides())

	help := statusStyle.Render("Press 'r' to refresh, 's' to sync, '3' for this week's plan")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderFormCard() string {
	title := cardTitleStyle.Render("Current Form")

	d := m.metrics

	ftp := fmt.Sprintf("%d W", d.FTP)
	if d.FTPEstimated {
		ftp += " (est)"
	}

	lines := []string{
		RenderMetric("Fitness (CTL)", fmt.Sprintf("%d", d.CTL)),
		RenderMetric("Fatigue (ATL)", fmt.Sprintf("%d", d.ATL)),
		lipgloss.JoinHorizontal(lipgloss.Left,
			metricLabelStyle.Render("Form (TSB)"),
			RenderFormValue(d.TSB, fmt.Sprintf("%+d", d.TSB))),
		RenderMetric("FTP", ftp),
		"",
		formNeutralStyle.Render(d.Form),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(40).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderWeekCard() string {
	title := cardTitleStyle.Render("This Week")

	d := m.metrics

	lines := []string{
		RenderMetric("Stress so far", fmt.Sprintf("%d TSS", d.WeekTSS)),
		RenderMetric("Weekly target", fmt.Sprintf("%d TSS", d.TargetWeekTSS)),
		"",
		RenderProgressBar(d.WeekProgress, 24) + fmt.Sprintf("  %d%%", int(d.WeekProgress*100)),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(38).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderChart() string {
	title := cardTitleStyle.Render(fmt.Sprintf("Fitness & Fatigue - Last %d Days", len(m.history)))

	ctl := make([]float64, len(m.history))
	atl := make([]float64, len(m.history))
	for i, s := range m.history {
		ctl[i] = float64(s.CTL)
		atl[i] = float64(s.ATL)
	}

	graph := asciigraph.PlotMany([][]float64{ctl, atl},
		asciigraph.Height(8),
		asciigraph.Width(64),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.SeriesLegends("CTL", "ATL"),
	)

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph))
}

func (m DashboardModel) renderRecentRides() string {
	title := cardTitleStyle.Render("Recent Rides")

	if len(m.recent) == 0 {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "No rides yet"))
	}

	header := tableHeaderStyle.Render(fmt.Sprintf("%-10s  %-24s  %9s  %6s  %5s",
		"Date", "Name", "Distance", "Time", "TSS"))

	rows := []string{header}
	for i, ride := range m.recent {
		if i >= 5 {
			break
		}

		row := tableRowStyle.Render(fmt.Sprintf("%-10s  %-24s  %9s  %6s  %5d",
			ride.StartDateLocal.Format("Jan 02"),
			truncateName(ride.Name, 24),
			m.units.FormatDistance(ride.Distance),
			formatDuration(ride.MovingTime),
			ride.TSS,
		))
		rows = append(rows, row)
	}

	table := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, table))
}

func formatDuration(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

func truncateName(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
