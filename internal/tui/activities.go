package tui

import (
	"fmt"
	"time"

	"veloform/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ActivitiesModel is the ride list screen model
type ActivitiesModel struct {
	queryService *service.QueryService
	units        Units
	activities   []service.ActivitySummary
	cursor       int
	offset       int
	total        int
	pageSize     int
	loading      bool
	err          error
}

// NewActivitiesModel creates a new ride list model
func NewActivitiesModel(qs *service.QueryService, units Units) ActivitiesModel {
	return ActivitiesModel{
		queryService: qs,
		units:        units,
		pageSize:     15,
		loading:      true,
	}
}

// Init initializes the ride list screen
func (m ActivitiesModel) Init() tea.Cmd {
	return m.loadPage
}

type activitiesLoadedMsg struct {
	activities []service.ActivitySummary
	total      int
	err        error
}

func (m ActivitiesModel) loadPage() tea.Msg {
	activities, err := m.queryService.ActivitiesPage(time.Now(), m.pageSize, m.offset)
	if err != nil {
		return activitiesLoadedMsg{err: err}
	}

	total, err := m.queryService.TotalActivityCount()
	if err != nil {
		return activitiesLoadedMsg{err: err}
	}

	return activitiesLoadedMsg{activities: activities, total: total}
}

// Update handles messages
func (m ActivitiesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case activitiesLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.activities = msg.activities
		m.total = msg.total

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			} else if m.offset > 0 {
				// Go to previous page
				m.offset -= m.pageSize
				m.cursor = m.pageSize - 1
				m.loading = true
				return m, m.loadPage
			}
		case "down", "j":
			if m.cursor < len(m.activities)-1 {
				m.cursor++
			} else if m.offset+len(m.activities) < m.total {
				// Go to next page
				m.offset += m.pageSize
				m.cursor = 0
				m.loading = true
				return m, m.loadPage
			}
		case "pgup":
			if m.offset > 0 {
				m.offset -= m.pageSize
				if m.offset < 0 {
					m.offset = 0
				}
				m.cursor = 0
				m.loading = true
				return m, m.loadPage
			}
		case "pgdown":
			if m.offset+m.pageSize < m.total {
				m.offset += m.pageSize
				m.cursor = 0
				m.loading = true
				return m, m.loadPage
			}
		case "r":
			m.loading = true
			return m, m.loadPage
		}
	}
	return m, nil
}

// View renders the ride list
func (m ActivitiesModel) View() string {
	if m.loading {
		return "\n  Loading rides..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if len(m.activities) == 0 {
		return "\n  No rides found. Press 's' to sync with Strava."
	}

	var sections []string

	// Title with pagination info
	startNum := m.offset + 1
	endNum := m.offset + len(m.activities)
	title := cardTitleStyle.Render(fmt.Sprintf("Rides (%d-%d of %d)", startNum, endNum, m.total))
	sections = append(sections, title)

	header := tableHeaderStyle.Render(fmt.Sprintf("   %-10s  %-24s  %9s  %6s  %9s  %6s  %5s",
		"Date", "Name", "Distance", "Time", "Speed", "Power", "TSS"))
	sections = append(sections, header)

	for i, ride := range m.activities {
		power := "-"
		if ride.AverageWatts != nil && ride.DeviceWatts {
			power = fmt.Sprintf("%.0fW", *ride.AverageWatts)
		}

		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		row := fmt.Sprintf("%s%-10s  %-24s  %9s  %6s  %9s  %6s  %5d",
			cursor,
			ride.StartDateLocal.Format("Jan 02"),
			truncateName(ride.Name, 24),
			m.units.FormatDistance(ride.Distance),
			formatDuration(ride.MovingTime),
			m.units.FormatSpeed(ride.Distance, ride.MovingTime),
			power,
			ride.TSS,
		)

		if i == m.cursor {
			sections = append(sections, tableSelectedStyle.Render(row))
		} else {
			sections = append(sections, tableRowStyle.Render(row))
		}
	}

	help := statusStyle.Render("\n  j/k: navigate  pgup/pgdn: page  r: refresh")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
