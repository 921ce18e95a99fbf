package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jobdeck/jobdeck/internal/model"
)

var (
	appTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")). // bright blue
			Padding(1, 0, 1, 2)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 0, 1, 2)

	formBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(1, 2)

	listBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")) // dim gray

	listBorderActiveStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Width(14)

	labelFocusStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Width(14)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	jobTitleStyle = lipgloss.NewStyle().
			Bold(true)

	jobSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	selectedJobTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")). // bright white
				Background(lipgloss.Color("24"))  // dark blue bg

	selectedJobSubtitleStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color("252")).
					Background(lipgloss.Color("24"))

	chipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Padding(0, 1)

	chipActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("26")).
			Padding(0, 1)

	emptyListStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(1, 2)
)

// statusBadgeStyles colors the per-record status badge by pipeline stage.
var statusBadgeStyles = map[model.Status]lipgloss.Style{
	model.StatusApplied:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45")),
	model.StatusInterview: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
	model.StatusOffer:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
	model.StatusRejected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	model.StatusSaved:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250")),
}

func statusBadge(s model.Status) string {
	st, ok := statusBadgeStyles[s]
	if !ok {
		st = jobSubtitleStyle
	}
	return st.Render(string(s))
}
