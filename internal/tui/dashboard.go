package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jobdeck/jobdeck/internal/model"
)

// Lines per job item in the list view (title + subtitle + blank separator).
const jobItemHeight = 3

type dashView int

const (
	dashList dashView = iota
	dashForm
)

// jobsMsg is sent when an async list fetch completes. seq identifies which
// refresh issued it; responses from superseded refreshes are discarded so an
// older, slower fetch can never overwrite a newer filter's results.
type jobsMsg struct {
	seq  int
	jobs []model.Job
	err  error
}

// saveDoneMsg is sent when an async create/update completes.
type saveDoneMsg struct {
	err error
}

// deleteDoneMsg is sent when an async delete completes.
type deleteDoneMsg struct {
	err error
}

// dashboardModel owns the job list, the active filter/search pair, and the
// add/edit form. The displayed list always reflects the last completed fetch
// for the current filter/search; mutations never patch it in place, they
// trigger a refetch.
type dashboardModel struct {
	deps  Deps
	email string

	mode      dashView
	jobs      []model.Job
	cursor    int
	filter    string
	search    textinput.Model
	searching bool

	form      jobForm
	editingID string

	loading    bool
	saving     bool
	refreshSeq int

	spin   spinner.Model
	vp     viewport.Model
	width  int
	height int
	ready  bool
}

func newDashboard(deps Deps, email string) dashboardModel {
	search := textinput.New()
	search.Placeholder = "title or company"
	search.Prompt = "/ "
	search.CharLimit = 100
	search.Width = 32

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return dashboardModel{
		deps:   deps,
		email:  email,
		filter: model.FilterAll,
		search: search,
		form:   newJobForm(),
		spin:   sp,
	}
}

// init issues the mount-time fetch.
func (m *dashboardModel) init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.spin.Tick)
}

func (m *dashboardModel) setSize(width, height int) {
	m.width = width
	m.height = height
	m.recalcLayout()
}

// refreshCmd snapshots the current filter/search pair and fetches the list.
// Each call bumps the sequence number; only the newest response is applied.
func (m *dashboardModel) refreshCmd() tea.Cmd {
	m.refreshSeq++
	m.loading = true

	seq := m.refreshSeq
	jobs := m.deps.Jobs
	status := m.filter
	search := m.search.Value()
	return func() tea.Msg {
		list, err := jobs.ListJobs(context.Background(), status, search)
		return jobsMsg{seq: seq, jobs: list, err: err}
	}
}

// submitCmd sends the form as an update when a record is being edited, or as
// a create otherwise. An incomplete draft is a silent no-op: no request, no
// state change.
func (m *dashboardModel) submitCmd() tea.Cmd {
	d := m.form.draft()
	if !d.Complete() {
		return nil
	}
	m.saving = true

	jobs := m.deps.Jobs
	id := m.editingID
	save := func() tea.Msg {
		var err error
		if id != "" {
			_, err = jobs.UpdateJob(context.Background(), id, d)
		} else {
			_, err = jobs.CreateJob(context.Background(), d)
		}
		return saveDoneMsg{err: err}
	}
	return tea.Batch(save, m.spin.Tick)
}

// deleteCmd removes the record under the cursor.
func (m *dashboardModel) deleteCmd() tea.Cmd {
	if len(m.jobs) == 0 {
		return nil
	}
	jobs := m.deps.Jobs
	id := m.jobs[m.cursor].ID
	return func() tea.Msg {
		return deleteDoneMsg{err: jobs.DeleteJob(context.Background(), id)}
	}
}

// beginEdit copies the record under the cursor into the form. Pure local
// state change, no network call.
func (m *dashboardModel) beginEdit() tea.Cmd {
	if len(m.jobs) == 0 {
		return nil
	}
	job := m.jobs[m.cursor]
	m.form.load(model.DraftOf(job))
	m.editingID = job.ID
	m.mode = dashForm
	return textinput.Blink
}

func sessionExpired() tea.Msg { return sessionExpiredMsg{} }

func (m dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case jobsMsg:
		if msg.seq != m.refreshSeq {
			// Stale response from a superseded filter/search; drop it.
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			if model.IsUnauthorized(msg.err) {
				return m, sessionExpired
			}
			// List keeps its previous contents.
			m.deps.Logger.Error("failed to fetch jobs", "error", msg.err)
			return m, nil
		}
		m.jobs = msg.jobs
		m.cursor = clamp(m.cursor, 0, max(len(m.jobs)-1, 0))
		m.recalcContent()
		m.ensureCursorVisible()
		return m, nil

	case saveDoneMsg:
		m.saving = false
		if msg.err != nil {
			if model.IsUnauthorized(msg.err) {
				return m, sessionExpired
			}
			// Form and list stay as they were.
			m.deps.Logger.Error("failed to save job", "error", msg.err, "editing_id", m.editingID)
			return m, nil
		}
		m.form.reset()
		m.editingID = ""
		m.mode = dashList
		return m, m.refreshCmd()

	case deleteDoneMsg:
		if msg.err != nil {
			if model.IsUnauthorized(msg.err) {
				return m, sessionExpired
			}
			m.deps.Logger.Error("failed to delete job", "error", msg.err)
			return m, nil
		}
		return m, m.refreshCmd()

	case spinner.TickMsg:
		if !m.loading && !m.saving {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.mode == dashForm {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m dashboardModel) updateList(msg tea.KeyMsg) (dashboardModel, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "enter", "esc":
			m.searching = false
			m.search.Blur()
			return m, nil
		}
		before := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != before {
			// Every search change triggers an authoritative refetch.
			return m, tea.Batch(cmd, m.refreshCmd(), m.spin.Tick)
		}
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(-1)
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		return m, nil
	case "n":
		m.form.reset()
		m.editingID = ""
		m.mode = dashForm
		return m, textinput.Blink
	case "enter", "e":
		return m, m.beginEdit()
	case "d":
		return m, m.deleteCmd()
	case "/":
		m.searching = true
		return m, m.search.Focus()
	case "f":
		m.cycleFilter(1)
		return m, tea.Batch(m.refreshCmd(), m.spin.Tick)
	case "F":
		m.cycleFilter(-1)
		return m, tea.Batch(m.refreshCmd(), m.spin.Tick)
	case "r":
		return m, tea.Batch(m.refreshCmd(), m.spin.Tick)
	case "ctrl+l":
		return m, func() tea.Msg { return logoutMsg{} }
	}

	// Forward other keys (pgup/pgdn/home/end) to the viewport.
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m dashboardModel) updateForm(msg tea.KeyMsg) (dashboardModel, tea.Cmd) {
	if m.saving {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.form.reset()
		m.editingID = ""
		m.mode = dashList
		return m, nil
	case "tab":
		return m, m.form.nextField()
	case "shift+tab":
		return m, m.form.prevField()
	case "ctrl+s":
		return m, m.submitCmd()
	case "enter":
		// Enter submits except inside the notes field, where it breaks lines.
		if m.form.focus != fieldNotes {
			return m, m.submitCmd()
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

// cycleFilter steps through "all" plus every status, wrapping around.
func (m *dashboardModel) cycleFilter(delta int) {
	choices := filterChoices()
	for i, c := range choices {
		if c == m.filter {
			n := len(choices)
			m.filter = choices[(i+delta+n)%n]
			return
		}
	}
	m.filter = model.FilterAll
}

func filterChoices() []string {
	choices := []string{model.FilterAll}
	for _, s := range model.Statuses {
		choices = append(choices, string(s))
	}
	return choices
}

func (m *dashboardModel) moveCursor(delta int) {
	m.cursor = clamp(m.cursor+delta, 0, max(len(m.jobs)-1, 0))
	m.recalcContent()
	m.ensureCursorVisible()
}

func (m *dashboardModel) ensureCursorVisible() {
	if !m.ready {
		return
	}
	cursorTop := m.cursor * jobItemHeight
	cursorBottom := cursorTop + jobItemHeight - 1

	if cursorTop < m.vp.YOffset {
		m.vp.SetYOffset(cursorTop)
	} else if cursorBottom >= m.vp.YOffset+m.vp.Height {
		m.vp.SetYOffset(cursorBottom - m.vp.Height + 1)
	}
}

func (m *dashboardModel) recalcLayout() {
	listWidth := max(m.width-2, 20)

	// Header (1) + chips (1) + search (1) + border top/bottom (2) + status bar (1).
	listHeight := max(m.height-6, 5)

	if !m.ready {
		m.vp = viewport.New(listWidth, listHeight)
		m.ready = true
	} else {
		m.vp.Width = listWidth
		m.vp.Height = listHeight
	}
	m.recalcContent()
}

func (m *dashboardModel) recalcContent() {
	if !m.ready {
		return
	}
	m.vp.SetContent(renderJobs(m.jobs, m.cursor, !m.searching && m.mode == dashList))
}

func (m dashboardModel) view() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.mode == dashForm {
		return m.viewForm()
	}
	return m.viewList()
}

func (m dashboardModel) viewList() string {
	header := appTitleStyle.Padding(0, 1).Render(fmt.Sprintf("Your Jobs (%d)", len(m.jobs)))
	if m.email != "" {
		header += jobSubtitleStyle.Render("  " + m.email)
	}

	var chips []string
	for _, c := range filterChoices() {
		if c == m.filter {
			chips = append(chips, chipActiveStyle.Render(c))
		} else {
			chips = append(chips, chipStyle.Render(c))
		}
	}
	chipRow := " " + strings.Join(chips, " ")

	searchRow := " " + m.search.View()

	border := listBorderStyle
	if !m.searching {
		border = listBorderActiveStyle
	}
	list := border.Width(m.vp.Width).Render(m.vp.View())

	status := " j/k move  n new  enter edit  d delete  f filter  / search  r reload  ctrl+l logout  q quit"
	if m.loading {
		status = " " + m.spin.View() + " loading..."
	}
	statusBar := statusBarStyle.Width(m.width).Render(status)

	return header + "\n" + chipRow + "\n" + searchRow + "\n" + list + "\n" + statusBar
}

func (m dashboardModel) viewForm() string {
	body := formBoxStyle.Render(m.form.view(m.editingID != ""))

	status := " tab next field  enter/ctrl+s save  esc cancel"
	if m.saving {
		status = " " + m.spin.View() + " saving..."
	}
	statusBar := statusBarStyle.Width(m.width).Render(status)

	content := centered(m.width, max(m.height-1, 1), body)
	return content + "\n" + statusBar
}

func renderJobs(jobs []model.Job, cursor int, isActive bool) string {
	if len(jobs) == 0 {
		return emptyListStyle.Render("No jobs. Add your first application.")
	}

	var b strings.Builder
	for i, j := range jobs {
		isSelected := isActive && i == cursor

		titleSt := jobTitleStyle
		subtitleSt := jobSubtitleStyle
		prefix := "  "
		if isSelected {
			titleSt = selectedJobTitleStyle
			subtitleSt = selectedJobSubtitleStyle
			prefix = "> "
		}

		b.WriteString(prefix)
		b.WriteString(titleSt.Render(j.Title))
		b.WriteString("  ")
		b.WriteString(statusBadge(j.Status))
		b.WriteByte('\n')

		sub := j.Company
		if day := j.AppliedDay(); day != "" {
			sub += " · " + day
		}
		if j.Notes != "" {
			sub += " · ✎"
		}
		b.WriteString(prefix)
		b.WriteString(subtitleSt.Render(sub))
		b.WriteByte('\n')

		if i < len(jobs)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
