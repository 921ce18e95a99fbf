package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jobdeck/jobdeck/internal/model"
)

// Form field indexes, in tab order.
const (
	fieldTitle = iota
	fieldCompany
	fieldLink
	fieldStatus
	fieldDate
	fieldNotes
	fieldCount
)

// jobForm is the add/edit draft bound to the dashboard. Its contents are sent
// verbatim as the create/update payload.
type jobForm struct {
	title   textinput.Model
	company textinput.Model
	link    textinput.Model
	date    textinput.Model
	notes   textarea.Model
	status  model.Status
	focus   int
}

func newJobForm() jobForm {
	mk := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.Prompt = ""
		ti.CharLimit = 200
		ti.Width = 40
		return ti
	}

	notes := textarea.New()
	notes.Placeholder = "Notes"
	notes.SetWidth(40)
	notes.SetHeight(3)
	notes.CharLimit = 2000

	f := jobForm{
		title:   mk("Job title"),
		company: mk("Company"),
		link:    mk("Job link"),
		date:    mk("YYYY-MM-DD"),
		notes:   notes,
		status:  model.StatusApplied,
	}
	f.title.Focus()
	return f
}

// draft serializes the current field values.
func (f jobForm) draft() model.Draft {
	return model.Draft{
		Title:       f.title.Value(),
		Company:     f.company.Value(),
		Link:        f.link.Value(),
		Status:      f.status,
		AppliedDate: f.date.Value(),
		Notes:       f.notes.Value(),
	}
}

// load fills the form from a draft and focuses the first field.
func (f *jobForm) load(d model.Draft) {
	f.title.SetValue(d.Title)
	f.company.SetValue(d.Company)
	f.link.SetValue(d.Link)
	f.date.SetValue(d.AppliedDate)
	f.notes.SetValue(d.Notes)
	f.status = d.Status
	f.setFocus(fieldTitle)
}

// reset returns the form to the empty draft.
func (f *jobForm) reset() {
	f.load(model.EmptyDraft())
}

func (f *jobForm) setFocus(i int) tea.Cmd {
	f.title.Blur()
	f.company.Blur()
	f.link.Blur()
	f.date.Blur()
	f.notes.Blur()
	f.focus = i
	switch i {
	case fieldTitle:
		return f.title.Focus()
	case fieldCompany:
		return f.company.Focus()
	case fieldLink:
		return f.link.Focus()
	case fieldDate:
		return f.date.Focus()
	case fieldNotes:
		return f.notes.Focus()
	}
	// fieldStatus has no input; left/right cycles it.
	return nil
}

func (f *jobForm) nextField() tea.Cmd {
	return f.setFocus((f.focus + 1) % fieldCount)
}

func (f *jobForm) prevField() tea.Cmd {
	return f.setFocus((f.focus + fieldCount - 1) % fieldCount)
}

func (f *jobForm) cycleStatus(delta int) {
	for i, s := range model.Statuses {
		if s == f.status {
			n := len(model.Statuses)
			f.status = model.Statuses[(i+delta+n)%n]
			return
		}
	}
	f.status = model.StatusApplied
}

// update routes input to the focused field. Arrow keys cycle the status when
// the status selector is focused.
func (f jobForm) update(msg tea.Msg) (jobForm, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && f.focus == fieldStatus {
		switch key.String() {
		case "left", "h":
			f.cycleStatus(-1)
			return f, nil
		case "right", "l", " ":
			f.cycleStatus(1)
			return f, nil
		}
		return f, nil
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldCompany:
		f.company, cmd = f.company.Update(msg)
	case fieldLink:
		f.link, cmd = f.link.Update(msg)
	case fieldDate:
		f.date, cmd = f.date.Update(msg)
	case fieldNotes:
		f.notes, cmd = f.notes.Update(msg)
	}
	return f, cmd
}

func (f jobForm) view(editing bool) string {
	var b strings.Builder

	heading := "Add job"
	if editing {
		heading = "Edit job"
	}
	b.WriteString(subtitleStyle.Render(heading))
	b.WriteString("\n")

	field := func(label, rendered string, idx int) {
		l := labelStyle.Render(label)
		if f.focus == idx {
			l = labelFocusStyle.Render(label)
		}
		b.WriteString(l)
		b.WriteString(rendered)
		b.WriteString("\n")
	}

	field("Title", f.title.View(), fieldTitle)
	field("Company", f.company.View(), fieldCompany)
	field("Link", f.link.View(), fieldLink)

	status := "◂ " + statusBadge(f.status) + " ▸"
	if f.focus != fieldStatus {
		status = "  " + statusBadge(f.status)
	}
	field("Status", status, fieldStatus)

	field("Applied", f.date.View(), fieldDate)

	b.WriteString(labelStyle.Render("Notes"))
	b.WriteString("\n")
	b.WriteString(f.notes.View())

	return b.String()
}
